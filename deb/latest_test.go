package deb

import (
	"errors"
	"testing"
)

func TestLatest(t *testing.T) {
	latest, ok, err := Latest(Sources(
		"pkg_1.0_amd64.deb",
		"pkg_2.0_amd64.deb",
	))
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a result")
	}
	if got := latest.Version.String(); got != "2.0" {
		t.Errorf("expected version 2.0, got %s", got)
	}
}

func TestLatestEmpty(t *testing.T) {
	_, ok, err := Latest(nil)
	if err != nil {
		t.Fatalf("empty input is not an error: %v", err)
	}
	if ok {
		t.Errorf("expected no result for empty input")
	}
}

func TestLatestInconsistentNames(t *testing.T) {
	_, _, err := Latest(Sources(
		"pkg_1.0_amd64.deb",
		"other_1.0_amd64.deb",
	))
	var nerr *InconsistentNameError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *InconsistentNameError, got %v", err)
	}
	if len(nerr.Names) != 2 || nerr.Names[0] != "other" || nerr.Names[1] != "pkg" {
		t.Errorf("expected sorted distinct names [other pkg], got %v", nerr.Names)
	}
}

func TestLatestInvalidElementFailsWhole(t *testing.T) {
	_, _, err := Latest(Sources(
		"pkg_1.0_amd64.deb",
		"pkg-not-an-archive.txt",
	))
	var ferr *InvalidFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *InvalidFormatError, got %v", err)
	}
}

func TestLatestMixedSources(t *testing.T) {
	// Raw filenames and pre-parsed archives mix freely.
	parsed := mustParse(t, "pkg_3.0_amd64.deb")
	latest, ok, err := Latest([]Source{
		Filename("pkg_1.0_amd64.deb"),
		parsed,
	})
	if err != nil || !ok {
		t.Fatalf("Latest failed: %v", err)
	}
	if got := latest.Version.String(); got != "3.0" {
		t.Errorf("expected version 3.0, got %s", got)
	}
}

func TestLatestTieIsDeterministic(t *testing.T) {
	// Same (name, version, arch) from two mirrors: the stable sort keeps
	// input order, so the later source wins every run.
	latest, ok, err := Latest(Sources(
		"/mirror-a/pkg_1.0_amd64.deb",
		"/mirror-b/pkg_1.0_amd64.deb",
	))
	if err != nil || !ok {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.OriginalFilename != "/mirror-b/pkg_1.0_amd64.deb" {
		t.Errorf("expected the later equal-key source to win, got %s", latest.OriginalFilename)
	}
}

func TestLatestPerName(t *testing.T) {
	latests, err := LatestPerName(Sources(
		"b_1.0_amd64.deb",
		"a_2.0_amd64.deb",
		"a_1.0_amd64.deb",
	))
	if err != nil {
		t.Fatalf("LatestPerName failed: %v", err)
	}
	if len(latests) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(latests))
	}
	va := latests["a"].Version
	if got := va.String(); got != "2.0" {
		t.Errorf("expected a -> 2.0, got %s", got)
	}
	vb := latests["b"].Version
	if got := vb.String(); got != "1.0" {
		t.Errorf("expected b -> 1.0, got %s", got)
	}
}

func TestLatestPerNameEpoch(t *testing.T) {
	// Debian semantics, not lexicographic: an epoch outranks a larger
	// upstream version.
	latests, err := LatestPerName(Sources(
		"a_2.0_amd64.deb",
		"a_1:0.5_amd64.deb",
	))
	if err != nil {
		t.Fatalf("LatestPerName failed: %v", err)
	}
	v := latests["a"].Version
	if got := v.String(); got != "1:0.5" {
		t.Errorf("expected epoch version 1:0.5 to win, got %s", got)
	}
}

func TestLatestPerNameEmpty(t *testing.T) {
	latests, err := LatestPerName(nil)
	if err != nil {
		t.Fatalf("empty input is not an error: %v", err)
	}
	if len(latests) != 0 {
		t.Errorf("expected empty result, got %v", latests)
	}
}

func TestLatestPerNameNoPartialResult(t *testing.T) {
	latests, err := LatestPerName(Sources(
		"a_1.0_amd64.deb",
		"broken.deb",
		"b_1.0_amd64.deb",
	))
	if err == nil {
		t.Fatalf("expected failure on invalid element")
	}
	if latests != nil {
		t.Errorf("expected no partial mapping, got %v", latests)
	}
}
