package deb

import (
	"fmt"
	"path/filepath"
	"strings"

	version "github.com/knqyf263/go-deb-version"
)

// Archive is the identity of a Debian binary package archive, extracted
// from its filename.
//
// A valid Archive is only obtained through ParseFilename; its fields are
// never mutated afterwards.
type Archive struct {
	// Name is the package name, taken verbatim from the filename.
	Name string

	// Version is the parsed, order-comparable package version.
	Version version.Version

	// Architecture is the target platform token, taken verbatim.
	Architecture string

	// OriginalFilename is the untouched input string the archive was
	// parsed from. It is carried for diagnostics only and never
	// participates in ordering or equality.
	OriginalFilename string
}

// Source is an input that can yield an Archive: either a raw filename
// (Filename) or an already parsed Archive. The set is closed; no other
// type can implement it.
type Source interface {
	resolve() (Archive, error)
}

// Filename is a raw archive filename used as a Source. It is parsed with
// ParseFilename when resolved.
type Filename string

func (f Filename) resolve() (Archive, error) { return ParseFilename(string(f)) }

// resolve returns the archive unchanged. An Archive that was already
// constructed is never re-validated.
func (a Archive) resolve() (Archive, error) { return a, nil }

// Sources wraps raw filenames into a Source slice for Latest and
// LatestPerName.
func Sources(filenames ...string) []Source {
	sources := make([]Source, len(filenames))
	for i, f := range filenames {
		sources[i] = Filename(f)
	}
	return sources
}

// ParseFilename parses the filename of a Debian binary package archive.
//
// The basename must follow the <name>_<version>_<architecture> convention
// with a .deb or .udeb extension: exactly two underscores separating
// exactly three fields. The version field must satisfy the Debian version
// rules; name and architecture are taken verbatim. Any violation returns
// an *InvalidFormatError citing the input.
//
// For example:
//
//	a, err := deb.ParseFilename("/var/cache/apt/archives/python2.7_2.7.3-0ubuntu3.4_amd64.deb")
//	// a.Name == "python2.7", a.Architecture == "amd64"
func ParseFilename(filename string) (Archive, error) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext != ".deb" && ext != ".udeb" {
		return Archive{}, &InvalidFormatError{
			Filename: filename,
			Reason:   "unknown extension, want .deb or .udeb",
		}
	}
	fields := strings.Split(strings.TrimSuffix(base, ext), "_")
	if len(fields) != 3 {
		return Archive{}, &InvalidFormatError{
			Filename: filename,
			Reason:   "want exactly three underscore-separated fields (name, version, architecture)",
		}
	}
	v, err := version.NewVersion(fields[1])
	if err != nil {
		return Archive{}, &InvalidFormatError{
			Filename: filename,
			Reason:   fmt.Sprintf("invalid version %q", fields[1]),
			Cause:    err,
		}
	}
	return Archive{
		Name:             fields[0],
		Version:          v,
		Architecture:     fields[2],
		OriginalFilename: filename,
	}, nil
}

// Compare orders archives by name, then version, then architecture.
// Name and architecture compare bytewise, the version by the Debian
// rules. It returns a negative number, zero, or a positive number when a
// sorts before, equal to, or after b. OriginalFilename is ignored: two
// archives that differ only in provenance compare equal.
func (a Archive) Compare(b Archive) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := a.Version.Compare(b.Version); c != 0 {
		return c
	}
	return strings.Compare(a.Architecture, b.Architecture)
}

// StandardFilename returns the canonical filename for the archive.
// Format: {Name}_{Version}_{Architecture}.deb
//
// Reference: https://www.debian.org/doc/manuals/debian-faq/ch-pkg_basics.en.html#s-pkgname
func (a Archive) StandardFilename() string {
	return fmt.Sprintf("%s_%s_%s.deb", a.Name, a.Version.String(), a.Architecture)
}
