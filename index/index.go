// Package index harvests package archive identities from the places APT
// tooling keeps them: Packages index files and directories of .deb files.
// Archives are identified from filenames and index text only; no archive
// is ever opened.
package index

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/deb-archive-tools/deb"
)

// Fields of a Packages index stanza used to identify an archive.
//
// Reference: https://wiki.debian.org/DebianRepository/Format#Packages_Indices
const (
	fieldPackage      = "Package"
	fieldVersion      = "Version"
	fieldArchitecture = "Architecture"
	fieldFilename     = "Filename"
)

// Archives extracts package archives from a Packages index stream.
//
// Each stanza contributes one archive, identified by its Filename field
// when present, or by the canonical name assembled from the Package,
// Version and Architecture fields otherwise. Every candidate goes through
// deb.ParseFilename, so index data gets the same strict validation as
// loose files; the first invalid stanza fails the whole call.
func Archives(r io.Reader) ([]deb.Archive, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer for long lines (Description, checksum fields).
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var archives []deb.Archive
	var current stanza
	flush := func() error {
		if current.empty() {
			return nil
		}
		a, err := current.archive()
		if err != nil {
			return err
		}
		archives = append(archives, a)
		current = stanza{}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		current.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// Flush last
	if err := flush(); err != nil {
		return nil, err
	}
	return archives, nil
}

// stanza accumulates the identity fields of one Packages stanza.
type stanza struct {
	name, version, arch, filename string

	seen bool
}

func (s *stanza) add(line string) {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		// continuation line of a folded field
		return
	}
	s.seen = true
	switch {
	case strings.HasPrefix(line, fieldPackage+": "):
		s.name = strings.TrimSpace(strings.TrimPrefix(line, fieldPackage+": "))
	case strings.HasPrefix(line, fieldVersion+": "):
		s.version = strings.TrimSpace(strings.TrimPrefix(line, fieldVersion+": "))
	case strings.HasPrefix(line, fieldArchitecture+": "):
		s.arch = strings.TrimSpace(strings.TrimPrefix(line, fieldArchitecture+": "))
	case strings.HasPrefix(line, fieldFilename+": "):
		s.filename = strings.TrimSpace(strings.TrimPrefix(line, fieldFilename+": "))
	}
}

func (s *stanza) empty() bool { return !s.seen }

func (s *stanza) archive() (deb.Archive, error) {
	if s.filename != "" {
		return deb.ParseFilename(s.filename)
	}
	if s.name == "" || s.version == "" || s.arch == "" {
		return deb.Archive{}, fmt.Errorf("stanza missing %s, %s or %s field", fieldPackage, fieldVersion, fieldArchitecture)
	}
	return deb.ParseFilename(fmt.Sprintf("%s_%s_%s.deb", s.name, s.version, s.arch))
}

// Load reads a Packages index from disk, decompressing it transparently
// when the path ends in .gz.
func Load(path string) ([]deb.Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer gzr.Close()
		r = gzr
	}
	archives, err := Archives(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return archives, nil
}

// ScanDir parses every .deb and .udeb entry of a directory. The archives
// are identified from their names alone. listen, when non-nil, receives
// one event per directory entry; other entries are reported as skipped.
// The first invalid archive filename fails the whole scan.
func ScanDir(dir string, listen Listener) ([]deb.Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var archives []deb.Archive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".deb" && ext != ".udeb" {
			emit(listen, EventFileSkipped{Path: name, Reason: "not a package archive"})
			continue
		}
		a, err := deb.ParseFilename(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		emit(listen, EventArchiveFound{
			Package:      a.Name,
			Version:      a.Version.String(),
			Architecture: a.Architecture,
			Filename:     a.OriginalFilename,
		})
		archives = append(archives, a)
	}
	return archives, nil
}
