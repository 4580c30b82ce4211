// Package policy loads declarative version policies and compiles them
// into relationship sets for deb.Matches. A policy is structured data
// (YAML or JSON); no dependency grammar string is ever parsed.
package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	version "github.com/knqyf263/go-deb-version"
	"go.yaml.in/yaml/v3"

	"github.com/etnz/deb-archive-tools/deb"
)

// Policy is a declarative set of version rules for package archives.
type Policy struct {
	// Requires lists packages whose versions must fall inside a range.
	Requires []Rule `json:"requires" yaml:"requires"`
	// Forbids lists package versions that must not appear.
	Forbids []Rule `json:"forbids" yaml:"forbids"`
}

// Rule constrains the versions of a single package. A rule never applies
// to archives of another package name.
type Rule struct {
	// Package is the package name the rule applies to.
	Package string `json:"package" yaml:"package"`
	// Version pins the exact version a forbids rule rejects. When empty,
	// the rule rejects every version of the package.
	Version string `json:"version" yaml:"version"`
	// Minimum is the inclusive lower bound of a requires rule.
	Minimum string `json:"minimum" yaml:"minimum"`
	// Maximum is the inclusive upper bound of a requires rule.
	Maximum string `json:"maximum" yaml:"maximum"`
}

// Load reads a policy from the specified file path. It supports both
// JSON and YAML formats based on the file extension.
func Load(path string) (*Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	var p Policy
	if err := unmarshal(path, content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return &p, nil
}

func unmarshal(path string, content []byte, v interface{}) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(content, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, v)
	default:
		return fmt.Errorf("unsupported policy format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Sets compiles the policy into relationship sets, requires first, each
// group in declaration order. Order matters: deb.Matches stops at the
// first conflict.
func (p *Policy) Sets() ([]deb.RelationshipSet, error) {
	var sets []deb.RelationshipSet
	for _, r := range p.Requires {
		set, err := r.require()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	for _, r := range p.Forbids {
		set, err := r.forbid()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// require compiles the rule into a set that reports Satisfied or
// Conflicted for its package and Indeterminate for every other name.
func (r Rule) require() (deb.RelationshipSet, error) {
	if r.Package == "" {
		return nil, fmt.Errorf("requires rule missing package name")
	}
	lower, err := parseBound(r.Package, "minimum", r.Minimum)
	if err != nil {
		return nil, err
	}
	upper, err := parseBound(r.Package, "maximum", r.Maximum)
	if err != nil {
		return nil, err
	}
	name := r.Package
	return deb.RelationshipFunc(func(pkg string, v version.Version) (deb.Verdict, error) {
		if pkg != name {
			return deb.Indeterminate, nil
		}
		if lower != nil && v.Compare(*lower) < 0 {
			return deb.Conflicted, nil
		}
		if upper != nil && v.Compare(*upper) > 0 {
			return deb.Conflicted, nil
		}
		return deb.Satisfied, nil
	}), nil
}

// forbid compiles the rule into a set that reports Conflicted on a match
// and Indeterminate otherwise.
func (r Rule) forbid() (deb.RelationshipSet, error) {
	if r.Package == "" {
		return nil, fmt.Errorf("forbids rule missing package name")
	}
	pin, err := parseBound(r.Package, "forbidden", r.Version)
	if err != nil {
		return nil, err
	}
	name := r.Package
	return deb.RelationshipFunc(func(pkg string, v version.Version) (deb.Verdict, error) {
		if pkg != name {
			return deb.Indeterminate, nil
		}
		if pin == nil || v.Compare(*pin) == 0 {
			return deb.Conflicted, nil
		}
		return deb.Indeterminate, nil
	}), nil
}

func parseBound(name, field, s string) (*version.Version, error) {
	if s == "" {
		return nil, nil
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("rule for %s: invalid %s version %q: %w", name, field, s, err)
	}
	return &v, nil
}
