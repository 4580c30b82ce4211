package deb

import (
	"fmt"

	version "github.com/knqyf263/go-deb-version"
)

// Verdict is the tri-state outcome of relationship evaluation. It is an
// explicit enumeration, not a boolean: callers must distinguish "no
// evidence either way" from "explicitly satisfied".
type Verdict int

const (
	// Indeterminate means no evidence either way. A RelationshipSet
	// returning Indeterminate reports that it does not apply to the
	// package at all.
	Indeterminate Verdict = iota
	// Satisfied means the package satisfies the relationship.
	Satisfied
	// Conflicted means the package violates the relationship.
	Conflicted
)

func (v Verdict) String() string {
	switch v {
	case Satisfied:
		return "satisfied"
	case Conflicted:
		return "conflicted"
	default:
		return "indeterminate"
	}
}

// RelationshipSet is an opaque dependency or conflict expression that can
// be evaluated against a package name and version. Implementations must
// be safe for concurrent read-only use.
type RelationshipSet interface {
	Evaluate(name string, v version.Version) (Verdict, error)
}

// RelationshipFunc adapts a plain function to a RelationshipSet.
type RelationshipFunc func(name string, v version.Version) (Verdict, error)

func (f RelationshipFunc) Evaluate(name string, v version.Version) (Verdict, error) {
	return f(name, v)
}

// Matches evaluates archive against every relationship set, in the given
// order, and returns the combined verdict.
//
// A Conflicted report is sticky and terminal: evaluation stops at the
// first conflict and later sets are never consulted, even if they would
// report Satisfied. A Satisfied report is provisional, since a later set
// may still conflict. Sets reporting Indeterminate leave the verdict
// untouched, and an empty sequence yields Indeterminate.
//
// An evaluator failure aborts the call with the wrapped error.
func Matches(archive Archive, sets []RelationshipSet) (Verdict, error) {
	verdict := Indeterminate
	for _, set := range sets {
		status, err := set.Evaluate(archive.Name, archive.Version)
		if err != nil {
			return Indeterminate, fmt.Errorf("evaluating relationship set against %s %s: %w", archive.Name, archive.Version.String(), err)
		}
		switch status {
		case Conflicted:
			return Conflicted, nil
		case Satisfied:
			verdict = Satisfied
		}
	}
	return verdict, nil
}
