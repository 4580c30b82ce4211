// Package deb identifies Debian binary package archives from their
// filenames, orders them by package version, and evaluates archives
// against dependency and conflict relationship sets.
//
// # Design Philosophy
//
// The package is a pure library surface: every operation is a function
// over immutable values, with no filesystem, network, or archive I/O.
// Archives are identified from the <name>_<version>_<architecture>.deb
// filename convention alone, which makes the package suitable for
// higher-level tooling (archive builders, repository indexers) that
// already knows where its files live. All operations are safe for
// concurrent use across independent inputs.
//
// # Features
//
// Identity:
//   - Strict parsing of .deb and .udeb filenames into the
//     (name, version, architecture) triple.
//   - Version semantics delegated to the Debian comparison rules of
//     github.com/knqyf263/go-deb-version.
//
// Ordering and reduction:
//   - A total order over (name, version, architecture); the original
//     filename is provenance only and never affects ordering.
//   - Latest and LatestPerName reduce collections of archives or raw
//     filenames to their newest member per package name.
//
// Relationship matching:
//   - A tri-state Matches verdict (Satisfied, Conflicted, Indeterminate)
//     over an ordered sequence of relationship sets, where a conflict is
//     terminal and short-circuits the remaining sets.
package deb
