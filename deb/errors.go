package deb

import (
	"fmt"
	"strings"
)

// InvalidFormatError reports an input that does not name a valid Debian
// binary package archive: wrong extension, wrong field count, or an
// unparseable version.
type InvalidFormatError struct {
	// Filename is the offending input, untouched.
	Filename string
	// Reason states which rule the input broke.
	Reason string
	// Cause is the underlying version parse error, if any.
	Cause error
}

func (e *InvalidFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid package archive filename %q: %s: %v", e.Filename, e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid package archive filename %q: %s", e.Filename, e.Reason)
}

func (e *InvalidFormatError) Unwrap() error { return e.Cause }

// InconsistentNameError reports a same-name batch operation that received
// archives of more than one package name.
type InconsistentNameError struct {
	// Names are the distinct package names found, sorted.
	Names []string
}

func (e *InconsistentNameError) Error() string {
	return fmt.Sprintf("cannot compare versions of different packages: %s", strings.Join(e.Names, ", "))
}
