// Package xerrors defines the sentinel error kinds shared across the
// partner disclosure and risk core, and the disposition each carries
// at the API boundary (see spec §7).
package xerrors

import "fmt"

var (
	// ErrInvalidArgument is caller-side: bad year, unknown report
	// code, blank corp code. Surfaced as 400 at the API boundary.
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// ErrNotFound covers an unknown profile, partner, or corp code.
	// Surfaced as 404 at the API boundary.
	ErrNotFound = fmt.Errorf("not found")

	// ErrExternalSource is a non-2xx response or transport failure
	// from EDS. Swallowed per sub-step in the ingestion coordinator;
	// propagated as 500 on direct API paths.
	ErrExternalSource = fmt.Errorf("external source error")

	// ErrTransientParsing marks an unparseable amount or payload.
	// The affected row or field is treated as absent; it never fails
	// an entire assessment.
	ErrTransientParsing = fmt.Errorf("transient parsing error")

	// ErrInvariant marks a violated internal precondition. Fatal in
	// testing; logged and aborts the operation in production.
	ErrInvariant = fmt.Errorf("invariant violated")
)

// Wrapf wraps one of the sentinels above with a formatted detail
// message while keeping it matchable with errors.Is.
func Wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
