package cfg

import "errors"

// Parsing errors. These are returned by the public API and can be
// checked with errors.Is.
var (
	// ErrMalformedConfig is returned when the configuration section is
	// structurally invalid: missing lines, wrong field counts, or fields
	// that cannot be converted to their declared types.
	ErrMalformedConfig = errors.New("comtrade: malformed configuration")

	// ErrUnsupportedRevision is returned in strict mode when the
	// configuration declares a revision year that is not one of the
	// known standard revisions.
	ErrUnsupportedRevision = errors.New("comtrade: unsupported standard revision")
)
