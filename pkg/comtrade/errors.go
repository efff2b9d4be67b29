package comtrade

import (
	"github.com/gridtrace/comtrade/pkg/cff"
	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/dat"
)

// Sentinel errors of the section packages, re-exported so callers can
// match every load failure with one import. ErrEncoding is defined in
// this package.
var (
	// ErrMalformedConfig reports structural violations in the
	// configuration section.
	ErrMalformedConfig = cfg.ErrMalformedConfig

	// ErrUnsupportedRevision reports a revision tag outside the known
	// standard years, returned only under WithStrictRevision.
	ErrUnsupportedRevision = cfg.ErrUnsupportedRevision

	// ErrMalformedData reports a data section whose size disagrees
	// with the declared channel and sample counts.
	ErrMalformedData = dat.ErrMalformedData

	// ErrDecoding reports a value unrepresentable under the declared
	// data encoding.
	ErrDecoding = dat.ErrDecoding

	// ErrMalformedFile reports framing violations in a combined file.
	ErrMalformedFile = cff.ErrMalformedFile
)
