// Package comtrade loads COMTRADE oscillography records: IEEE
// C37.111 / IEC 60255-24 transient recordings as produced by digital
// fault recorders and protection relays.
//
// A record is stored as a configuration section describing channels,
// sampling and timing, plus a data section in one of four encodings
// (ASCII, BINARY, BINARY32, FLOAT32), either in separate .cfg/.dat
// files or multiplexed into a single .cff combined file. This package
// orchestrates the section packages (pkg/cfg, pkg/dat, pkg/cff) into
// one Load call and exposes the result as a Record.
//
// # Basic Usage
//
//	rec, err := comtrade.Load("fault.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ia, err := rec.Analog(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, t := range rec.Time() {
//	    fmt.Printf("%.6f s: %.3f %s\n", t, ia[i], rec.AnalogChannels()[0].Unit)
//	}
//
// Combined files load through the same call; .cff extensions and
// marker-line content are both recognized:
//
//	rec, err := comtrade.Load("fault.cff")
//
// In-memory content loads through Read and ReadCombined.
//
// # Options
//
// Behavior is adjusted with functional options: WithDataFile,
// WithHeaderFile and WithInfoFile override sibling file resolution,
// WithEncoding names the character set of text sections, WithLogger
// injects a logger for parse warnings, WithContiguousStorage selects
// flat backing arrays, and WithStrictRevision rejects unknown revision
// tags instead of parsing best-effort.
//
// # Errors
//
// Load returns the most specific error of the failing section,
// matchable with errors.Is: ErrMalformedConfig, ErrMalformedData,
// ErrDecoding, ErrMalformedFile, ErrUnsupportedRevision, ErrEncoding.
// Missing-value sentinels in the data are not errors; they decode to
// NaN.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// Use [ModuleVersions] to get versions of all sub-modules.
package comtrade
