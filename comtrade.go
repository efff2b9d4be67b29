// Package comtrade reads IEEE C37.111 COMTRADE oscillography recordings.
//
// Example usage:
//
//	rec, err := comtrade.Load("relay_trip.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(rec.Summary())
//
// This package is a thin facade over pkg/comtrade; the subpackages
// pkg/cfg, pkg/dat and pkg/cff expose the configuration parser, the
// data decoder and the combined file splitter individually.
package comtrade

import (
	"github.com/gridtrace/comtrade/pkg/comtrade"
)

// Record is a loaded recording: the parsed configuration, the decoded
// samples, and any header or information text that came with them.
type Record = comtrade.Record

// Option configures loading.
type Option = comtrade.Option

// TableWriter receives the sample table produced by Record.Export.
type TableWriter = comtrade.TableWriter

// Logger is the structured logging interface accepted by WithLogger.
type Logger = comtrade.Logger

// Load reads a recording from disk. The path may name a configuration
// file with a sibling data file, or a combined file holding every
// section.
func Load(path string, opts ...Option) (*Record, error) {
	return comtrade.Load(path, opts...)
}

// Read assembles a recording from configuration text and raw data bytes
// already in memory.
func Read(cfgText string, data []byte, opts ...Option) (*Record, error) {
	return comtrade.Read(cfgText, data, opts...)
}

// ReadCombined assembles a recording from the raw bytes of a combined
// file.
func ReadCombined(data []byte, opts ...Option) (*Record, error) {
	return comtrade.ReadCombined(data, opts...)
}

// WithLogger directs load progress and warnings to l.
func WithLogger(l Logger) Option { return comtrade.WithLogger(l) }

// WithEncoding selects the IANA character set used to decode the text
// sections of a recording.
func WithEncoding(name string) Option { return comtrade.WithEncoding(name) }

// WithDataFile overrides the data file path derived from the
// configuration file path.
func WithDataFile(path string) Option { return comtrade.WithDataFile(path) }

// WithHeaderFile names a header file to load alongside the recording.
func WithHeaderFile(path string) Option { return comtrade.WithHeaderFile(path) }

// WithInfoFile names an information file to load alongside the
// recording.
func WithInfoFile(path string) Option { return comtrade.WithInfoFile(path) }

// WithContiguousStorage decodes analog samples into one contiguous
// block.
func WithContiguousStorage() Option { return comtrade.WithContiguousStorage() }

// WithStrictRevision rejects revision years the parser does not know
// instead of falling back to the nearest known revision.
func WithStrictRevision() Option { return comtrade.WithStrictRevision() }

// Errors reported while loading recordings.
var (
	ErrMalformedConfig     = comtrade.ErrMalformedConfig
	ErrUnsupportedRevision = comtrade.ErrUnsupportedRevision
	ErrMalformedData       = comtrade.ErrMalformedData
	ErrDecoding            = comtrade.ErrDecoding
	ErrMalformedFile       = comtrade.ErrMalformedFile
	ErrEncoding            = comtrade.ErrEncoding
)
