package comtrade

import (
	"github.com/gridtrace/comtrade/pkg/log"
)

// Logger is the structured logging interface from pkg/log, re-exported
// for convenient access.
type Logger = log.Logger

// LogField is the structured log field type from pkg/log.
type LogField = log.Field

// Option configures optional behavior of a load.
type Option func(*options)

// options holds the optional configuration for one load call.
type options struct {
	log        log.Logger
	encoding   string
	datPath    string
	hdrPath    string
	infPath    string
	contiguous bool
	strict     bool
}

func newOptions(opts []Option) options {
	o := options{log: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithEncoding sets the character set of the text sections by its IANA
// name, e.g. "windows-1252" or "ISO-8859-1". Text is converted to
// UTF-8 before parsing. If not provided, bytes are used as-is.
// Binary data sections are never passed through the decoder.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithDataFile sets an explicit data file path, overriding the sibling
// derived from the configuration file name.
func WithDataFile(path string) Option {
	return func(o *options) {
		o.datPath = path
	}
}

// WithHeaderFile sets an explicit header file path. The default is the
// configuration file's sibling; a missing sibling is not an error, a
// missing explicit path is.
func WithHeaderFile(path string) Option {
	return func(o *options) {
		o.hdrPath = path
	}
}

// WithInfoFile sets an explicit information file path. Resolution
// follows the same rules as WithHeaderFile.
func WithInfoFile(path string) Option {
	return func(o *options) {
		o.infPath = path
	}
}

// WithContiguousStorage decodes all channels into one flat backing
// array subdivided per channel instead of independent slices. The
// decoded values are identical.
func WithContiguousStorage() Option {
	return func(o *options) {
		o.contiguous = true
	}
}

// WithStrictRevision turns unknown revision tags in the configuration
// into errors instead of best-effort parsing with a warning.
func WithStrictRevision() Option {
	return func(o *options) {
		o.strict = true
	}
}
