package dat

import (
	"fmt"

	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/log"
)

// Decoder decodes one data section encoding into sample series.
type Decoder interface {
	// Decode reads the whole data section. The configuration supplies
	// channel counts, scale factors and sample rates. Either a fully
	// populated SampleSet is returned or an error; no partial result
	// escapes.
	Decode(data []byte, conf *cfg.Config) (*SampleSet, error)
}

// Option configures decoding.
type Option func(*options)

type options struct {
	log        log.Logger
	contiguous bool
}

// WithLogger sets the logger used for decode warnings.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithContiguousStorage makes decoders carve all channel series out of
// single backing arrays instead of one allocation per channel. The
// decoded values are identical either way.
func WithContiguousStorage() Option {
	return func(o *options) { o.contiguous = true }
}

func newOptions(opts []Option) options {
	o := options{log: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewDecoder returns the decoder for a data format.
func NewDecoder(format cfg.DataFormat, opts ...Option) (Decoder, error) {
	o := newOptions(opts)
	switch format {
	case cfg.FormatASCII:
		return &asciiDecoder{opts: o}, nil
	case cfg.FormatBinary:
		return &binaryDecoder{opts: o, analogBytes: 2, convert: int16Sample}, nil
	case cfg.FormatBinary32:
		return &binaryDecoder{opts: o, analogBytes: 4, convert: int32Sample}, nil
	case cfg.FormatFloat32:
		return &binaryDecoder{opts: o, analogBytes: 4, convert: float32Sample}, nil
	default:
		return nil, fmt.Errorf("%w: no decoder for data format %q", ErrDecoding, format)
	}
}

// Decode decodes a data section in the format the configuration
// declares.
func Decode(data []byte, conf *cfg.Config, opts ...Option) (*SampleSet, error) {
	d, err := NewDecoder(conf.Format, opts...)
	if err != nil {
		return nil, err
	}
	return d.Decode(data, conf)
}
