package dat

import "errors"

// Decoding errors. These are returned by the public API and can be
// checked with errors.Is.
var (
	// ErrMalformedData is returned when the data section size is
	// inconsistent with the declared channel and sample counts: a byte
	// count not divisible by the row length, rows with the wrong field
	// count, or fewer rows than the configuration declares.
	ErrMalformedData = errors.New("comtrade: malformed data section")

	// ErrDecoding is returned when a value cannot be interpreted under
	// the declared encoding, or when a sample has neither a usable
	// timestamp nor a sample rate.
	ErrDecoding = errors.New("comtrade: data decoding error")
)
