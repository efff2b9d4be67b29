// Package dat decodes the data section of COMTRADE records.
//
// Four encodings are supported: ASCII text, 16-bit binary, 32-bit
// binary and 32-bit float. A Decoder turns the raw section plus its
// parsed configuration into aligned per-channel series: a time vector
// in seconds and one slice per analog and status channel.
//
// Missing analog samples decode to NaN. Each encoding and revision
// marks them differently: blank text fields, the literal 99999, or an
// all-ones / most-negative raw value depending on the width. The
// sentinel check happens on the raw value, before scale and offset are
// applied.
//
// # Usage
//
//	set, err := dat.Decode(raw, conf)
//	if err != nil {
//	    return err
//	}
//	volts := set.Analog[0]
//
// # Errors
//
// Size inconsistencies return ErrMalformedData; unreadable values
// return ErrDecoding. Both match errors.Is.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package dat
