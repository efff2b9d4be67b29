package dat

import (
	"math"

	"github.com/gridtrace/comtrade/pkg/cfg"
)

// Missing-value sentinels, checked on raw values before any scaling.
// Each encoding and revision pair marks absent analog samples its own
// way; everything here is pure so the decoders stay encoding-agnostic.

// missingInt16 reports whether a raw 16-bit analog value is the
// missing marker: 0xFFFF under the 1991 revision, the most negative
// signed value under 1999 and 2013.
func missingInt16(raw uint16, rev cfg.Revision) bool {
	if rev == cfg.Rev1991 {
		return raw == 0xFFFF
	}
	return int16(raw) == math.MinInt16
}

// missingInt32 reports whether a raw 32-bit analog value is the
// missing marker, the most negative signed value.
func missingInt32(raw uint32) bool {
	return int32(raw) == math.MinInt32
}

// missingFloat32 reports whether a float analog value is the missing
// marker, the minimum representable value.
func missingFloat32(v float32) bool {
	return v == -math.MaxFloat32
}

// missingText reports whether a text analog field is the missing
// marker: an empty field under any revision, the literal 99999 under
// 1999 and 2013.
func missingText(field string, rev cfg.Revision) bool {
	if field == "" {
		return true
	}
	if rev == cfg.Rev1991 {
		return false
	}
	return field == "99999"
}
