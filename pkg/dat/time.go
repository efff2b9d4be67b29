package dat

import (
	"fmt"

	"github.com/gridtrace/comtrade/pkg/cfg"
)

// timestampMissing is the raw timestamp value marking an absent
// per-sample timestamp.
const timestampMissing = 0xFFFFFFFF

// sampleClock derives per-sample times in seconds relative to the
// record start. Single-rate records divide the row position by the
// rate; multi-rate records accumulate the sample period segment by
// segment, which keeps time non-decreasing across segment boundaries.
// Timestamp-critical records trust the raw per-row timestamp scaled by
// the time base and multiplier, falling back to the rate only when the
// timestamp is the missing marker.
type sampleClock struct {
	conf  *cfg.Config
	multi bool
	last  float64
}

func newSampleClock(conf *cfg.Config) *sampleClock {
	return &sampleClock{conf: conf, multi: len(conf.SampleRates) > 1}
}

// at returns the time of the sample at 0-based row position pos with
// raw timestamp raw.
func (k *sampleClock) at(pos int, raw float64) (float64, error) {
	if k.conf.TimestampCritical && raw != timestampMissing {
		t := raw * k.conf.TimeBase * k.conf.TimeMult
		k.last = t
		return t, nil
	}
	rate := k.conf.SampleRateAt(pos + 1)
	if rate == 0 {
		return 0, fmt.Errorf("%w: sample %d has no timestamp and no sample rate", ErrDecoding, pos+1)
	}
	var t float64
	switch {
	case !k.multi:
		t = float64(pos) / rate
	case pos > 0:
		t = k.last + 1/rate
	}
	k.last = t
	return t, nil
}
