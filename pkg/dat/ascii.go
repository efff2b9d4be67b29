package dat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/log"
)

// asciiDecoder reads the text encoding: one comma separated line per
// sample with the sample number, timestamp, analog values and status
// values in that order.
type asciiDecoder struct {
	opts options
}

func (d *asciiDecoder) Decode(data []byte, conf *cfg.Config) (*SampleSet, error) {
	na, nd := conf.AnalogCount(), conf.StatusCount()
	total := conf.TotalSamples()
	want := 2 + na + nd

	set := newSampleSet(conf, total, d.opts.contiguous)
	clock := newSampleClock(conf)

	pos := 0
	extra := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if pos >= total {
			extra++
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != want {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrMalformedData, pos+1, len(fields), want)
		}
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}

		if _, err := strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid sample number %q", ErrDecoding, pos+1, fields[0])
		}
		raw, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid timestamp %q", ErrDecoding, pos+1, fields[1])
		}
		t, err := clock.at(pos, raw)
		if err != nil {
			return nil, err
		}
		set.Time[pos] = t

		for ch := 0; ch < na; ch++ {
			field := fields[2+ch]
			if missingText(field, conf.Revision) {
				set.Analog[ch][pos] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid analog value %q", ErrDecoding, pos+1, field)
			}
			a := conf.AnalogChannels[ch]
			set.Analog[ch][pos] = a.Scale*v + a.Offset
		}
		for ch := 0; ch < nd; ch++ {
			field := fields[2+na+ch]
			if field == "" {
				// Blank status fields are indistinguishable from zero.
				set.Status[ch][pos] = 0
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: invalid status value %q", ErrDecoding, pos+1, field)
			}
			set.Status[ch][pos] = int32(v)
		}
		pos++
	}

	if pos < total {
		return nil, fmt.Errorf("%w: %d sample rows, configuration declares %d", ErrMalformedData, pos, total)
	}
	if extra > 0 {
		d.opts.log.Warn("data section has extra sample rows, ignoring",
			log.Int("extra", extra), log.Int("declared", total))
	}
	d.opts.log.Debug("data section decoded",
		log.String("format", string(cfg.FormatASCII)),
		log.Int("samples", total),
		log.Int("analog", na),
		log.Int("status", nd))
	return set, nil
}
