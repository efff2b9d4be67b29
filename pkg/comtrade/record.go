package comtrade

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gridtrace/comtrade/pkg/cfg"
	"github.com/gridtrace/comtrade/pkg/dat"
)

// Record is a fully loaded oscillography record: the parsed
// configuration, the decoded sample series and the opaque header and
// information texts when present. Use Load, Read or ReadCombined to
// create one; a Record is immutable afterwards and safe for concurrent
// reads.
type Record struct {
	conf    *cfg.Config
	samples *dat.SampleSet
	header  string
	info    string
	path    string
}

// Config returns the parsed configuration section.
func (r *Record) Config() *cfg.Config { return r.conf }

// StationName returns the recording station identifier.
func (r *Record) StationName() string { return r.conf.StationName }

// DeviceID returns the recording device identifier.
func (r *Record) DeviceID() string { return r.conf.DeviceID }

// Revision returns the effective standard revision of the record.
func (r *Record) Revision() cfg.Revision { return r.conf.Revision }

// Frequency returns the nominal line frequency in Hz, 0 when the
// configuration leaves it blank.
func (r *Record) Frequency() float64 { return r.conf.Frequency }

// AnalogCount returns the number of analog channels.
func (r *Record) AnalogCount() int { return r.conf.AnalogCount() }

// StatusCount returns the number of status channels.
func (r *Record) StatusCount() int { return r.conf.StatusCount() }

// ChannelCount returns the total number of channels.
func (r *Record) ChannelCount() int { return r.conf.ChannelCount() }

// AnalogChannels returns the analog channel declarations in file order.
func (r *Record) AnalogChannels() []cfg.AnalogChannel { return r.conf.AnalogChannels }

// StatusChannels returns the status channel declarations in file order.
func (r *Record) StatusChannels() []cfg.StatusChannel { return r.conf.StatusChannels }

// AnalogChannelIDs returns the analog channel names in file order.
func (r *Record) AnalogChannelIDs() []string {
	ids := make([]string, len(r.conf.AnalogChannels))
	for i, ch := range r.conf.AnalogChannels {
		ids[i] = ch.Name
	}
	return ids
}

// StatusChannelIDs returns the status channel names in file order.
func (r *Record) StatusChannelIDs() []string {
	ids := make([]string, len(r.conf.StatusChannels))
	for i, ch := range r.conf.StatusChannels {
		ids[i] = ch.Name
	}
	return ids
}

// SampleCount returns the number of decoded samples per channel.
func (r *Record) SampleCount() int { return r.samples.Samples() }

// Time returns the time vector in seconds relative to the first
// sample, one entry per sample. The slice is shared with the Record;
// callers must not modify it.
func (r *Record) Time() []float64 { return r.samples.Time }

// Analog returns the unit-scaled value series of the analog channel at
// index i (0-based, file order). Missing samples are NaN. The slice is
// shared with the Record; callers must not modify it.
func (r *Record) Analog(i int) ([]float64, error) {
	if i < 0 || i >= len(r.samples.Analog) {
		return nil, fmt.Errorf("comtrade: analog channel index %d out of range [0,%d)", i, len(r.samples.Analog))
	}
	return r.samples.Analog[i], nil
}

// Status returns the 0/1 series of the status channel at index i
// (0-based, file order). The slice is shared with the Record; callers
// must not modify it.
func (r *Record) Status(i int) ([]int32, error) {
	if i < 0 || i >= len(r.samples.Status) {
		return nil, fmt.Errorf("comtrade: status channel index %d out of range [0,%d)", i, len(r.samples.Status))
	}
	return r.samples.Status[i], nil
}

// PrimaryValues returns the analog channel at index i converted to the
// primary side of its transformer ratio. Channels recorded
// primary-scaled are returned unchanged; the rest are multiplied by
// the ratio. The returned slice is freshly allocated.
func (r *Record) PrimaryValues(i int) ([]float64, error) {
	values, err := r.Analog(i)
	if err != nil {
		return nil, err
	}
	ch := r.conf.AnalogChannels[i]
	out := make([]float64, len(values))
	if ch.Side == cfg.SidePrimary {
		copy(out, values)
		return out, nil
	}
	ratio := ch.Ratio()
	for j, v := range values {
		out[j] = v * ratio
	}
	return out, nil
}

// SecondaryValues returns the analog channel at index i converted to
// the secondary side of its transformer ratio. Channels recorded
// primary-scaled are divided by the ratio; the rest are returned
// unchanged. The returned slice is freshly allocated.
func (r *Record) SecondaryValues(i int) ([]float64, error) {
	values, err := r.Analog(i)
	if err != nil {
		return nil, err
	}
	ch := r.conf.AnalogChannels[i]
	out := make([]float64, len(values))
	if ch.Side != cfg.SidePrimary {
		copy(out, values)
		return out, nil
	}
	ratio := ch.Ratio()
	for j, v := range values {
		out[j] = v / ratio
	}
	return out, nil
}

// StartTimestamp returns the timestamp of the first data sample.
func (r *Record) StartTimestamp() time.Time { return r.conf.StartTime }

// TriggerTimestamp returns the timestamp of the trigger point.
func (r *Record) TriggerTimestamp() time.Time { return r.conf.TriggerTime }

// RelativeTriggerTime returns the trigger time in seconds relative to
// the first sample, computed from the configuration timestamps.
func (r *Record) RelativeTriggerTime() float64 {
	return r.conf.TriggerTime.Sub(r.conf.StartTime).Seconds()
}

// Header returns the free-form header section text, empty when absent.
func (r *Record) Header() string { return r.header }

// Info returns the machine-readable information section text, empty
// when absent. Its schema is not interpreted.
func (r *Record) Info() string { return r.info }

// Path returns the file path the record was loaded from, empty for
// in-memory reads.
func (r *Record) Path() string { return r.path }

// Summary returns a multi-line description of the record's
// configuration attributes.
func (r *Record) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Channels (total,A,D): %dA + %dD = %d\n",
		r.conf.AnalogCount(), r.conf.StatusCount(), r.conf.ChannelCount())
	fmt.Fprintf(&b, "Line frequency: %s Hz\n", ftoa(r.conf.Frequency))
	for _, sr := range r.conf.SampleRates {
		fmt.Fprintf(&b, "Sample rate of %s Hz to the sample #%d\n", ftoa(sr.Rate), sr.EndSample)
	}
	fmt.Fprintf(&b, "From %s to %s with time mult. = %s\n",
		summaryTime(r.conf.StartTime), summaryTime(r.conf.TriggerTime), ftoa(r.conf.TimeMult))
	fmt.Fprintf(&b, "%s format", r.conf.Format)
	return b.String()
}

func summaryTime(ts time.Time) string {
	return ts.Format("2006-01-02 15:04:05.000000")
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
