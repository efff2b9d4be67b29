package cfg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Revision identifies a COMTRADE standard revision year.
type Revision int

// Standard revision years.
const (
	Rev1991 Revision = 1991
	Rev1999 Revision = 1999
	Rev2013 Revision = 2013
)

// String returns the revision year as written in configuration files.
func (r Revision) String() string {
	return strconv.Itoa(int(r))
}

// DataFormat names the encoding of the data section.
type DataFormat string

// Data section encodings.
const (
	FormatASCII    DataFormat = "ASCII"
	FormatBinary   DataFormat = "BINARY"
	FormatBinary32 DataFormat = "BINARY32"
	FormatFloat32  DataFormat = "FLOAT32"
)

// ParseDataFormat normalizes a data format token from a configuration file.
func ParseDataFormat(s string) (DataFormat, error) {
	switch f := DataFormat(strings.ToUpper(strings.TrimSpace(s))); f {
	case FormatASCII, FormatBinary, FormatBinary32, FormatFloat32:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown data format %q", ErrMalformedConfig, s)
	}
}

// Analog channel scaling sides.
const (
	SidePrimary   = "P"
	SideSecondary = "S"
)

// Timestamp resolutions in seconds. Raw data timestamps are counted in
// one of these units, further scaled by the timestamp multiplier.
const (
	TimeBaseMicro = 1e-6
	TimeBaseNano  = 1e-9
)

// AnalogChannel describes one analog channel declaration.
// Recorded values x convert to channel units as Scale*x + Offset.
type AnalogChannel struct {
	Index     int // channel number as declared, 1-based
	Name      string
	Phase     string
	Circuit   string // monitored circuit component
	Unit      string
	Scale     float64 // multiplier a in ax+b
	Offset    float64 // offset b in ax+b
	Skew      float64 // channel sampling skew in microseconds
	Min       float64
	Max       float64
	Primary   float64 // transducer primary ratio factor
	Secondary float64 // transducer secondary ratio factor
	Side      string  // SidePrimary when values are primary-scaled, SideSecondary otherwise
}

// Ratio returns the primary/secondary transformer ratio. Declarations
// without usable ratio factors yield 1.
func (c AnalogChannel) Ratio() float64 {
	if c.Primary == 0 || c.Secondary == 0 {
		return 1
	}
	return c.Primary / c.Secondary
}

// StatusChannel describes one status channel declaration.
type StatusChannel struct {
	Index       int // channel number as declared, 1-based
	Name        string
	Phase       string
	Circuit     string
	NormalState int // 0 or 1
}

// SampleRate is one sampling segment: samples up to and including
// EndSample were taken at Rate samples per second.
type SampleRate struct {
	Rate      float64
	EndSample int
}

// Config is the parsed configuration section of a record.
type Config struct {
	StationName string
	DeviceID    string

	// Revision is the effective standard revision, mapped to the nearest
	// known year when the file declares an unknown one. RawRevision keeps
	// the field as written.
	Revision    Revision
	RawRevision string

	AnalogChannels []AnalogChannel
	StatusChannels []StatusChannel

	// Frequency is the nominal line frequency in Hz, 0 when not declared.
	Frequency float64

	// SampleRates always holds at least one segment after parsing.
	// TimestampCritical marks records whose rate count field was zero:
	// sample times must come from per-sample timestamps.
	SampleRates       []SampleRate
	TimestampCritical bool

	StartTime   time.Time
	TriggerTime time.Time

	// TimeBase is the resolution of raw data timestamps in seconds,
	// TimeBaseMicro or TimeBaseNano. TimeMult scales it.
	TimeBase float64
	TimeMult float64

	Format DataFormat

	// 2013 revision extras, kept as written in the file.
	TimeCode    string
	LocalCode   string
	TimeQuality string
	LeapSecond  int
}

// AnalogCount returns the number of analog channels.
func (c *Config) AnalogCount() int { return len(c.AnalogChannels) }

// StatusCount returns the number of status channels.
func (c *Config) StatusCount() int { return len(c.StatusChannels) }

// ChannelCount returns the total number of channels.
func (c *Config) ChannelCount() int { return len(c.AnalogChannels) + len(c.StatusChannels) }

// TotalSamples returns the sample count declared by the last rate segment.
func (c *Config) TotalSamples() int {
	if len(c.SampleRates) == 0 {
		return 0
	}
	return c.SampleRates[len(c.SampleRates)-1].EndSample
}

// SampleRateAt returns the sampling rate covering the 1-based sample n.
// It walks segments in order and returns the first whose end sample is
// at or beyond n; past the last segment the last rate applies.
func (c *Config) SampleRateAt(n int) float64 {
	for _, sr := range c.SampleRates {
		if n <= sr.EndSample {
			return sr.Rate
		}
	}
	if len(c.SampleRates) > 0 {
		return c.SampleRates[len(c.SampleRates)-1].Rate
	}
	return 0
}

// ImpliedSampleRate estimates a single rate for timestamp-critical
// records from the declared sample count and the start-to-trigger span.
// It returns 0 when the span is not positive.
func (c *Config) ImpliedSampleRate() float64 {
	span := c.TriggerTime.Sub(c.StartTime).Seconds()
	total := c.TotalSamples()
	if span <= 0 || total == 0 {
		return 0
	}
	return float64(total) / span
}
