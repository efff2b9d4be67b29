package cfg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gridtrace/comtrade/pkg/log"
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger used for parse warnings.
func WithLogger(l log.Logger) ParserOption {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithStrictRevision makes unknown revision years a hard error instead
// of mapping them to the nearest known revision.
func WithStrictRevision() ParserOption {
	return func(p *Parser) { p.strictRevision = true }
}

// Parser reads the configuration section of a record.
type Parser struct {
	log            log.Logger
	strictRevision bool
}

// NewParser creates a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{log: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a configuration section with default options.
func Parse(r io.Reader) (*Config, error) {
	return NewParser().Parse(r)
}

// ParseString reads a configuration section from a string.
func ParseString(s string) (*Config, error) {
	return NewParser().Parse(strings.NewReader(s))
}

// Parse reads one configuration section. Lines are consumed in the
// order fixed by the standard: station line, channel counts, analog and
// status channel declarations, line frequency, sample rate segments,
// start and trigger timestamps, data format, and the revision-dependent
// trailing lines.
func (p *Parser) Parse(r io.Reader) (*Config, error) {
	lr := &lineReader{sc: bufio.NewScanner(r)}
	c := &Config{TimeBase: TimeBaseMicro, TimeMult: 1.0}

	// Station, device and revision. The two-field form is the 1991
	// revision, which predates the revision year field.
	line, err := lr.mustNext("station line")
	if err != nil {
		return nil, err
	}
	fields := readFields(line, -1, "")
	switch {
	case len(fields) >= 3:
		c.StationName, c.DeviceID, c.RawRevision = fields[0], fields[1], fields[2]
		rev, known := resolveRevision(c.RawRevision)
		if !known {
			if p.strictRevision {
				return nil, fmt.Errorf("%w: revision year %q", ErrUnsupportedRevision, c.RawRevision)
			}
			p.log.Warn("unknown standard revision year, using nearest known revision",
				log.String("declared", c.RawRevision), log.String("effective", rev.String()))
		}
		c.Revision = rev
	case len(fields) == 2:
		c.StationName, c.DeviceID = fields[0], fields[1]
		c.Revision = Rev1991
	default:
		return nil, lr.fail("station line needs station name and device id")
	}

	// Channel counts.
	line, err = lr.mustNext("channel count line")
	if err != nil {
		return nil, err
	}
	fields = readFields(line, 3, "0")
	total, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, lr.fail("invalid total channel count %q", fields[0])
	}
	analogCount, err := parseChannelCount(fields[1])
	if err != nil {
		return nil, lr.fail("invalid analog channel count %q", fields[1])
	}
	statusCount, err := parseChannelCount(fields[2])
	if err != nil {
		return nil, lr.fail("invalid status channel count %q", fields[2])
	}
	if total != analogCount+statusCount {
		p.log.Warn("declared channel total differs from analog+status sum",
			log.Int("total", total), log.Int("analog", analogCount), log.Int("status", statusCount))
	}

	// Channel declarations.
	c.AnalogChannels = make([]AnalogChannel, 0, analogCount)
	for i := 0; i < analogCount; i++ {
		if line, err = lr.mustNext("analog channel line"); err != nil {
			return nil, err
		}
		ch, err := parseAnalogChannel(line)
		if err != nil {
			return nil, lr.fail("%v", err)
		}
		c.AnalogChannels = append(c.AnalogChannels, ch)
	}
	c.StatusChannels = make([]StatusChannel, 0, statusCount)
	for i := 0; i < statusCount; i++ {
		if line, err = lr.mustNext("status channel line"); err != nil {
			return nil, err
		}
		ch, err := parseStatusChannel(line)
		if err != nil {
			return nil, lr.fail("%v", err)
		}
		c.StatusChannels = append(c.StatusChannels, ch)
	}

	// Line frequency. A blank line is allowed and leaves it at zero.
	if line, err = lr.mustNext("frequency line"); err != nil {
		return nil, err
	}
	if line != "" {
		if c.Frequency, err = strconv.ParseFloat(line, 64); err != nil {
			return nil, lr.fail("invalid line frequency %q", line)
		}
	}

	// Sample rate segments. A zero count marks a timestamp-critical
	// record but one rate line still follows.
	if line, err = lr.mustNext("sample rate count line"); err != nil {
		return nil, err
	}
	nrates, err := strconv.Atoi(line)
	if err != nil {
		return nil, lr.fail("invalid sample rate count %q", line)
	}
	if nrates == 0 {
		c.TimestampCritical = true
		nrates = 1
	}
	c.SampleRates = make([]SampleRate, 0, nrates)
	for i := 0; i < nrates; i++ {
		if line, err = lr.mustNext("sample rate line"); err != nil {
			return nil, err
		}
		f := readFields(line, -1, "")
		if len(f) < 2 {
			return nil, lr.fail("sample rate line needs rate and end sample")
		}
		rate, err := strconv.ParseFloat(f[0], 64)
		if err != nil {
			return nil, lr.fail("invalid sample rate %q", f[0])
		}
		end, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, lr.fail("invalid end sample %q", f[1])
		}
		if len(c.SampleRates) > 0 && end < c.SampleRates[len(c.SampleRates)-1].EndSample {
			return nil, lr.fail("sample rate end samples must be non-decreasing")
		}
		c.SampleRates = append(c.SampleRates, SampleRate{Rate: rate, EndSample: end})
	}

	// Start and trigger timestamps. Missing lines pin to the minimum
	// date rather than failing; the time base is the finer of the two.
	line, _ = lr.next()
	var startBase, trigBase float64
	c.StartTime, startBase = p.parseTimestamp(line, c.Revision, lr.n)
	line, _ = lr.next()
	c.TriggerTime, trigBase = p.parseTimestamp(line, c.Revision, lr.n)
	c.TimeBase = minFloat(startBase, trigBase)

	// Data format.
	if line, err = lr.mustNext("data format line"); err != nil {
		return nil, err
	}
	if c.Format, err = ParseDataFormat(line); err != nil {
		return nil, lr.fail("unknown data format %q", line)
	}

	// Timestamp multiplier, 1999 revision and above.
	if c.Revision == Rev1999 || c.Revision == Rev2013 {
		if line, ok := lr.next(); ok && line != "" {
			if c.TimeMult, err = strconv.ParseFloat(line, 64); err != nil {
				return nil, lr.fail("invalid timestamp multiplier %q", line)
			}
		}
	}

	// 2013 trailing lines, optional at end of file.
	if c.Revision == Rev2013 {
		if line, ok := lr.next(); ok && line != "" {
			f := readFields(line, 2, "")
			c.TimeCode, c.LocalCode = f[0], f[1]
			if line, ok = lr.next(); ok && line != "" {
				f = readFields(line, 2, "")
				c.TimeQuality = f[0]
				if f[1] != "" {
					if c.LeapSecond, err = strconv.Atoi(f[1]); err != nil {
						return nil, lr.fail("invalid leap second %q", f[1])
					}
				}
			}
		}
	}

	p.log.Debug("configuration parsed",
		log.String("station", c.StationName),
		log.String("revision", c.Revision.String()),
		log.Int("analog", len(c.AnalogChannels)),
		log.Int("status", len(c.StatusChannels)),
		log.Int("samples", c.TotalSamples()))
	return c, nil
}

// lineReader yields trimmed lines and tracks the line number for error
// reporting.
type lineReader struct {
	sc *bufio.Scanner
	n  int
}

func (lr *lineReader) next() (string, bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	lr.n++
	return strings.TrimSpace(lr.sc.Text()), true
}

func (lr *lineReader) mustNext(what string) (string, error) {
	line, ok := lr.next()
	if !ok {
		if err := lr.sc.Err(); err != nil {
			return "", fmt.Errorf("comtrade: read configuration: %w", err)
		}
		return "", fmt.Errorf("%w: unexpected end of file reading %s", ErrMalformedConfig, what)
	}
	return line, nil
}

func (lr *lineReader) fail(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedConfig, lr.n, fmt.Sprintf(format, args...))
}

// readFields splits a comma separated line, trimming each field.
// Missing trailing fields up to want are filled with def, extra fields
// beyond want are dropped. A negative want keeps every field.
func readFields(line string, want int, def string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	if want < 0 {
		return out
	}
	for len(out) < want {
		out = append(out, def)
	}
	return out[:want]
}

// parseChannelCount reads a channel count field, tolerating the A/D
// type suffix the standard appends.
func parseChannelCount(s string) (int, error) {
	s = strings.TrimRight(s, "AaDd")
	if s == "" {
		return 0, fmt.Errorf("empty channel count")
	}
	return strconv.Atoi(s)
}

func parseAnalogChannel(line string) (AnalogChannel, error) {
	// The 1991 revision stops after the range maximum; the trailing
	// transducer fields stay empty and the ratio defaults to 1.
	f := readFields(line, 13, "")
	var ch AnalogChannel
	var err error
	if ch.Index, err = strconv.Atoi(f[0]); err != nil {
		return ch, fmt.Errorf("invalid analog channel number %q", f[0])
	}
	ch.Name, ch.Phase, ch.Circuit, ch.Unit = f[1], f[2], f[3], f[4]
	if ch.Scale, err = strconv.ParseFloat(f[5], 64); err != nil {
		return ch, fmt.Errorf("invalid scale factor %q", f[5])
	}
	if ch.Offset, err = optionalFloat(f[6]); err != nil {
		return ch, fmt.Errorf("invalid offset %q", f[6])
	}
	if ch.Skew, err = optionalFloat(f[7]); err != nil {
		return ch, fmt.Errorf("invalid skew %q", f[7])
	}
	if ch.Min, err = strconv.ParseFloat(f[8], 64); err != nil {
		return ch, fmt.Errorf("invalid range minimum %q", f[8])
	}
	if ch.Max, err = strconv.ParseFloat(f[9], 64); err != nil {
		return ch, fmt.Errorf("invalid range maximum %q", f[9])
	}
	if ch.Primary, err = optionalFloat(f[10]); err != nil {
		return ch, fmt.Errorf("invalid primary factor %q", f[10])
	}
	if ch.Secondary, err = optionalFloat(f[11]); err != nil {
		return ch, fmt.Errorf("invalid secondary factor %q", f[11])
	}
	ch.Side = strings.ToUpper(f[12])
	return ch, nil
}

func parseStatusChannel(line string) (StatusChannel, error) {
	f := readFields(line, 5, "")
	var ch StatusChannel
	var err error
	if ch.Index, err = strconv.Atoi(f[0]); err != nil {
		return ch, fmt.Errorf("invalid status channel number %q", f[0])
	}
	ch.Name, ch.Phase, ch.Circuit = f[1], f[2], f[3]
	if f[4] != "" {
		if ch.NormalState, err = strconv.Atoi(f[4]); err != nil {
			return ch, fmt.Errorf("invalid normal state %q", f[4])
		}
	}
	return ch, nil
}

// resolveRevision maps a declared revision year to the effective
// standard revision. Unknown numeric years map to the nearest known
// revision, earlier on ties; anything else maps to 1999.
func resolveRevision(raw string) (Revision, bool) {
	switch raw {
	case "1991":
		return Rev1991, true
	case "1999":
		return Rev1999, true
	case "2013":
		return Rev2013, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return Rev1999, false
	}
	best := Rev1991
	for _, known := range []Revision{Rev1999, Rev2013} {
		if abs(year-int(known)) < abs(year-int(best)) {
			best = known
		}
	}
	return best, false
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
