package cfg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write renders the configuration section in the layout of its
// revision. Parsing the output yields an equivalent Config: channel
// counts, ordering, scale factors and rate segments all survive the
// round trip.
func (c *Config) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	// Station, device and revision. The 1991 revision without an
	// explicit year keeps the two-field form.
	rev := c.RawRevision
	if rev == "" && c.Revision != 0 {
		rev = c.Revision.String()
	}
	if c.Revision == Rev1991 && c.RawRevision == "" {
		fmt.Fprintf(bw, "%s,%s\r\n", c.StationName, c.DeviceID)
	} else {
		fmt.Fprintf(bw, "%s,%s,%s\r\n", c.StationName, c.DeviceID, rev)
	}

	fmt.Fprintf(bw, "%d,%dA,%dD\r\n", c.ChannelCount(), len(c.AnalogChannels), len(c.StatusChannels))

	for _, ch := range c.AnalogChannels {
		if c.Revision == Rev1991 {
			fmt.Fprintf(bw, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s\r\n",
				ch.Index, ch.Name, ch.Phase, ch.Circuit, ch.Unit,
				ftoa(ch.Scale), ftoa(ch.Offset), ftoa(ch.Skew),
				ftoa(ch.Min), ftoa(ch.Max))
			continue
		}
		fmt.Fprintf(bw, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\r\n",
			ch.Index, ch.Name, ch.Phase, ch.Circuit, ch.Unit,
			ftoa(ch.Scale), ftoa(ch.Offset), ftoa(ch.Skew),
			ftoa(ch.Min), ftoa(ch.Max),
			ftoa(ch.Primary), ftoa(ch.Secondary), ch.Side)
	}
	for _, ch := range c.StatusChannels {
		fmt.Fprintf(bw, "%d,%s,%s,%s,%d\r\n", ch.Index, ch.Name, ch.Phase, ch.Circuit, ch.NormalState)
	}

	fmt.Fprintf(bw, "%s\r\n", ftoa(c.Frequency))

	if c.TimestampCritical {
		fmt.Fprintf(bw, "0\r\n")
	} else {
		fmt.Fprintf(bw, "%d\r\n", len(c.SampleRates))
	}
	for _, sr := range c.SampleRates {
		fmt.Fprintf(bw, "%s,%d\r\n", ftoa(sr.Rate), sr.EndSample)
	}

	fmt.Fprintf(bw, "%s\r\n", formatTimestamp(c.StartTime, c.Revision, c.TimeBase))
	fmt.Fprintf(bw, "%s\r\n", formatTimestamp(c.TriggerTime, c.Revision, c.TimeBase))

	fmt.Fprintf(bw, "%s\r\n", c.Format)

	if c.Revision == Rev1999 || c.Revision == Rev2013 {
		mult := c.TimeMult
		if mult == 0 {
			mult = 1
		}
		fmt.Fprintf(bw, "%s\r\n", ftoa(mult))
	}
	if c.Revision == Rev2013 {
		if c.TimeCode != "" || c.LocalCode != "" || c.TimeQuality != "" || c.LeapSecond != 0 {
			fmt.Fprintf(bw, "%s,%s\r\n", c.TimeCode, c.LocalCode)
			fmt.Fprintf(bw, "%s,%d\r\n", c.TimeQuality, c.LeapSecond)
		}
	}

	return bw.Flush()
}

// String renders the configuration section as text.
func (c *Config) String() string {
	var sb strings.Builder
	_ = c.Write(&sb)
	return sb.String()
}

// ftoa renders a float the compact way configuration files write them.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
