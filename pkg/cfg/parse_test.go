package cfg

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleCfg = `STATION_NAME,EQUIPMENT,2001
2,1A,1D
1, IA              ,,,A,2.762,0,0, -32768,32767,1,1,S
1, Diff Trip A     ,,,0
60
0
0,2
01/01/2000,10:30:00.228000
01/01/2000,10:30:00.722000
ASCII
1
`

func TestParse(t *testing.T) {
	c, err := ParseString(sampleCfg)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if c.StationName != "STATION_NAME" {
		t.Errorf("StationName = %v, want STATION_NAME", c.StationName)
	}
	if c.DeviceID != "EQUIPMENT" {
		t.Errorf("DeviceID = %v, want EQUIPMENT", c.DeviceID)
	}
	if c.RawRevision != "2001" {
		t.Errorf("RawRevision = %v, want 2001", c.RawRevision)
	}
	if c.Revision != Rev1999 {
		t.Errorf("Revision = %v, want %v", c.Revision, Rev1999)
	}
	if c.AnalogCount() != 1 || c.StatusCount() != 1 {
		t.Errorf("channel counts = %d analog, %d status, want 1 and 1", c.AnalogCount(), c.StatusCount())
	}
	if c.Frequency != 60 {
		t.Errorf("Frequency = %v, want 60", c.Frequency)
	}
	if !c.TimestampCritical {
		t.Error("TimestampCritical = false, want true")
	}
	if len(c.SampleRates) != 1 || c.SampleRates[0].Rate != 0 || c.SampleRates[0].EndSample != 2 {
		t.Errorf("SampleRates = %v, want [{0 2}]", c.SampleRates)
	}
	if c.TotalSamples() != 2 {
		t.Errorf("TotalSamples() = %v, want 2", c.TotalSamples())
	}
	if c.Format != FormatASCII {
		t.Errorf("Format = %v, want %v", c.Format, FormatASCII)
	}
	if c.TimeBase != TimeBaseMicro {
		t.Errorf("TimeBase = %v, want %v", c.TimeBase, TimeBaseMicro)
	}
	if c.TimeMult != 1 {
		t.Errorf("TimeMult = %v, want 1", c.TimeMult)
	}

	wantStart := time.Date(2000, 1, 1, 10, 30, 0, 228000000, time.UTC)
	if !c.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", c.StartTime, wantStart)
	}
	wantTrigger := time.Date(2000, 1, 1, 10, 30, 0, 722000000, time.UTC)
	if !c.TriggerTime.Equal(wantTrigger) {
		t.Errorf("TriggerTime = %v, want %v", c.TriggerTime, wantTrigger)
	}
}

func TestParseAnalogChannelFields(t *testing.T) {
	c, err := ParseString(sampleCfg)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ch := c.AnalogChannels[0]

	if ch.Index != 1 {
		t.Errorf("Index = %v, want 1", ch.Index)
	}
	if ch.Name != "IA" {
		t.Errorf("Name = %q, want IA", ch.Name)
	}
	if ch.Unit != "A" {
		t.Errorf("Unit = %q, want A", ch.Unit)
	}
	if ch.Scale != 2.762 {
		t.Errorf("Scale = %v, want 2.762", ch.Scale)
	}
	if ch.Offset != 0 || ch.Skew != 0 {
		t.Errorf("Offset, Skew = %v, %v, want 0, 0", ch.Offset, ch.Skew)
	}
	if ch.Min != -32768 || ch.Max != 32767 {
		t.Errorf("Min, Max = %v, %v, want -32768, 32767", ch.Min, ch.Max)
	}
	if ch.Primary != 1 || ch.Secondary != 1 {
		t.Errorf("Primary, Secondary = %v, %v, want 1, 1", ch.Primary, ch.Secondary)
	}
	if ch.Side != SideSecondary {
		t.Errorf("Side = %q, want %q", ch.Side, SideSecondary)
	}

	st := c.StatusChannels[0]
	if st.Index != 1 || st.Name != "Diff Trip A" || st.NormalState != 0 {
		t.Errorf("status channel = %+v, want index 1, name Diff Trip A, normal state 0", st)
	}
}

func TestParseTwoFieldStationLine(t *testing.T) {
	text := `STATION,EQUIPMENT
1,1A,0D
1,VA,,,V,1,0,0,-32768,32767
60
1
1200,24
02/01/1994,00:00:00.000000
02/01/1994,00:00:00.500000
ASCII
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.Revision != Rev1991 {
		t.Errorf("Revision = %v, want %v", c.Revision, Rev1991)
	}
	// 1991 dates are month/day/year.
	wantStart := time.Date(1994, 2, 1, 0, 0, 0, 0, time.UTC)
	if !c.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", c.StartTime, wantStart)
	}
	// Trailing ratio fields are absent in the 1991 layout.
	ch := c.AnalogChannels[0]
	if ch.Primary != 0 || ch.Secondary != 0 || ch.Side != "" {
		t.Errorf("ratio fields = %v, %v, %q, want 0, 0 and empty side", ch.Primary, ch.Secondary, ch.Side)
	}
	if ch.Ratio() != 1 {
		t.Errorf("Ratio() = %v, want 1", ch.Ratio())
	}
	if c.TimeMult != 1 {
		t.Errorf("TimeMult = %v, want 1", c.TimeMult)
	}
}

func TestParse2013TrailingLines(t *testing.T) {
	text := `STATION_NAME,EQUIPMENT,2013
2,1A,1D
1, Signal,,,A,1,0,0,-1,1,1,1,S
1, Status,,,0
60
0
0,4
01/01/2019,00:00:00.000000000
01/01/2019,00:00:00.000750000
BINARY
1
-4,0
F,0
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.Revision != Rev2013 {
		t.Errorf("Revision = %v, want %v", c.Revision, Rev2013)
	}
	if c.TimeBase != TimeBaseNano {
		t.Errorf("TimeBase = %v, want %v", c.TimeBase, TimeBaseNano)
	}
	wantTrigger := time.Date(2019, 1, 1, 0, 0, 0, 750000, time.UTC)
	if !c.TriggerTime.Equal(wantTrigger) {
		t.Errorf("TriggerTime = %v, want %v", c.TriggerTime, wantTrigger)
	}
	if c.TimeCode != "-4" || c.LocalCode != "0" {
		t.Errorf("TimeCode, LocalCode = %q, %q, want -4, 0", c.TimeCode, c.LocalCode)
	}
	if c.TimeQuality != "F" || c.LeapSecond != 0 {
		t.Errorf("TimeQuality, LeapSecond = %q, %d, want F, 0", c.TimeQuality, c.LeapSecond)
	}
}

func TestParse2013WithoutTrailingLines(t *testing.T) {
	text := `STATION_NAME,EQUIPMENT,2013
1,1A,0D
1, Signal,,,A,1,0,0,-1,1,1,1,S
60
1
1200,12
01/01/2019,00:00:00.000000
01/01/2019,00:00:00.010000
FLOAT32
1
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.TimeCode != "" || c.TimeQuality != "" {
		t.Errorf("TimeCode, TimeQuality = %q, %q, want empty", c.TimeCode, c.TimeQuality)
	}
}

func TestParseMultiRate(t *testing.T) {
	text := `STATION,EQ,1999
3,2A,1D
1,VA,,,V,1,0,0,-32768,32767,14400,120,P
2,VB,,,V,1,0,0,-32768,32767,14400,120,P
1,TRIP,,,0
50
2
4800,48
1200,56
18/02/2021,10:15:00.000000
18/02/2021,10:15:00.010000
BINARY
1
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.TimestampCritical {
		t.Error("TimestampCritical = true, want false")
	}
	if len(c.SampleRates) != 2 {
		t.Fatalf("len(SampleRates) = %d, want 2", len(c.SampleRates))
	}
	if c.TotalSamples() != 56 {
		t.Errorf("TotalSamples() = %d, want 56", c.TotalSamples())
	}
	wantStart := time.Date(2021, 2, 18, 10, 15, 0, 0, time.UTC)
	if !c.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", c.StartTime, wantStart)
	}
}

func TestParseBlankFrequency(t *testing.T) {
	text := `STATION,EQ,1999
1,1A,0D
1,VA,,,V,1,0,0,-32768,32767,1,1,P

1
1200,24
01/01/2020,00:00:00.000000
01/01/2020,00:00:00.010000
ASCII
1
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.Frequency != 0 {
		t.Errorf("Frequency = %v, want 0", c.Frequency)
	}
}

func TestParseMissingTimestampsPinned(t *testing.T) {
	text := `STATION,EQ,1999
1,1A,0D
1,VA,,,V,1,0,0,-32768,32767,1,1,P
60
1
1200,24
,
,
ASCII
1
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.StartTime.Year() != 1 {
		t.Errorf("StartTime.Year() = %d, want 1", c.StartTime.Year())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "single field station line",
			text: "STATION\n",
		},
		{
			name: "missing channel lines",
			text: "STATION,EQ,1999\n2,1A,1D\n",
		},
		{
			name: "bad total channel count",
			text: "STATION,EQ,1999\nx,1A,1D\n",
		},
		{
			name: "bad analog scale factor",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,bad,0,0,0,0,1,1,P\n",
		},
		{
			name: "bad analog channel number",
			text: "STATION,EQ,1999\n1,1A,0D\nx,VA,,,V,1,0,0,0,0,1,1,P\n",
		},
		{
			name: "bad sample rate count",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,1,0,0,0,0,1,1,P\n60\nx\n",
		},
		{
			name: "sample rate line missing end sample",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,1,0,0,0,0,1,1,P\n60\n1\n1200\n",
		},
		{
			name: "decreasing end samples",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,1,0,0,0,0,1,1,P\n60\n2\n4800,48\n1200,40\n01/01/2020,00:00:00.000000\n01/01/2020,00:00:00.010000\nASCII\n1\n",
		},
		{
			name: "unknown data format",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,1,0,0,0,0,1,1,P\n60\n1\n1200,24\n01/01/2020,00:00:00.000000\n01/01/2020,00:00:00.010000\nEBCDIC\n",
		},
		{
			name: "truncated before data format",
			text: "STATION,EQ,1999\n1,1A,0D\n1,VA,,,V,1,0,0,0,0,1,1,P\n60\n1\n1200,24\n01/01/2020,00:00:00.000000\n01/01/2020,00:00:00.010000\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.text)
			if !errors.Is(err, ErrMalformedConfig) {
				t.Errorf("ParseString() error = %v, want ErrMalformedConfig", err)
			}
		})
	}
}

func TestParseStrictRevision(t *testing.T) {
	p := NewParser(WithStrictRevision())
	_, err := p.Parse(strings.NewReader(sampleCfg))
	if !errors.Is(err, ErrUnsupportedRevision) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedRevision", err)
	}

	// Known years still pass in strict mode.
	known := strings.Replace(sampleCfg, "2001", "1999", 1)
	if _, err := p.Parse(strings.NewReader(known)); err != nil {
		t.Errorf("Parse() error = %v, want nil", err)
	}
}

func TestParseChannelTotalMismatchTolerated(t *testing.T) {
	text := `STATION,EQ,1999
9,1A,1D
1,VA,,,V,1,0,0,0,0,1,1,P
1,TRIP,,,0
60
1
1200,24
01/01/2020,00:00:00.000000
01/01/2020,00:00:00.010000
ASCII
1
`
	c, err := ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if c.ChannelCount() != 2 {
		t.Errorf("ChannelCount() = %d, want 2", c.ChannelCount())
	}
}

func TestResolveRevision(t *testing.T) {
	tests := []struct {
		raw   string
		want  Revision
		known bool
	}{
		{"1991", Rev1991, true},
		{"1999", Rev1999, true},
		{"2013", Rev2013, true},
		{"2001", Rev1999, false},
		{"2014", Rev2013, false},
		{"1995", Rev1991, false},
		{"2006", Rev1999, false},
		{"", Rev1999, false},
		{"199x", Rev1999, false},
	}
	for _, tt := range tests {
		got, known := resolveRevision(tt.raw)
		if got != tt.want || known != tt.known {
			t.Errorf("resolveRevision(%q) = %v, %v, want %v, %v", tt.raw, got, known, tt.want, tt.known)
		}
	}
}

func TestReadFields(t *testing.T) {
	got := readFields(" a , b ,c", 5, "0")
	want := []string{"a", "b", "c", "0", "0"}
	if len(got) != len(want) {
		t.Fatalf("readFields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("readFields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := readFields("a,b,c,d", 2, ""); len(got) != 2 {
		t.Errorf("readFields() kept %d fields, want 2", len(got))
	}
}
