package cfg

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gridtrace/comtrade/pkg/log"
)

var (
	datePattern = regexp.MustCompile(`^([0-9]{1,2})/([0-9]{1,2})/([0-9]{2,4})`)
	timePattern = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2}):([0-9]{2})(?:\.([0-9]{1,12}))?`)
)

// parseTimestamp reads one "date,time" configuration line. The 1991
// revision writes dates as month/day/year, later revisions as
// day/month/year. Blank or unparsable parts fall back to the minimum
// representable date, with a warning. The returned base is TimeBaseNano
// when the fraction carries more than six digits, TimeBaseMicro
// otherwise.
func (p *Parser) parseTimestamp(line string, rev Revision, lineNo int) (time.Time, float64) {
	var day, month, year, hour, minute, second, nsec int
	base := TimeBaseMicro

	if line != "" {
		f := readFields(line, 2, "")
		dateStr, timeStr := f[0], f[1]
		if dateStr != "" {
			if m := datePattern.FindStringSubmatch(dateStr); m != nil {
				if rev == Rev1991 {
					month, day, year = atoiOr0(m[1]), atoiOr0(m[2]), atoiOr0(m[3])
				} else {
					day, month, year = atoiOr0(m[1]), atoiOr0(m[2]), atoiOr0(m[3])
				}
			}
		}
		if timeStr != "" {
			if m := timePattern.FindStringSubmatch(timeStr); m != nil {
				hour, minute, second = atoiOr0(m[1]), atoiOr0(m[2]), atoiOr0(m[3])
				nsec, base = p.parseFraction(m[4], lineNo)
			}
		}
	}

	pinned := false
	if year <= 0 {
		year = 1
		pinned = true
	}
	if month <= 0 {
		month = 1
		pinned = true
	}
	if day <= 0 {
		day = 1
		pinned = true
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, second, nsec, time.UTC)
	if pinned {
		p.log.Warn("timestamp missing date values, using minimum date",
			log.Int("line", lineNo),
			log.String("timestamp", ts.Format(time.RFC3339Nano)))
	}
	return ts, base
}

// parseFraction converts the fractional second digits to nanoseconds.
// Up to six digits mean a microsecond base, seven to nine a nanosecond
// base. Digits beyond nine are dropped.
func (p *Parser) parseFraction(frac string, lineNo int) (int, float64) {
	if frac == "" {
		return 0, TimeBaseMicro
	}
	if len(frac) > 9 {
		p.log.Warn("timestamp fraction beyond nanosecond resolution, truncating",
			log.Int("line", lineNo), log.String("fraction", frac))
		frac = frac[:9]
	}
	base := TimeBaseMicro
	width := 6
	if len(frac) > 6 {
		base = TimeBaseNano
		width = 9
	}
	for len(frac) < width {
		frac += "0"
	}
	n := atoiOr0(frac)
	if width == 6 {
		n *= 1000
	}
	return n, base
}

// formatTimestamp renders a timestamp the way the given revision writes
// it, with a microsecond or nanosecond fraction depending on base.
func formatTimestamp(ts time.Time, rev Revision, base float64) string {
	var date string
	if rev == Rev1991 {
		date = fmt.Sprintf("%02d/%02d/%04d", int(ts.Month()), ts.Day(), ts.Year())
	} else {
		date = fmt.Sprintf("%02d/%02d/%04d", ts.Day(), int(ts.Month()), ts.Year())
	}
	if base == TimeBaseNano {
		return fmt.Sprintf("%s,%02d:%02d:%02d.%09d", date, ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond())
	}
	return fmt.Sprintf("%s,%02d:%02d:%02d.%06d", date, ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond()/1000)
}
