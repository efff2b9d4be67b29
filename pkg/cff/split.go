package cff

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gridtrace/comtrade/pkg/log"
)

// ErrMalformedFile is returned for framing violations in a combined
// file: unknown section tags, byte counts past the end of input, or
// content outside any section. It can be checked with errors.Is.
var ErrMalformedFile = errors.New("comtrade: malformed combined file")

// markerPattern matches a section marker line, e.g.
//
//	--- file type: CFG ---
//	--- file type: DAT BINARY: 1344 ---
//
// The format token and byte count are optional. Counted sections carry
// exactly that many body bytes after the marker line; uncounted
// sections run until the next marker.
var markerPattern = regexp.MustCompile(`(?i)^--- file type: ([a-z]+)(?:\s+([a-z0-9]+)(?:\s*:\s*([0-9]+))?)? ---$`)

// Sections holds the demultiplexed parts of a combined file.
type Sections struct {
	CFG []byte
	DAT []byte
	HDR []byte
	INF []byte

	// DataFormat is the format token from the DAT marker, empty when
	// the marker carries none. The configuration section stays the
	// authority on the data encoding.
	DataFormat string
}

// Option configures splitting.
type Option func(*options)

type options struct {
	log log.Logger
}

// WithLogger sets the logger used for split warnings.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Detect reports whether data looks like a combined file: its first
// non-blank line is a section marker.
func Detect(data []byte) bool {
	for pos := 0; pos < len(data); {
		end, next := lineBounds(data, pos)
		line := strings.TrimSpace(string(data[pos:end]))
		if line != "" {
			return markerPattern.MatchString(line)
		}
		pos = next
	}
	return false
}

// Split demultiplexes a combined stream into its sections. Counted
// sections are read as exactly the declared number of bytes; uncounted
// sections accumulate raw lines until the next marker. Repeated
// markers for one section concatenate.
func Split(data []byte, opts ...Option) (*Sections, error) {
	o := newOptions(opts)
	s := &Sections{}

	var current *[]byte
	pos := 0
	for pos < len(data) {
		end, next := lineBounds(data, pos)
		text := strings.TrimSpace(string(data[pos:end]))

		m := markerPattern.FindStringSubmatch(text)
		if m == nil {
			if current == nil {
				if text != "" {
					return nil, fmt.Errorf("%w: content outside any section at byte %d", ErrMalformedFile, pos)
				}
				pos = next
				continue
			}
			*current = append(*current, data[pos:next]...)
			pos = next
			continue
		}

		tag := strings.ToUpper(m[1])
		target, err := s.section(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v at byte %d", ErrMalformedFile, err, pos)
		}
		if tag == "DAT" && m[2] != "" {
			s.DataFormat = strings.ToUpper(m[2])
		}

		if m[3] == "" {
			current = target
			pos = next
			continue
		}

		// Counted body: exactly n bytes follow the marker line.
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid byte count %q at byte %d", ErrMalformedFile, m[3], pos)
		}
		if next+n > len(data) {
			return nil, fmt.Errorf("%w: section %s declares %d bytes, %d remain", ErrMalformedFile, tag, n, len(data)-next)
		}
		*target = append(*target, data[next:next+n]...)
		pos = next + n
		pos += skipLineBreak(data, pos)
		current = nil
	}

	o.log.Debug("combined file split",
		log.Int("cfg_bytes", len(s.CFG)),
		log.Int("dat_bytes", len(s.DAT)),
		log.Int("hdr_bytes", len(s.HDR)),
		log.Int("inf_bytes", len(s.INF)),
		log.String("data_format", s.DataFormat))
	return s, nil
}

func (s *Sections) section(tag string) (*[]byte, error) {
	switch tag {
	case "CFG":
		return &s.CFG, nil
	case "DAT":
		return &s.DAT, nil
	case "HDR":
		return &s.HDR, nil
	case "INF":
		return &s.INF, nil
	}
	return nil, fmt.Errorf("unknown section type %q", tag)
}

// lineBounds returns the end of the line starting at pos (excluding
// the terminator) and the start of the next line.
func lineBounds(data []byte, pos int) (end, next int) {
	if nl := bytes.IndexByte(data[pos:], '\n'); nl >= 0 {
		return pos + nl, pos + nl + 1
	}
	return len(data), len(data)
}

// skipLineBreak returns the width of a line terminator at pos, so a
// counted body and the next marker may be separated by one newline.
func skipLineBreak(data []byte, pos int) int {
	if pos < len(data) && data[pos] == '\r' && pos+1 < len(data) && data[pos+1] == '\n' {
		return 2
	}
	if pos < len(data) && data[pos] == '\n' {
		return 1
	}
	return 0
}
