package export

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// CSVWriter writes a record as delimited text, one line per sample.
// It implements the facade's TableWriter.
type CSVWriter struct {
	out    io.Writer
	w      *csv.Writer
	nan    string
	bom    bool
	record []string
}

// CSVOption configures a CSVWriter.
type CSVOption func(*CSVWriter)

// WithComma sets the field delimiter. The default is a comma.
func WithComma(r rune) CSVOption {
	return func(c *CSVWriter) {
		c.w.Comma = r
	}
}

// WithNaNLabel sets the cell text for missing analog samples. The
// default is "NaN"; an empty label produces empty cells.
func WithNaNLabel(label string) CSVOption {
	return func(c *CSVWriter) {
		c.nan = label
	}
}

// WithBOM prepends a UTF-8 byte order mark so spreadsheet applications
// pick up the encoding.
func WithBOM() CSVOption {
	return func(c *CSVWriter) {
		c.bom = true
	}
}

// NewCSV returns a CSVWriter targeting w.
func NewCSV(w io.Writer, opts ...CSVOption) *CSVWriter {
	c := &CSVWriter{out: w, w: csv.NewWriter(w), nan: "NaN"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriteHeader writes the optional byte order mark and the column line.
func (c *CSVWriter) WriteHeader(columns []string) error {
	if c.bom {
		if _, err := c.out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
	}
	return c.w.Write(columns)
}

// WriteRow writes one sample line.
func (c *CSVWriter) WriteRow(time float64, analog []float64, status []int32) error {
	rec := c.record[:0]
	rec = append(rec, formatFloat(time))
	for _, v := range analog {
		if math.IsNaN(v) {
			rec = append(rec, c.nan)
			continue
		}
		rec = append(rec, formatFloat(v))
	}
	for _, v := range status {
		rec = append(rec, strconv.Itoa(int(v)))
	}
	c.record = rec
	return c.w.Write(rec)
}

// Flush writes buffered lines through to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
