package export

import (
	"math"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter streams a record into an Excel workbook, one sheet row
// per sample. It implements the facade's TableWriter; the file is
// written on Flush.
type XLSXWriter struct {
	path   string
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
	nan    string
	cells  []interface{}
}

// XLSXOption configures an XLSXWriter.
type XLSXOption func(*XLSXWriter)

// WithXLSXNaNLabel sets the cell text for missing analog samples. The
// default is "NaN".
func WithXLSXNaNLabel(label string) XLSXOption {
	return func(x *XLSXWriter) {
		x.nan = label
	}
}

// NewXLSX returns an XLSXWriter that saves the workbook to path on
// Flush.
func NewXLSX(path string, opts ...XLSXOption) (*XLSXWriter, error) {
	f := excelize.NewFile()
	stream, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	x := &XLSXWriter{path: path, file: f, stream: stream, nan: "NaN"}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

// WriteHeader writes the column names into the first sheet row.
func (x *XLSXWriter) WriteHeader(columns []string) error {
	cells := make([]interface{}, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	x.row = 1
	return x.setRow(cells)
}

// WriteRow writes one sample into the next sheet row.
func (x *XLSXWriter) WriteRow(time float64, analog []float64, status []int32) error {
	cells := x.cells[:0]
	cells = append(cells, time)
	for _, v := range analog {
		if math.IsNaN(v) {
			cells = append(cells, x.nan)
			continue
		}
		cells = append(cells, v)
	}
	for _, v := range status {
		cells = append(cells, int(v))
	}
	x.cells = cells
	x.row++
	return x.setRow(cells)
}

// Flush finishes the stream and saves the workbook.
func (x *XLSXWriter) Flush() error {
	defer func() { _ = x.file.Close() }()
	if err := x.stream.Flush(); err != nil {
		return err
	}
	return x.file.SaveAs(x.path)
}

func (x *XLSXWriter) setRow(cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return err
	}
	return x.stream.SetRow(cell, cells)
}
