// Package export provides tabular sinks for oscillography records.
//
// CSVWriter writes delimiter-separated text to any io.Writer and
// XLSXWriter streams rows into an Excel workbook. Both implement the
// comtrade TableWriter interface, so a loaded record can be exported
// with Record.Export.
package export
