// Package cfg reads and writes the configuration section of COMTRADE
// records.
//
// The configuration section is comma separated text describing the
// recording station, the analog and status channels, sampling rate
// segments and timestamps. Three standard revisions are understood:
// 1991, 1999 and 2013. Files declaring other years are mapped to the
// nearest known revision with a warning, or rejected when the parser
// is built with WithStrictRevision.
//
// # Usage
//
// Parse a configuration section from any reader:
//
//	conf, err := cfg.Parse(file)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(conf.StationName, conf.TotalSamples())
//
// Config.Write renders a parsed or hand-built configuration back to
// text in the layout of its revision.
//
// # Errors
//
// Structural problems return ErrMalformedConfig with the offending
// line number. Strict parsers return ErrUnsupportedRevision for
// unknown revision years. Both match errors.Is.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package cfg
