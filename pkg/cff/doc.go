// Package cff splits combined COMTRADE files (CFF, introduced by the
// 2013 revision) into their configuration, data, header and
// information sections.
//
// A combined file carries each section behind a marker line of the
// form "--- file type: TAG ---". Binary data sections extend the
// marker with a format token and a byte count, "--- file type: DAT
// BINARY: 1344 ---", and are framed by that count rather than by line
// scanning.
//
// # Usage
//
//	data, err := os.ReadFile("fault.cff")
//	if err != nil {
//		return err
//	}
//	sections, err := cff.Split(data)
//	if err != nil {
//		return err
//	}
//	conf, err := cfg.Parse(bytes.NewReader(sections.CFG))
//
// # Errors
//
// Split returns errors wrapping ErrMalformedFile for unknown section
// tags, byte counts that overrun the input, and content appearing
// before the first marker. Use errors.Is to classify.
//
// # Version
//
// Use Version and MinCompatibleVersion to check compatibility at
// integration points.
package cff
