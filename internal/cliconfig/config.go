package cliconfig

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Export formats understood by the CLI.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config holds CLI configuration for comtrade.
type Config struct {
	// Encoding is the IANA character set of text sections, empty for
	// byte pass-through.
	Encoding string

	Format    string // export format, FormatCSV or FormatXLSX
	Output    string // export destination path, empty writes CSV to stdout
	NaNLabel  string // cell text for missing analog samples
	Delimiter string // CSV field delimiter
	BOM       bool   // prepend a UTF-8 byte order mark to CSV output

	Strict     bool // reject unknown revision tags
	Contiguous bool // decode into flat backing arrays

	// Debounce is how long a watched file must stay quiet before the
	// watcher loads it.
	Debounce time.Duration

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Format:    FormatCSV,
		NaNLabel:  "NaN",
		Delimiter: ",",
		Debounce:  500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("format must be %s or %s, got %q", FormatCSV, FormatXLSX, c.Format)
	}

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
