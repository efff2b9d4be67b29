package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (COMTRADE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("encoding", os.Getenv("COMTRADE_ENCODING"), &cfg.Encoding)
	s.setString("format", os.Getenv("COMTRADE_FORMAT"), &cfg.Format)
	s.setString("output", os.Getenv("COMTRADE_OUTPUT"), &cfg.Output)
	s.setString("nan", os.Getenv("COMTRADE_NAN_LABEL"), &cfg.NaNLabel)
	s.setString("delimiter", os.Getenv("COMTRADE_DELIMITER"), &cfg.Delimiter)

	if err := s.setDuration("debounce", os.Getenv("COMTRADE_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("bom", os.Getenv("COMTRADE_BOM"), &cfg.BOM)
	s.setBoolFromString("strict", os.Getenv("COMTRADE_STRICT"), &cfg.Strict)
	s.setBoolFromString("contiguous", os.Getenv("COMTRADE_CONTIGUOUS"), &cfg.Contiguous)
	s.setBoolFromString("verbose", os.Getenv("COMTRADE_VERBOSE"), &cfg.Verbose)

	return nil
}
