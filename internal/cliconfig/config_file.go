package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Encoding   string `toml:"encoding"`
	Format     string `toml:"format"`
	Output     string `toml:"output"`
	NaNLabel   string `toml:"nan_label"`
	Delimiter  string `toml:"delimiter"`
	BOM        *bool  `toml:"bom"`
	Strict     *bool  `toml:"strict"`
	Contiguous *bool  `toml:"contiguous"`
	Debounce   string `toml:"debounce"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.comtrade/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".comtrade", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("encoding", fc.Encoding, &cfg.Encoding)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("nan", fc.NaNLabel, &cfg.NaNLabel)
	s.setString("delimiter", fc.Delimiter, &cfg.Delimiter)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("bom", fc.BOM, &cfg.BOM)
	s.setBool("strict", fc.Strict, &cfg.Strict)
	s.setBool("contiguous", fc.Contiguous, &cfg.Contiguous)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
