package cliconfig

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"COMTRADE_ENCODING": "windows-1252",
				"COMTRADE_FORMAT":   "xlsx",
				"COMTRADE_DEBOUNCE": "2s",
				"COMTRADE_STRICT":   "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Encoding: "windows-1252",
				Format:   "xlsx",
				Debounce: 2 * time.Second,
				Strict:   true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"COMTRADE_ENCODING": "iso-8859-1",
				"COMTRADE_FORMAT":   "xlsx",
			},
			changed: map[string]bool{"encoding": true},
			initial: Config{
				Encoding: "utf-16",
			},
			expected: Config{
				Encoding: "utf-16",
				Format:   "xlsx",
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"COMTRADE_DEBOUNCE": "not-a-duration",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"COMTRADE_CONTIGUOUS": "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Contiguous: true,
			},
			wantErr: false,
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"COMTRADE_STRICT": "false",
			},
			changed: map[string]bool{},
			initial: Config{Strict: true},
			expected: Config{
				Strict: false,
			},
			wantErr: false,
		},
		{
			name: "handles all field types correctly",
			envVars: map[string]string{
				"COMTRADE_ENCODING":   "windows-1252",
				"COMTRADE_FORMAT":     "csv",
				"COMTRADE_OUTPUT":     "/tmp/out.csv",
				"COMTRADE_NAN_LABEL":  "missing",
				"COMTRADE_DELIMITER":  ";",
				"COMTRADE_BOM":        "true",
				"COMTRADE_STRICT":     "false",
				"COMTRADE_CONTIGUOUS": "1",
				"COMTRADE_DEBOUNCE":   "750ms",
				"COMTRADE_VERBOSE":    "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Encoding:   "windows-1252",
				Format:     "csv",
				Output:     "/tmp/out.csv",
				NaNLabel:   "missing",
				Delimiter:  ";",
				BOM:        true,
				Strict:     false,
				Contiguous: true,
				Debounce:   750 * time.Millisecond,
				Verbose:    true,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			// Clean up after test
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	trueVal := true

	// Setup file config
	fileConf := FileConfig{
		Encoding: "file-charset",
		Format:   "xlsx",
		BOM:      &trueVal,
	}

	// Setup env vars
	os.Setenv("COMTRADE_ENCODING", "env-charset")
	os.Setenv("COMTRADE_FORMAT", "csv")
	os.Setenv("COMTRADE_OUTPUT", "/env/out.csv")
	defer func() {
		os.Unsetenv("COMTRADE_ENCODING")
		os.Unsetenv("COMTRADE_FORMAT")
		os.Unsetenv("COMTRADE_OUTPUT")
	}()

	// Simulate CLI flags
	changed := map[string]bool{
		"encoding": true, // CLI flag was set for encoding
	}

	cfg := Config{
		Encoding: "cli-charset", // This should remain (CLI wins)
	}

	// Apply file config
	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}

	// Apply env config
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	// Verify precedence: CLI > Env > File
	if cfg.Encoding != "cli-charset" {
		t.Errorf("Encoding = %v, want cli-charset (CLI should win)", cfg.Encoding)
	}
	if cfg.Format != "csv" {
		t.Errorf("Format = %v, want csv (env should override file)", cfg.Format)
	}
	if cfg.Output != "/env/out.csv" {
		t.Errorf("Output = %v, want /env/out.csv (env should set)", cfg.Output)
	}
	if cfg.BOM != true {
		t.Errorf("BOM = %v, want true (file should set)", cfg.BOM)
	}
}
