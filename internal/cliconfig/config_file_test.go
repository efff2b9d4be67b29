package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Encoding: "windows-1252",
				Format:   "xlsx",
				Debounce: "2s",
				Strict:   &trueVal,
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
			fileConfig: FileConfig{
				Encoding: "iso-8859-1",
				Format:   "xlsx",
			},
			changed: map[string]bool{"encoding": true},
			initial: Config{
				Encoding: "utf-16",
				Format:   "csv",
			},
			expected: Config{
				Encoding: "utf-16", // unchanged because flag was set
				Format:   "xlsx",
			},
			wantErr: false,
		},
		{
			name: "handles all field types correctly",
			fileConfig: FileConfig{
				Encoding:   "windows-1252",
				Format:     "csv",
				Output:     "/tmp/out.csv",
				NaNLabel:   "",
				Delimiter:  ";",
				BOM:        &trueVal,
				Strict:     &falseVal,
				Contiguous: &trueVal,
				Debounce:   "750ms",
				Verbose:    &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Encoding:   "windows-1252",
				Format:     "csv",
				Output:     "/tmp/out.csv",
				Delimiter:  ";",
				BOM:        true,
				Strict:     false,
				Contiguous: true,
				Debounce:   750 * time.Millisecond,
				Verbose:    true,
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				Debounce: "not-a-duration",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := strings.Join([]string{
		`encoding = "windows-1252"`,
		`format = "xlsx"`,
		`output = "/tmp/records.xlsx"`,
		`delimiter = ";"`,
		`strict = true`,
		`debounce = "1s"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Encoding != "windows-1252" {
		t.Errorf("Encoding = %v, want windows-1252", fc.Encoding)
	}
	if fc.Format != "xlsx" {
		t.Errorf("Format = %v, want xlsx", fc.Format)
	}
	if fc.Output != "/tmp/records.xlsx" {
		t.Errorf("Output = %v, want /tmp/records.xlsx", fc.Output)
	}
	if fc.Delimiter != ";" {
		t.Errorf("Delimiter = %v, want ;", fc.Delimiter)
	}
	if fc.Strict == nil || !*fc.Strict {
		t.Error("Strict = nil or false, want true")
	}
	if fc.Debounce != "1s" {
		t.Errorf("Debounce = %v, want 1s", fc.Debounce)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Error("LoadFileConfig() expected error for missing file")
	}
}

func TestLoadFileConfigInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("format = [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadFileConfig(path)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
}
