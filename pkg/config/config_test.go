package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fancylink/pkg/errors"
	"fancylink/pkg/formats"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "fancylink", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return configPath
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FANCYLINK_FORMAT", "FANCYLINK_CLEAN_URLS", "FANCYLINK_NOTIFY", "FANCYLINK_DEBUG", "FANCYLINK_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Success(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, `default_format: slack
clean_urls: true
show_notifications: true
debug_mode: false
include_current_page_in_bug_reports: true
`)

	s, err := LoadFromPath(configPath, formats.Default())
	if err != nil {
		t.Fatalf("LoadFromPath() returned error: %v", err)
	}

	if s.DefaultFormat != "slack" {
		t.Errorf("Expected default_format 'slack', got '%s'", s.DefaultFormat)
	}
	if !s.CleanURLs || !s.ShowNotifications || s.DebugMode || !s.IncludeCurrentPageInBugReports {
		t.Errorf("Unexpected settings: %+v", s)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "missing", "config.yaml")

	s, err := LoadFromPath(configPath, formats.Default())
	if err != nil {
		t.Fatalf("LoadFromPath() returned error: %v", err)
	}
	if *s != Defaults() {
		t.Errorf("Expected defaults, got %+v", s)
	}
	if s.DefaultFormat != "markdown" {
		t.Errorf("Expected default format 'markdown', got '%s'", s.DefaultFormat)
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "clean_urls: true\n")

	s, err := LoadFromPath(configPath, formats.Default())
	if err != nil {
		t.Fatalf("LoadFromPath() returned error: %v", err)
	}
	if s.DefaultFormat != DefaultFormat {
		t.Errorf("Expected default format %q, got %q", DefaultFormat, s.DefaultFormat)
	}
	if !s.CleanURLs {
		t.Error("Expected clean_urls true")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "default_format: [unclosed\n")

	_, err := LoadFromPath(configPath, formats.Default())
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !errors.IsExitCode(err, errors.ExitCodeConfig) {
		t.Errorf("Expected config exit code, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoad_UnknownDefaultFormat(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "default_format: bbcode\n")

	_, err := LoadFromPath(configPath, formats.Default())
	if err == nil {
		t.Fatal("Expected error for unknown format")
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Expected *errors.Error, got %T", err)
	}
	if e.Code != errors.ExitCodeConfig {
		t.Errorf("Code = %d, want %d", e.Code, errors.ExitCodeConfig)
	}
	if !strings.Contains(e.Suggestion, "markdown") {
		t.Errorf("Suggestion should list valid formats, got %q", e.Suggestion)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "default_format: slack\nclean_urls: true\n")

	t.Setenv("FANCYLINK_FORMAT", "html")
	t.Setenv("FANCYLINK_CLEAN_URLS", "false")
	t.Setenv("FANCYLINK_DEBUG", "1")

	s, err := LoadFromPath(configPath, formats.Default())
	if err != nil {
		t.Fatalf("LoadFromPath() returned error: %v", err)
	}
	if s.DefaultFormat != "html" {
		t.Errorf("Expected env format 'html', got '%s'", s.DefaultFormat)
	}
	if s.CleanURLs {
		t.Error("Expected FANCYLINK_CLEAN_URLS=false to win over the file")
	}
	if !s.DebugMode {
		t.Error("Expected FANCYLINK_DEBUG=1 to enable debug mode")
	}
}

func TestLoad_InvalidEnvironmentBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("FANCYLINK_NOTIFY", "sometimes")

	_, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"), formats.Default())
	if !errors.IsExitCode(err, errors.ExitCodeConfig) {
		t.Fatalf("Expected config error, got %v", err)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("FANCYLINK_CONFIG", "")
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() failed: %v", err)
	}
	if filepath.Base(path) != "config.yaml" || filepath.Base(filepath.Dir(path)) != "fancylink" {
		t.Errorf("Unexpected config path %q", path)
	}

	t.Setenv("FANCYLINK_CONFIG", "/tmp/custom.yaml")
	path, err = GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() failed: %v", err)
	}
	if path != "/tmp/custom.yaml" {
		t.Errorf("Expected FANCYLINK_CONFIG to win, got %q", path)
	}
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	original := Settings{
		DefaultFormat:     "rtf",
		CleanURLs:         true,
		ShowNotifications: true,
	}
	if err := SaveToPath(configPath, &original); err != nil {
		t.Fatalf("SaveToPath() returned error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Saved config is not YAML: %v", err)
	}
	if raw["default_format"] != "rtf" {
		t.Errorf("Expected default_format key in saved YAML, got %v", raw)
	}

	loaded, err := LoadFromPath(configPath, formats.Default())
	if err != nil {
		t.Fatalf("LoadFromPath() returned error: %v", err)
	}
	if *loaded != original {
		t.Errorf("Reloaded %+v, want %+v", loaded, original)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(Settings) bool
		wantErr errors.ExitCode
	}{
		{
			name:  "default format",
			key:   "default-format",
			value: "plaintext",
			check: func(s Settings) bool { return s.DefaultFormat == "plaintext" },
		},
		{
			name:  "clean urls",
			key:   "clean-urls",
			value: "true",
			check: func(s Settings) bool { return s.CleanURLs },
		},
		{
			name:  "bug report page",
			key:   "include-current-page-in-bug-reports",
			value: "yes-not-a-bool",
			// rejected below
			wantErr: errors.ExitCodeValidation,
		},
		{
			name:    "unknown format",
			key:     "default-format",
			value:   "bbcode",
			wantErr: errors.ExitCodeConfig,
		},
		{
			name:    "unknown key",
			key:     "theme",
			value:   "dark",
			wantErr: errors.ExitCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			before := s
			err := s.Set(tt.key, tt.value, formats.Default())

			if tt.wantErr != 0 {
				if !errors.IsExitCode(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want exit code %d", err, tt.wantErr)
				}
				if s != before {
					t.Errorf("failed Set() modified settings: %+v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() returned error: %v", err)
			}
			if !tt.check(s) {
				t.Errorf("Set(%q, %q) produced %+v", tt.key, tt.value, s)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 5 {
		t.Fatalf("Keys() = %v", keys)
	}
	if keys[0] != "clean-urls" {
		t.Errorf("Keys() not sorted: %v", keys)
	}
}

func TestLoadFileFromPathIgnoresEnvironment(t *testing.T) {
	clearEnv(t)
	configPath := writeConfig(t, "default_format: bbcode\n")
	t.Setenv("FANCYLINK_FORMAT", "html")

	s, err := LoadFileFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFileFromPath() returned error: %v", err)
	}
	if s.DefaultFormat != "bbcode" {
		t.Errorf("DefaultFormat = %q, want the file value", s.DefaultFormat)
	}

	// A broken value can still be repaired through Set.
	if err := s.Set("default-format", "slack", formats.Default()); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	if s.DefaultFormat != "slack" {
		t.Errorf("DefaultFormat = %q after Set", s.DefaultFormat)
	}
}
