package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fancylink/pkg/errors"
	"fancylink/pkg/formats"

	"gopkg.in/yaml.v3"
)

// DefaultFormat is used when no format is configured anywhere.
const DefaultFormat = formats.KeyMarkdown

// Settings is the flat settings object.
type Settings struct {
	DefaultFormat                  string `yaml:"default_format" json:"default_format"`
	CleanURLs                      bool   `yaml:"clean_urls" json:"clean_urls"`
	ShowNotifications              bool   `yaml:"show_notifications" json:"show_notifications"`
	DebugMode                      bool   `yaml:"debug_mode" json:"debug_mode"`
	IncludeCurrentPageInBugReports bool   `yaml:"include_current_page_in_bug_reports" json:"include_current_page_in_bug_reports"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{DefaultFormat: DefaultFormat}
}

// Load reads the settings file, applies environment overrides and validates
// the result against reg.
func Load(reg *formats.Registry) (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return LoadFromPath(configPath, reg)
}

// GetConfigPath returns the path to the config file. FANCYLINK_CONFIG wins
// over the per-user config directory.
func GetConfigPath() (string, error) {
	if p := os.Getenv("FANCYLINK_CONFIG"); p != "" {
		return p, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "fancylink", "config.yaml"), nil
}

// LoadFromPath is Load for an explicit file.
func LoadFromPath(configPath string, reg *formats.Registry) (*Settings, error) {
	s, err := LoadFileFromPath(configPath)
	if err != nil {
		return nil, err
	}

	if err := applyEnvironmentOverrides(s); err != nil {
		return nil, err
	}

	if err := s.Validate(reg); err != nil {
		return nil, err
	}

	return s, nil
}

// LoadFileFromPath reads only the file, without environment overrides or
// validation. It is what `config set` edits.
func LoadFileFromPath(configPath string) (*Settings, error) {
	s := Defaults()
	if err := loadConfigFile(configPath, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes s to the default config path.
func Save(s *Settings) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return SaveToPath(configPath, s)
}

// SaveToPath writes s as YAML, creating the directory when needed.
func SaveToPath(configPath string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

// Validate checks that the default format exists in reg.
func (s *Settings) Validate(reg *formats.Registry) error {
	if s.DefaultFormat == "" {
		return errors.ConfigError("default_format is empty")
	}
	if reg != nil && !reg.Has(s.DefaultFormat) {
		return &errors.Error{
			Code:       errors.ExitCodeConfig,
			Message:    fmt.Sprintf("default_format %q is not a known format", s.DefaultFormat),
			Suggestion: "Valid formats: " + strings.Join(reg.Keys(), ", "),
		}
	}
	return nil
}

// Keys lists the names accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var setters = map[string]func(s *Settings, value string) error{
	"default-format": func(s *Settings, v string) error {
		s.DefaultFormat = strings.TrimSpace(v)
		return nil
	},
	"clean-urls":         boolSetter(func(s *Settings) *bool { return &s.CleanURLs }),
	"show-notifications": boolSetter(func(s *Settings) *bool { return &s.ShowNotifications }),
	"debug-mode":         boolSetter(func(s *Settings) *bool { return &s.DebugMode }),
	"include-current-page-in-bug-reports": boolSetter(func(s *Settings) *bool {
		return &s.IncludeCurrentPageInBugReports
	}),
}

func boolSetter(field func(*Settings) *bool) func(*Settings, string) error {
	return func(s *Settings, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.ValidationError(fmt.Sprintf("invalid boolean %q", v))
		}
		*field(s) = b
		return nil
	}
}

// Set assigns value to the setting named key (kebab-case, see Keys) and
// validates the result against reg.
func (s *Settings) Set(key, value string, reg *formats.Registry) error {
	setter, ok := setters[key]
	if !ok {
		return errors.NewWithSuggestion(errors.ExitCodeValidation,
			fmt.Sprintf("unknown setting %q", key),
			"Valid settings: "+strings.Join(Keys(), ", "))
	}

	next := *s
	if err := setter(&next, value); err != nil {
		return err
	}
	if err := next.Validate(reg); err != nil {
		return err
	}
	*s = next
	return nil
}

func getEnvBool(key string) (bool, bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return false, false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, errors.ConfigError(fmt.Sprintf("%s must be a boolean, got %q", key, value))
	}
	return b, true, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, s *Settings) error {
	if _, err := os.Stat(path); err != nil {
		// No file yet: defaults plus environment.
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	if s.DefaultFormat == "" {
		s.DefaultFormat = DefaultFormat
	}

	return nil
}

// applyEnvironmentOverrides applies FANCYLINK_* environment variables on top
// of the file settings.
func applyEnvironmentOverrides(s *Settings) error {
	if v := os.Getenv("FANCYLINK_FORMAT"); v != "" {
		s.DefaultFormat = v
	}

	overrides := []struct {
		env   string
		field *bool
	}{
		{"FANCYLINK_CLEAN_URLS", &s.CleanURLs},
		{"FANCYLINK_NOTIFY", &s.ShowNotifications},
		{"FANCYLINK_DEBUG", &s.DebugMode},
	}
	for _, o := range overrides {
		b, ok, err := getEnvBool(o.env)
		if err != nil {
			return err
		}
		if ok {
			*o.field = b
		}
	}
	return nil
}
