// =============================================================================
// Sheet Generator - Configuration Module
// =============================================================================
//
// This module loads the optional settings file that tunes how sources are
// fetched and parsed. Nothing in it is required: a run with no settings file
// uses the defaults below.
//
// SETTINGS FILE (sheetgen.yaml):
//
//   fetch_timeout: 30s          # HTTP timeout for URL sources
//   user_agent: sheetgen/1.0.0  # User-Agent header for URL sources
//   log_level: warn             # panic|fatal|error|warn|info|debug|trace
//   csv:
//     delimiter: ","            # single character or tab|pipe|semicolon
//     comment: ""               # lines starting with this character are skipped
//     trim_leading_space: false
//   xlsx:
//     sheet: ""                 # sheet to read; empty means the first sheet
//
// LOOKUP ORDER:
//   1. The file named by --config, if given (it must exist).
//   2. sheetgen.yaml in the working directory.
//   3. sheetgen.yaml in the user's home directory.
//
// Values bound from command-line flags take precedence over the file.
// Environment variables are not consulted.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/sheet-gen/pkg/utils"
)

// =============================================================================
// KEYS AND DEFAULTS
// =============================================================================

const (
	KeyFetchTimeout     = "fetch_timeout"
	KeyUserAgent        = "user_agent"
	KeyLogLevel         = "log_level"
	KeyCSVDelimiter     = "csv.delimiter"
	KeyCSVComment       = "csv.comment"
	KeyCSVTrimLeading   = "csv.trim_leading_space"
	KeyXLSXSheet        = "xlsx.sheet"
	DefaultFetchTimeout = 30 * time.Second
	DefaultLogLevel     = "warn"
	DefaultDelimiter    = ","

	configFileName = "sheetgen.yaml"
)

// ErrInvalidSettings is wrapped by every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// =============================================================================
// SETTINGS STRUCTURES
// =============================================================================

// Settings holds the tunable options for a run.
type Settings struct {
	// FetchTimeout bounds a single HTTP request for a URL source.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// UserAgent is sent with every HTTP request.
	UserAgent string `mapstructure:"user_agent"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`

	CSV  CSVSettings  `mapstructure:"csv"`
	XLSX XLSXSettings `mapstructure:"xlsx"`
}

// CSVSettings contains settings for parsing CSV sources.
type CSVSettings struct {
	// Delimiter separates fields. Besides any single character the aliases
	// "tab" (or "\t"), "pipe" and "semicolon" are accepted.
	// Default: ","
	Delimiter string `mapstructure:"delimiter"`

	// Comment, when set, marks lines to skip. Must be a single character.
	Comment string `mapstructure:"comment"`

	// TrimLeadingSpace strips leading white space from each field.
	TrimLeadingSpace bool `mapstructure:"trim_leading_space"`
}

// XLSXSettings contains settings for reading XLSX sources.
type XLSXSettings struct {
	// Sheet names the sheet to read. Empty selects the first sheet.
	Sheet string `mapstructure:"sheet"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings(version string) *Settings {
	return &Settings{
		FetchTimeout: DefaultFetchTimeout,
		UserAgent:    "sheetgen/" + version,
		LogLevel:     DefaultLogLevel,
		CSV:          CSVSettings{Delimiter: DefaultDelimiter},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper, version string) {
	d := DefaultSettings(version)
	v.SetDefault(KeyFetchTimeout, d.FetchTimeout)
	v.SetDefault(KeyUserAgent, d.UserAgent)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyCSVDelimiter, d.CSV.Delimiter)
	v.SetDefault(KeyCSVComment, "")
	v.SetDefault(KeyCSVTrimLeading, false)
	v.SetDefault(KeyXLSXSheet, "")
}

// Load reads the settings file into v and decodes the result.
//
// PARAMETERS:
//   - v: The viper instance; flags may already be bound to it.
//   - cfgFile: Explicit settings file path, or "" to search the defaults.
//   - version: Application version, used for the default user agent.
//
// RETURNS:
//   - The decoded and validated settings.
//   - An error if an explicit file is missing, any file is malformed, or a
//     value fails validation.
func Load(v *viper.Viper, cfgFile, version string) (*Settings, error) {
	SetDefaults(v, version)

	path := cfgFile
	if path == "" {
		path = findSettingsFile(searchDirs())
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// searchDirs returns the directories searched when no settings file is named:
// the working directory, then the user's home directory.
func searchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// findSettingsFile returns the first regular file named sheetgen.yaml in
// dirs, or "" if there is none. Only the exact name matches.
func findSettingsFile(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, configFileName)
		if utils.FileExists(path) {
			return path
		}
	}
	return ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks values that would otherwise fail late, during a build.
func (s *Settings) Validate() error {
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidSettings, KeyFetchTimeout, s.FetchTimeout)
	}
	if _, err := s.CSV.DelimiterRune(); err != nil {
		return err
	}
	if _, err := s.CSV.CommentRune(); err != nil {
		return err
	}
	return nil
}

// DelimiterRune resolves the configured delimiter to a single rune.
func (c CSVSettings) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return ',', nil
	case `\t`, "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon", "SEMICOLON":
		return ';', nil
	}
	r, ok := singleRune(c.Delimiter)
	if !ok || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: %s %q is not a usable delimiter", ErrInvalidSettings, KeyCSVDelimiter, c.Delimiter)
	}
	return r, nil
}

// CommentRune resolves the configured comment character. Zero means none.
func (c CSVSettings) CommentRune() (rune, error) {
	if c.Comment == "" {
		return 0, nil
	}
	r, ok := singleRune(c.Comment)
	if !ok {
		return 0, fmt.Errorf("%w: %s %q must be a single character", ErrInvalidSettings, KeyCSVComment, c.Comment)
	}
	return r, nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}
