// FILE: lixenwraith/linelog/config.go
package linelog

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all session configuration values
type Config struct {
	// Target
	Path     string `toml:"path"`      // Target file; parent directory must exist
	FileMode int64  `toml:"file_mode"` // Permission bits for a newly created target

	// Layout
	Header          string `toml:"header"`           // Empty selects the rule-framed session start time
	HeaderLayout    bool   `toml:"header_layout"`    // Session header + severity labels; false gives "<timestamp> <message>"
	TopInsert       bool   `toml:"top_insert"`       // Place new lines near the start of the file
	CallerTrace     bool   `toml:"caller_trace"`     // Append " - at <caller>" to records
	TimestampFormat string `toml:"timestamp_format"` // Layout for header time and headerless line prefix
	Sanitization    string `toml:"sanitization"`     // "escape" or "hex"

	// Retention
	LineLimit   int64 `toml:"line_limit"`   // Ceiling on retained lines, 0 disables eviction
	CountHeader bool  `toml:"count_header"` // Header lines count toward line_limit

	// Durability
	SyncOnWrite bool `toml:"sync_on_write"` // fsync after every append

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Path:     "",
	FileMode: int64(defaultFileMode),

	Header:          "",
	HeaderLayout:    true,
	TopInsert:       false,
	CallerTrace:     true,
	TimestampFormat: DefaultTimestampFormat,
	Sanitization:    SanitizeEscape,

	LineLimit:   3000,
	CountHeader: true,

	SyncOnWrite: false,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys live under the "linelog." prefix; a missing file yields the defaults.
// Optional "key=value" overrides are applied after the file and before validation.
func NewConfigFromFile(path string, overrides ...string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct("linelog.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "linelog.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := applyOverrideStrings(cfg, overrides); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromOverrides creates a validated Config from the defaults and "key=value" overrides
func NewConfigFromOverrides(overrides ...string) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrideStrings(cfg, overrides); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig copies loader values into the Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmtErrorf("path cannot be empty")
	}

	if strings.ContainsAny(c.Header, "\r\n") {
		return fmtErrorf("header must be a single line")
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.Sanitization != SanitizeEscape && c.Sanitization != SanitizeHex {
		return fmtErrorf("invalid sanitization: '%s' (use %s or %s)", c.Sanitization, SanitizeEscape, SanitizeHex)
	}

	if c.LineLimit < 0 {
		return fmtErrorf("line_limit cannot be negative: %d", c.LineLimit)
	}

	if c.FileMode < 0 || c.FileMode > int64(os.ModePerm) {
		return fmtErrorf("file_mode must be permission bits between 0 and 0777: %o", c.FileMode)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// fileMode resolves the permission bits for a new target
func (c *Config) fileMode() os.FileMode {
	if c.FileMode == 0 {
		return defaultFileMode
	}
	return os.FileMode(c.FileMode) & os.ModePerm
}
