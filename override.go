// FILE: lixenwraith/linelog/override.go
package linelog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyConfigString applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification, so a failed override leaves the session untouched.
//
// Example:
//
//	err := logger.ApplyConfigString(
//	    "top_insert=true",
//	    "line_limit=500",
//	    "file_mode=0600",
//	)
func (l *Logger) ApplyConfigString(overrides ...string) error {
	cfg := l.getConfig().Clone()

	if err := applyOverrideStrings(cfg, overrides); err != nil {
		return err
	}

	return l.ApplyConfig(cfg)
}

// applyOverrideStrings applies every "key=value" string and reports all failures together
func applyOverrideStrings(cfg *Config, overrides []string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	return combineConfigErrors(errors)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("linelog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "linelog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// fieldSetter parses one override value into its Config field
type fieldSetter func(cfg *Config, value string) error

func stringField(field func(*Config) *string) fieldSetter {
	return func(cfg *Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func boolField(field func(*Config) *bool) fieldSetter {
	return func(cfg *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = b
		return nil
	}
}

// intField parses in the given base; file_mode is written in octal
func intField(base int, field func(*Config) *int64) fieldSetter {
	return func(cfg *Config, value string) error {
		n, err := strconv.ParseInt(value, base, 64)
		if err != nil {
			return err
		}
		*field(cfg) = n
		return nil
	}
}

// overrideFields lists every key accepted by ApplyConfigString, matching the toml tags
var overrideFields = map[string]fieldSetter{
	"path":      stringField(func(c *Config) *string { return &c.Path }),
	"file_mode": intField(8, func(c *Config) *int64 { return &c.FileMode }),

	"header":           stringField(func(c *Config) *string { return &c.Header }),
	"header_layout":    boolField(func(c *Config) *bool { return &c.HeaderLayout }),
	"top_insert":       boolField(func(c *Config) *bool { return &c.TopInsert }),
	"caller_trace":     boolField(func(c *Config) *bool { return &c.CallerTrace }),
	"timestamp_format": stringField(func(c *Config) *string { return &c.TimestampFormat }),
	"sanitization": func(c *Config, value string) error {
		c.Sanitization = strings.ToLower(value)
		return nil
	},

	"line_limit":   intField(10, func(c *Config) *int64 { return &c.LineLimit }),
	"count_header": boolField(func(c *Config) *bool { return &c.CountHeader }),

	"sync_on_write":             boolField(func(c *Config) *bool { return &c.SyncOnWrite }),
	"internal_errors_to_stderr": boolField(func(c *Config) *bool { return &c.InternalErrorsToStderr }),
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	set, ok := overrideFields[key]
	if !ok {
		return fmtErrorf("unknown configuration key '%s'", key)
	}
	if err := set(cfg, value); err != nil {
		return fmtErrorf("invalid value for %s '%s': %w", key, value, err)
	}
	return nil
}
