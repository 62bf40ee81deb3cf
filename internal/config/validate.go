package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateParse(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateParse() error {
	switch c.Parse.OnAmbiguousName {
	case AmbiguousAbort, AmbiguousSkip:
		return nil
	default:
		return fmt.Errorf("parse.on_ambiguous_name must be %q or %q, got %q", AmbiguousAbort, AmbiguousSkip, c.Parse.OnAmbiguousName)
	}
}

func (c *Config) validateExport() error {
	if utf8.RuneCountInString(c.Export.Delimiter) != 1 {
		return fmt.Errorf("export.delimiter must be a single character, got %q", c.Export.Delimiter)
	}
	switch c.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("export.delimiter %q is not allowed", c.Export.Delimiter)
	}
	seen := make(map[string]struct{}, len(c.Export.Fields))
	for _, field := range c.Export.Fields {
		if _, dup := seen[field]; dup {
			return fmt.Errorf("export.fields lists %q more than once", field)
		}
		seen[field] = struct{}{}
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Enabled && c.Store.Path == "" {
		return errors.New("store.path must be set when store.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
