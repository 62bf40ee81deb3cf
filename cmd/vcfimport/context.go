package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vcfimport/internal/config"
	"vcfimport/internal/contactstore"
	"vcfimport/internal/importer"
	"vcfimport/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				if !logging.ValidLevel(level) {
					c.configErr = fmt.Errorf("--log-level: unsupported value %q", level)
					return
				}
				cfg.Logging.Level = level
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the command logger. Human output goes to the command's
// stderr so stdout carries only results. Callers release the log file with
// the returned close func.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) importOptions(cmd *cobra.Command, sinks ...importer.Sink) (importer.Options, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return importer.Options{}, nil, err
	}
	logger, closeLog, err := c.logger(cmd)
	if err != nil {
		return importer.Options{}, nil, err
	}
	return importer.Options{
		OnAmbiguousName: importer.Policy(cfg.Parse.OnAmbiguousName),
		Logger:          logger,
		Sinks:           sinks,
	}, closeLog, nil
}

func (c *commandContext) withStore(fn func(*contactstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Store.Enabled {
		return errors.New("contact store is disabled (set store.enabled = true in the config)")
	}
	store, err := contactstore.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open contact store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
