package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tunedex/internal/catalog"
	"tunedex/internal/config"
	"tunedex/internal/logging"
	"tunedex/internal/musicsearch"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) flagPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) withStore(fn func(*config.Config, *catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func (c *commandContext) newGateway(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *musicsearch.Gateway {
	client := musicsearch.NewHTTPClient(cfg.Search.Endpoint, time.Duration(cfg.Search.RequestTimeout)*time.Second)
	return musicsearch.NewGateway(client, store, cfg.Search.ResultLimit, logger)
}

// fileLogger writes to the configured log directory only. The terminal stays
// reserved for whatever the command itself renders.
func (c *commandContext) fileLogger(cfg *config.Config) (*slog.Logger, error) {
	if cfg.Logging.Dir == "" {
		return logging.NewNop(), nil
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{filepath.Join(cfg.Logging.Dir, "tunedex.log")},
	})
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
