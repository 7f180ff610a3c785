package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateDownloader(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSearch() error {
	parsed, err := url.Parse(c.Search.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("search.endpoint must be an absolute URL, got %q", c.Search.Endpoint)
	}
	if c.Search.ResultLimit < 1 {
		return errors.New("search.result_limit must be positive")
	}
	if c.Search.RequestTimeout < 1 {
		return errors.New("search.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateDownloader() error {
	if c.Downloader.Command == "" {
		return errors.New("downloader.command must be set")
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
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
