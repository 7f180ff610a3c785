package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeSearch()
	c.normalizeDownloader()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	var err error
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSearch() {
	c.Search.Endpoint = strings.TrimSpace(c.Search.Endpoint)
	if c.Search.Endpoint == "" {
		if value, ok := os.LookupEnv("TUNEDEX_SEARCH_ENDPOINT"); ok {
			c.Search.Endpoint = strings.TrimSpace(value)
		}
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = defaultSearchEndpoint
	}
	if c.Search.ResultLimit == 0 {
		c.Search.ResultLimit = defaultSearchResultLimit
	}
	if c.Search.RequestTimeout == 0 {
		c.Search.RequestTimeout = defaultSearchRequestTimeout
	}
}

func (c *Config) normalizeDownloader() {
	c.Downloader.Command = strings.TrimSpace(c.Downloader.Command)
	if c.Downloader.Command == "" {
		c.Downloader.Command = defaultDownloaderCommand
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
