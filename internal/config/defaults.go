package config

const (
	defaultCatalogPath          = "~/.local/share/tunedex/library.db"
	defaultSearchEndpoint       = "http://127.0.0.1:8537/search"
	defaultSearchResultLimit    = 25
	defaultSearchRequestTimeout = 30
	defaultDownloaderCommand    = "gytmdl"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Search: Search{
			Endpoint:       defaultSearchEndpoint,
			ResultLimit:    defaultSearchResultLimit,
			RequestTimeout: defaultSearchRequestTimeout,
		},
		Downloader: Downloader{
			Command: defaultDownloaderCommand,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
