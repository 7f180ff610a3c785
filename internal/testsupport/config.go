package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tunedex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Path = filepath.Join(base, "library.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Search.Endpoint = "http://127.0.0.1:0/search"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDownloadCommand overrides the external download command name.
func WithDownloadCommand(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Downloader.Command = name
	}
}

// WithStubbedBinary writes a stub executable with the given name and body and
// prepends its directory to PATH for the duration of the test. An empty body
// produces a stub that exits 0.
func WithStubbedBinary(name, body string) ConfigOption {
	return func(b *configBuilder) {
		StubBinary(b.t, b.baseDir, name, body)
	}
}

// StubBinary writes an executable shell stub under baseDir/bin and prepends
// that directory to PATH, restoring PATH when the test finishes.
func StubBinary(t testing.TB, baseDir, name, body string) {
	t.Helper()

	binDir := filepath.Join(baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	if body == "" {
		body = "#!/bin/sh\nexit 0\n"
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}
