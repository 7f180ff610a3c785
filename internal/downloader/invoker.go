package downloader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"tunedex/internal/logging"
)

var commandContext = exec.CommandContext

// Result reports the outcome of one download invocation.
type Result struct {
	Success bool
	Message string
}

// Invoker wraps the external download command. The executable path resolves
// once at construction; an Invoker whose command is missing reports that
// through Available and refuses to spawn anything.
type Invoker struct {
	name   string
	path   string
	logger *slog.Logger
}

// New resolves the named command and returns an invoker for it.
func New(command string, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = logging.NewNop()
	}
	inv := &Invoker{
		name:   strings.TrimSpace(command),
		logger: logging.WithComponent(logger, "downloader"),
	}
	if inv.name != "" {
		if path, err := exec.LookPath(inv.name); err == nil {
			inv.path = path
		}
	}
	return inv
}

// Name returns the configured command name.
func (i *Invoker) Name() string {
	return i.name
}

// Available reports whether the command resolved to an executable.
func (i *Invoker) Available() bool {
	return i.path != ""
}

// Run invokes the download command with the track URL as its only argument and
// waits for it to finish. The returned message always names the track so
// concurrent completions stay attributable. Run never returns an error through
// the message channel semantics: every failure mode folds into the Result.
func (i *Invoker) Run(ctx context.Context, url, title string) Result {
	if !i.Available() {
		return Result{Message: fmt.Sprintf("Command '%s' not found.", i.name)}
	}

	cmd := commandContext(ctx, i.path, url)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	i.logger.Info("download started", "title", title, "url", url)
	if err := cmd.Start(); err != nil {
		i.logger.Error("download spawn failed", "title", title, logging.Error(err))
		return Result{Message: fmt.Sprintf("An unexpected error occurred during the download of '%s': %v", title, err)}
	}

	if err := cmd.Wait(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		i.logger.Warn("download failed", "title", title, logging.Error(err))
		return Result{Message: fmt.Sprintf("Download failed for '%s'. Details:\n%s", title, detail)}
	}

	i.logger.Info("download finished", "title", title)
	return Result{Success: true, Message: fmt.Sprintf("Download successful for '%s'.", title)}
}
