package state

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tunedex/internal/catalog"
	"tunedex/internal/downloader"
	"tunedex/internal/logging"
)

// Searcher is the gateway surface the coordinator drives.
type Searcher interface {
	Search(ctx context.Context, query string) ([]catalog.Track, error)
}

// Library is the catalog surface the coordinator reads.
type Library interface {
	LoadAll(ctx context.Context) ([]catalog.Track, error)
}

// Invoker is the download surface the coordinator drives.
type Invoker interface {
	Name() string
	Available() bool
	Run(ctx context.Context, url, title string) downloader.Result
}

// Coordinator is the single owner of the application state. All transitions
// happen here: long-running work (remote search, library reload, downloads)
// runs on worker goroutines and resolves back through the coordinator, which
// serializes every state replacement under one mutex and publishes the result
// on the event channel a single presentation loop consumes.
type Coordinator struct {
	library Library
	gateway Searcher
	invoker Invoker
	logger  *slog.Logger

	// exclusive rejects a new download while one is running instead of
	// letting downloads overlap.
	exclusive bool

	mu        sync.Mutex
	snapshot  Snapshot
	searchSeq uint64
	downloads int

	events chan Event
}

// Option configures optional coordinator behavior.
type Option func(*Coordinator)

// WithExclusiveDownloads switches the overlap policy from concurrent to
// one-at-a-time.
func WithExclusiveDownloads() Option {
	return func(c *Coordinator) {
		c.exclusive = true
	}
}

// New constructs a coordinator. It publishes nothing until Start runs.
func New(library Library, gateway Searcher, invoker Invoker, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	c := &Coordinator{
		library: library,
		gateway: gateway,
		invoker: invoker,
		logger:  logging.WithComponent(logger, "state"),
		events:  make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the channel snapshots and notices arrive on.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Snapshot returns the current application state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Start loads the library into the initial snapshot. A store failure here is
// the one fatal path: without a readable catalog there is nothing to show.
func (c *Coordinator) Start(ctx context.Context) (Snapshot, error) {
	tracks, err := c.library.LoadAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load library: %w", err)
	}

	snap := Snapshot{Results: tracks, Source: SourceLibrary}
	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	c.logger.Info("library loaded", "tracks", len(tracks))
	return snap, nil
}

// Search begins an asynchronous remote search. Issuing a new search
// supersedes any in-flight one: a completion whose token no longer matches
// the latest issue is discarded, so the state only ever reflects the most
// recent request.
func (c *Coordinator) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.emit(ctx, Notice{Level: NoticeWarning, Message: "Nothing to search for."})
		return
	}

	c.mu.Lock()
	c.searchSeq++
	token := c.searchSeq
	c.mu.Unlock()

	c.emit(ctx, Notice{Message: fmt.Sprintf("Searching for '%s'...", query)})

	go func() {
		tracks, err := c.gateway.Search(ctx, query)
		c.completeSearch(ctx, token, query, tracks, err)
	}()
}

func (c *Coordinator) completeSearch(ctx context.Context, token uint64, query string, tracks []catalog.Track, err error) {
	c.mu.Lock()
	if token != c.searchSeq {
		c.mu.Unlock()
		c.logger.Debug("discarded superseded search", "query", query, "token", token)
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("search failed", "query", query, logging.Error(err))
		c.emit(ctx, Notice{
			Level:   NoticeError,
			Message: "An error occurred during search.",
			Detail:  err.Error(),
		})
		return
	}

	snap := Snapshot{Results: tracks, Source: SourceSearch}
	c.snapshot = snap
	c.mu.Unlock()

	c.emit(ctx, SnapshotUpdated{Snapshot: snap})
	if len(tracks) == 0 {
		c.emit(ctx, Notice{Message: fmt.Sprintf("No music found for '%s'.", query)})
		return
	}
	c.emit(ctx, Notice{
		Level:   NoticeSuccess,
		Message: fmt.Sprintf("Found %d results. New entries saved to your library.", len(tracks)),
	})
}

// Highlight replaces the selection with the track matching the given id, or
// clears it when the id is empty or unknown. The result list is untouched.
// A highlight that resolves to the current selection publishes nothing.
func (c *Coordinator) Highlight(ctx context.Context, videoID string) {
	c.mu.Lock()
	selected := c.snapshot.Lookup(videoID)
	if sameSelection(c.snapshot.Selected, selected) {
		c.mu.Unlock()
		return
	}
	snap := Snapshot{
		Results:  c.snapshot.Results,
		Selected: selected,
		Source:   c.snapshot.Source,
	}
	c.snapshot = snap
	c.mu.Unlock()

	c.emit(ctx, SnapshotUpdated{Snapshot: snap})
}

func sameSelection(a, b *catalog.Track) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Activate commits to a track: it looks the id up in the current results and
// begins an asynchronous download. Download outcomes never modify the
// application state; they only produce attributed notices.
func (c *Coordinator) Activate(ctx context.Context, videoID string) {
	c.mu.Lock()
	track := c.snapshot.Lookup(videoID)
	if track == nil {
		c.mu.Unlock()
		c.emit(ctx, Notice{Level: NoticeWarning, Message: "No track selected."})
		return
	}
	if !c.invoker.Available() {
		c.mu.Unlock()
		c.emit(ctx, Notice{
			Level:   NoticeError,
			Message: fmt.Sprintf("Download failed: Command '%s' not found.", c.invoker.Name()),
		})
		return
	}
	if c.exclusive && c.downloads > 0 {
		c.mu.Unlock()
		c.emit(ctx, Notice{
			Level:   NoticeWarning,
			Message: fmt.Sprintf("A download is already running; '%s' was not started.", track.Title),
		})
		return
	}
	c.downloads++
	c.mu.Unlock()

	job := uuid.NewString()[:8]
	c.emit(ctx, Notice{Message: fmt.Sprintf("Queueing '%s' for download [%s]...", track.Title, job)})

	go func() {
		res := c.invoker.Run(ctx, track.Link, track.Title)

		c.mu.Lock()
		c.downloads--
		c.mu.Unlock()

		level := NoticeError
		if res.Success {
			level = NoticeSuccess
		}
		c.emit(ctx, Notice{Level: level, Message: fmt.Sprintf("[%s] %s", job, res.Message)})
	}()
}

// ShowLibrary reloads the full catalog asynchronously and replaces the
// visible results with it. Library reloads ride the same supersession tokens
// as searches: issuing one cancels any in-flight search, and a newer search
// or reload discards this completion in turn.
func (c *Coordinator) ShowLibrary(ctx context.Context) {
	c.mu.Lock()
	c.searchSeq++
	token := c.searchSeq
	c.mu.Unlock()

	c.emit(ctx, Notice{Message: "Loading music library..."})

	go func() {
		tracks, err := c.library.LoadAll(ctx)
		c.completeLibrary(ctx, token, tracks, err)
	}()
}

func (c *Coordinator) completeLibrary(ctx context.Context, token uint64, tracks []catalog.Track, err error) {
	c.mu.Lock()
	if token != c.searchSeq {
		c.mu.Unlock()
		c.logger.Debug("discarded superseded library reload", "token", token)
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("library reload failed", logging.Error(err))
		c.emit(ctx, Notice{
			Level:   NoticeError,
			Message: "Could not read the local library.",
			Detail:  err.Error(),
		})
		return
	}

	snap := Snapshot{Results: tracks, Source: SourceLibrary}
	c.snapshot = snap
	c.mu.Unlock()

	c.emit(ctx, SnapshotUpdated{Snapshot: snap})
	c.emit(ctx, Notice{Message: fmt.Sprintf("Displaying %d songs from your local library.", len(tracks))})
}

// Downloading reports whether any download is still in flight.
func (c *Coordinator) Downloading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloads > 0
}

func (c *Coordinator) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}
