package state_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tunedex/internal/catalog"
	"tunedex/internal/downloader"
	"tunedex/internal/state"
)

type fakeLibrary struct {
	tracks []catalog.Track
	err    error
	gate   chan struct{}
}

func (f *fakeLibrary) LoadAll(ctx context.Context) ([]catalog.Track, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.tracks, f.err
}

type fakeSearcher struct {
	fn func(ctx context.Context, query string) ([]catalog.Track, error)
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]catalog.Track, error) {
	return f.fn(ctx, query)
}

type fakeInvoker struct {
	name      string
	available bool
	gate      chan struct{}
	result    downloader.Result
	runs      atomic.Int32
}

func (f *fakeInvoker) Name() string    { return f.name }
func (f *fakeInvoker) Available() bool { return f.available }

func (f *fakeInvoker) Run(ctx context.Context, _, _ string) downloader.Result {
	f.runs.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
	}
	return f.result
}

func track(id, title string) catalog.Track {
	return catalog.Track{
		VideoID: id,
		Title:   title,
		Artist:  "Artist",
		Link:    catalog.LinkFor(id),
	}
}

func nextEvent(t *testing.T, c *state.Coordinator) state.Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// waitForSnapshot drains events until a snapshot arrives.
func waitForSnapshot(t *testing.T, c *state.Coordinator) state.Snapshot {
	t.Helper()
	for i := 0; i < 20; i++ {
		if ev, ok := nextEvent(t, c).(state.SnapshotUpdated); ok {
			return ev.Snapshot
		}
	}
	t.Fatal("no snapshot event observed")
	return state.Snapshot{}
}

// waitForNotice drains events until a notice containing the substring arrives.
func waitForNotice(t *testing.T, c *state.Coordinator, substring string) state.Notice {
	t.Helper()
	for i := 0; i < 20; i++ {
		if ev, ok := nextEvent(t, c).(state.Notice); ok && strings.Contains(ev.Message, substring) {
			return ev
		}
	}
	t.Fatalf("no notice containing %q observed", substring)
	return state.Notice{}
}

func TestStartLoadsLibrary(t *testing.T) {
	library := &fakeLibrary{tracks: []catalog.Track{track("a", "Alpha")}}
	c := state.New(library, &fakeSearcher{}, &fakeInvoker{}, nil)

	snap, err := c.Start(context.Background())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(snap.Results) != 1 || snap.Source != state.SourceLibrary {
		t.Fatalf("unexpected snapshot %#v", snap)
	}
	if snap.Selected != nil {
		t.Fatal("expected no selection at start")
	}
}

func TestStartFailsWhenLibraryUnreadable(t *testing.T) {
	library := &fakeLibrary{err: errors.New("disk gone")}
	c := state.New(library, &fakeSearcher{}, &fakeInvoker{}, nil)

	if _, err := c.Start(context.Background()); err == nil {
		t.Fatal("expected startup error")
	}
}

func TestSearchReplacesResultsAndClearsSelection(t *testing.T) {
	searcher := &fakeSearcher{fn: func(context.Context, string) ([]catalog.Track, error) {
		return []catalog.Track{track("x", "Found")}, nil
	}}
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("x", "Old")}}, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Highlight(ctx, "x")
	if snap := waitForSnapshot(t, c); snap.Selected == nil {
		t.Fatal("expected selection after highlight")
	}

	c.Search(ctx, "found")
	snap := waitForSnapshot(t, c)
	if snap.Source != state.SourceSearch {
		t.Fatalf("expected search source, got %v", snap.Source)
	}
	// Same video id exists in old and new results; selection must still clear.
	if snap.Selected != nil {
		t.Fatalf("expected selection cleared by new results, got %#v", snap.Selected)
	}
	if len(snap.Results) != 1 || snap.Results[0].Title != "Found" {
		t.Fatalf("unexpected results %#v", snap.Results)
	}
}

func TestStaleSearchCompletionIsDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	releaseB := make(chan struct{})
	searcher := &fakeSearcher{fn: func(ctx context.Context, query string) ([]catalog.Track, error) {
		switch query {
		case "A":
			<-releaseA
			return []catalog.Track{track("a", "From A")}, nil
		default:
			<-releaseB
			return []catalog.Track{track("b", "From B")}, nil
		}
	}}
	c := state.New(&fakeLibrary{}, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	c.Search(ctx, "A")
	c.Search(ctx, "B")

	// B completes first and wins.
	close(releaseB)
	snap := waitForSnapshot(t, c)
	if snap.Results[0].Title != "From B" {
		t.Fatalf("expected B's results, got %#v", snap.Results)
	}

	// A completes afterwards and must be ignored.
	close(releaseA)
	time.Sleep(100 * time.Millisecond)
	final := c.Snapshot()
	if len(final.Results) != 1 || final.Results[0].Title != "From B" {
		t.Fatalf("stale search overwrote state: %#v", final.Results)
	}
}

func TestSearchErrorLeavesStateUnchanged(t *testing.T) {
	searcher := &fakeSearcher{fn: func(context.Context, string) ([]catalog.Track, error) {
		return nil, errors.New("remote search error: boom")
	}}
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("keep", "Keeper")}}, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	before, err := c.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	c.Search(ctx, "broken")
	notice := waitForNotice(t, c, "error occurred during search")
	if notice.Level != state.NoticeError {
		t.Fatalf("expected error notice, got %#v", notice)
	}
	if !strings.Contains(notice.Detail, "boom") {
		t.Fatalf("expected diagnostic detail, got %q", notice.Detail)
	}

	after := c.Snapshot()
	if !after.SameResults(before) {
		t.Fatalf("state changed on failed search: %#v", after.Results)
	}
}

func TestSearchEmptyResultsReplaceState(t *testing.T) {
	searcher := &fakeSearcher{fn: func(context.Context, string) ([]catalog.Track, error) {
		return []catalog.Track{}, nil
	}}
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("keep", "Keeper")}}, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Search(ctx, "obscure")

	snap := waitForSnapshot(t, c)
	if len(snap.Results) != 0 {
		t.Fatalf("expected empty results, got %#v", snap.Results)
	}
	waitForNotice(t, c, "No music found")
}

func TestHighlightUnknownIDClearsSelection(t *testing.T) {
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("a", "Alpha")}}, &fakeSearcher{}, &fakeInvoker{}, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Highlight(ctx, "a")
	if snap := waitForSnapshot(t, c); snap.Selected == nil || snap.Selected.VideoID != "a" {
		t.Fatalf("expected selection a, got %#v", snap.Selected)
	}

	c.Highlight(ctx, "missing")
	if snap := waitForSnapshot(t, c); snap.Selected != nil {
		t.Fatalf("expected cleared selection, got %#v", snap.Selected)
	}
}

func TestActivateUnavailableInvoker(t *testing.T) {
	invoker := &fakeInvoker{name: "gytmdl", available: false}
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("a", "Alpha")}}, &fakeSearcher{}, invoker, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Activate(ctx, "a")

	notice := waitForNotice(t, c, "not found")
	if notice.Level != state.NoticeError {
		t.Fatalf("expected error notice, got %#v", notice)
	}
	if invoker.runs.Load() != 0 {
		t.Fatal("invoker must not run when unavailable")
	}
}

func TestActivateUnknownTrack(t *testing.T) {
	invoker := &fakeInvoker{name: "gytmdl", available: true}
	c := state.New(&fakeLibrary{}, &fakeSearcher{}, invoker, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Activate(ctx, "nope")

	waitForNotice(t, c, "No track selected")
	if invoker.runs.Load() != 0 {
		t.Fatal("invoker must not run for unknown tracks")
	}
}

func TestConcurrentDownloadsAreAttributed(t *testing.T) {
	gate := make(chan struct{})
	invoker := &fakeInvoker{
		name:      "gytmdl",
		available: true,
		gate:      gate,
		result:    downloader.Result{Success: true, Message: "Download successful for 'X'."},
	}
	library := &fakeLibrary{tracks: []catalog.Track{track("a", "Alpha"), track("b", "Beta")}}
	c := state.New(library, &fakeSearcher{}, invoker, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Activate(ctx, "a")
	c.Activate(ctx, "b")

	first := waitForNotice(t, c, "Queueing 'Alpha'")
	second := waitForNotice(t, c, "Queueing 'Beta'")
	if first.Message == second.Message {
		t.Fatal("expected distinct job attribution per download")
	}

	close(gate)
	waitForNotice(t, c, "Download successful")
	for i := 0; i < 50 && c.Downloading(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if invoker.runs.Load() != 2 {
		t.Fatalf("expected 2 concurrent runs, got %d", invoker.runs.Load())
	}
}

func TestExclusivePolicyRejectsOverlap(t *testing.T) {
	gate := make(chan struct{})
	invoker := &fakeInvoker{
		name:      "gytmdl",
		available: true,
		gate:      gate,
		result:    downloader.Result{Success: true, Message: "done"},
	}
	library := &fakeLibrary{tracks: []catalog.Track{track("a", "Alpha"), track("b", "Beta")}}
	c := state.New(library, &fakeSearcher{}, invoker, nil, state.WithExclusiveDownloads())
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Activate(ctx, "a")
	waitForNotice(t, c, "Queueing 'Alpha'")

	c.Activate(ctx, "b")
	notice := waitForNotice(t, c, "already running")
	if notice.Level != state.NoticeWarning {
		t.Fatalf("expected warning, got %#v", notice)
	}

	close(gate)
	for i := 0; i < 50 && c.Downloading(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if invoker.runs.Load() != 1 {
		t.Fatalf("expected single run under exclusive policy, got %d", invoker.runs.Load())
	}
}

func TestDownloadOutcomeDoesNotTouchState(t *testing.T) {
	invoker := &fakeInvoker{
		name:      "gytmdl",
		available: true,
		result:    downloader.Result{Message: "Download failed for 'Alpha'. Details:\nexit 1"},
	}
	library := &fakeLibrary{tracks: []catalog.Track{track("a", "Alpha")}}
	c := state.New(library, &fakeSearcher{}, invoker, nil)
	ctx := context.Background()

	before, err := c.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c.Activate(ctx, "a")
	waitForNotice(t, c, "Download failed")

	after := c.Snapshot()
	if !after.SameResults(before) || after.Selected != before.Selected {
		t.Fatalf("download outcome modified state: %#v", after)
	}
}

func TestStaleLibraryReloadIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	library := &fakeLibrary{tracks: []catalog.Track{track("l", "From Library")}, gate: gate}
	searcher := &fakeSearcher{fn: func(context.Context, string) ([]catalog.Track, error) {
		return []catalog.Track{track("s", "From Search")}, nil
	}}
	c := state.New(library, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	// The reload starts first but its completion is gated behind the search.
	c.ShowLibrary(ctx)
	c.Search(ctx, "fresh")

	snap := waitForSnapshot(t, c)
	if snap.Source != state.SourceSearch || snap.Results[0].Title != "From Search" {
		t.Fatalf("expected search snapshot, got %#v", snap)
	}

	close(gate)
	time.Sleep(100 * time.Millisecond)
	final := c.Snapshot()
	if final.Source != state.SourceSearch || final.Results[0].Title != "From Search" {
		t.Fatalf("stale library reload replaced the search results: %#v", final)
	}
}

func TestRepeatedHighlightEmitsNothing(t *testing.T) {
	c := state.New(&fakeLibrary{tracks: []catalog.Track{track("a", "Alpha")}}, &fakeSearcher{}, &fakeInvoker{}, nil)
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Clearing an already empty selection publishes nothing.
	c.Highlight(ctx, "")
	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event %#v", ev)
	case <-time.After(100 * time.Millisecond):
	}

	c.Highlight(ctx, "a")
	if snap := waitForSnapshot(t, c); snap.Selected == nil || snap.Selected.VideoID != "a" {
		t.Fatalf("expected selection a, got %#v", snap.Selected)
	}

	c.Highlight(ctx, "a")
	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event on repeated highlight: %#v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShowLibrarySupersedesInFlightSearch(t *testing.T) {
	release := make(chan struct{})
	searcher := &fakeSearcher{fn: func(context.Context, string) ([]catalog.Track, error) {
		<-release
		return []catalog.Track{track("s", "From Search")}, nil
	}}
	library := &fakeLibrary{tracks: []catalog.Track{track("l", "From Library")}}
	c := state.New(library, searcher, &fakeInvoker{}, nil)
	ctx := context.Background()

	c.Search(ctx, "slow")
	c.ShowLibrary(ctx)

	snap := waitForSnapshot(t, c)
	if snap.Source != state.SourceLibrary {
		t.Fatalf("expected library snapshot, got %#v", snap)
	}

	close(release)
	time.Sleep(100 * time.Millisecond)
	final := c.Snapshot()
	if final.Source != state.SourceLibrary || final.Results[0].Title != "From Library" {
		t.Fatalf("stale search replaced the library view: %#v", final)
	}
}
