package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tunedex/internal/catalog"
	"tunedex/internal/downloader"
	"tunedex/internal/state"
)

type stubLibrary struct{ tracks []catalog.Track }

func (s stubLibrary) LoadAll(context.Context) ([]catalog.Track, error) { return s.tracks, nil }

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string) ([]catalog.Track, error) { return nil, nil }

type stubInvoker struct {
	available bool
}

func (stubInvoker) Name() string      { return "gytmdl" }
func (s stubInvoker) Available() bool { return s.available }

func (stubInvoker) Run(context.Context, string, string) downloader.Result {
	return downloader.Result{}
}

type stubClipboard struct {
	available bool
	copied    string
	err       error
}

func (s *stubClipboard) Copy(text string) error {
	s.copied = text
	return s.err
}

func (s *stubClipboard) Available() bool { return s.available }

func newTestModel(t *testing.T, tracks []catalog.Track, inv state.Invoker) Model {
	t.Helper()
	coord := state.New(stubLibrary{tracks: tracks}, stubSearcher{}, inv, nil)
	if _, err := coord.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return New(context.Background(), coord, inv, nil)
}

func sampleTracks() []catalog.Track {
	return []catalog.Track{
		{VideoID: "a1", Title: "Alpha", Artist: "Ann", AlbumName: "One", Duration: "03:00", Link: catalog.LinkFor("a1")},
		{VideoID: "b2", Title: "Beta", Artist: "Bob", AlbumName: "Two", Duration: "04:00", Link: catalog.LinkFor("b2"), IsExplicit: true},
	}
}

func TestNewModelShowsLibraryRows(t *testing.T) {
	m := newTestModel(t, sampleTracks(), stubInvoker{available: true})

	if got := len(m.results.Rows()); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if m.rowIDs[0] != "a1" || m.rowIDs[1] != "b2" {
		t.Fatalf("unexpected row ids %v", m.rowIDs)
	}
	if row := m.results.Rows()[1]; row[4] != "E" {
		t.Fatalf("expected explicit marker on second row, got %q", row[4])
	}
}

func TestStartupNoticeReportsMissingDownloader(t *testing.T) {
	m := newTestModel(t, nil, stubInvoker{available: false})

	joined := strings.Join(m.logLines, "\n")
	if !strings.Contains(joined, "'gytmdl' not found") {
		t.Fatalf("expected missing-command notice, got:\n%s", joined)
	}
}

func TestSnapshotEventRebuildsRowsAndResetsCursor(t *testing.T) {
	m := newTestModel(t, sampleTracks(), stubInvoker{available: true})
	m.results.SetCursor(1)

	snap := state.Snapshot{
		Results: []catalog.Track{{VideoID: "c3", Title: "Gamma", Link: catalog.LinkFor("c3")}},
		Source:  state.SourceSearch,
	}
	m.applyEvent(state.SnapshotUpdated{Snapshot: snap})

	if got := len(m.results.Rows()); got != 1 {
		t.Fatalf("expected 1 row, got %d", got)
	}
	if m.results.Cursor() != 0 {
		t.Fatalf("expected cursor reset, got %d", m.results.Cursor())
	}
	if m.currentID() != "c3" {
		t.Fatalf("expected current id c3, got %q", m.currentID())
	}
}

func TestSelectionOnlyEventKeepsRows(t *testing.T) {
	tracks := sampleTracks()
	m := newTestModel(t, tracks, stubInvoker{available: true})
	m.results.SetCursor(1)

	selected := tracks[1]
	snap := state.Snapshot{Results: tracks, Selected: &selected, Source: state.SourceLibrary}
	m.applyEvent(state.SnapshotUpdated{Snapshot: snap})

	if m.results.Cursor() != 1 {
		t.Fatalf("selection-only update moved the cursor to %d", m.results.Cursor())
	}
	if m.snapshot.Selected == nil || m.snapshot.Selected.VideoID != "b2" {
		t.Fatalf("expected selection b2, got %#v", m.snapshot.Selected)
	}
}

func TestNoticeEventAppendsLogWithDetail(t *testing.T) {
	m := newTestModel(t, nil, stubInvoker{available: true})
	before := len(m.logLines)

	m.applyEvent(state.Notice{
		Level:   state.NoticeError,
		Message: "An error occurred during search.",
		Detail:  "remote search error: boom",
	})

	if len(m.logLines) != before+2 {
		t.Fatalf("expected message and detail lines, got %d new", len(m.logLines)-before)
	}
	if !strings.Contains(m.logLines[len(m.logLines)-1], "boom") {
		t.Fatalf("detail line missing diagnostics: %q", m.logLines[len(m.logLines)-1])
	}
}

func TestCopyLinkUsesClipboard(t *testing.T) {
	m := newTestModel(t, sampleTracks(), stubInvoker{available: true})
	clip := &stubClipboard{available: true}
	m.clip = clip

	m.copySelectedLink()

	if clip.copied != catalog.LinkFor("a1") {
		t.Fatalf("expected first track link copied, got %q", clip.copied)
	}
	last := m.logLines[len(m.logLines)-1]
	if !strings.Contains(last, "Copied link for 'Alpha'") {
		t.Fatalf("unexpected log line %q", last)
	}
}

func TestCopyLinkReportsClipboardFailure(t *testing.T) {
	m := newTestModel(t, sampleTracks(), stubInvoker{available: true})
	m.clip = &stubClipboard{available: true, err: errors.New("no display")}

	m.copySelectedLink()

	last := m.logLines[len(m.logLines)-1]
	if !strings.Contains(last, "Could not copy link") {
		t.Fatalf("unexpected log line %q", last)
	}
}

func TestCopyLinkWithoutSelectionWarns(t *testing.T) {
	m := newTestModel(t, nil, stubInvoker{available: true})
	clip := &stubClipboard{available: true}
	m.clip = clip

	m.copySelectedLink()

	if clip.copied != "" {
		t.Fatalf("nothing should be copied, got %q", clip.copied)
	}
	last := m.logLines[len(m.logLines)-1]
	if !strings.Contains(last, "No track selected") {
		t.Fatalf("unexpected log line %q", last)
	}
}

func TestWindowSizeMakesModelReady(t *testing.T) {
	m := newTestModel(t, sampleTracks(), stubInvoker{available: true})
	if m.ready {
		t.Fatal("model must not be ready before the first size message")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	next := updated.(Model)
	if !next.ready {
		t.Fatal("expected model ready after size message")
	}
	if view := next.View(); !strings.Contains(view, "tunedex") {
		t.Fatal("expected rendered view to include the title")
	}
}
