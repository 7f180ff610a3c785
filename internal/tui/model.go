package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tunedex/internal/logging"
	"tunedex/internal/state"
)

const maxLogLines = 200

// Clipboard abstracts the system clipboard so tests can swap it out.
type Clipboard interface {
	Copy(text string) error
	Available() bool
}

type systemClipboard struct{}

func (systemClipboard) Copy(text string) error { return clipboard.WriteAll(text) }
func (systemClipboard) Available() bool        { return !clipboard.Unsupported }

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

type coordinatorEventMsg struct{ event state.Event }

type eventsClosedMsg struct{}

// Model is the Bubble Tea model. It renders the coordinator's snapshots and
// translates key presses into coordinator calls; it never mutates application
// state itself.
type Model struct {
	ctx    context.Context
	coord  *state.Coordinator
	inv    state.Invoker
	clip   Clipboard
	logger *slog.Logger

	keys    keyMap
	input   textinput.Model
	results table.Model
	log     viewport.Model
	spin    spinner.Model
	help    help.Model

	snapshot    state.Snapshot
	rowIDs      []string
	logLines    []string
	focus       focusArea
	searching   bool
	showHelp    bool
	quitConfirm bool
	width       int
	height      int
	ready       bool
}

// New builds the model around an already started coordinator.
func New(ctx context.Context, coord *state.Coordinator, inv state.Invoker, logger *slog.Logger) Model {
	if logger == nil {
		logger = logging.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "Search for music..."
	input.CharLimit = 200
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:    ctx,
		coord:  coord,
		inv:    inv,
		clip:   systemClipboard{},
		logger: logging.WithComponent(logger, "tui"),
		keys:   defaultKeyMap(),
		input:  input,
		results: table.New(
			table.WithColumns(resultColumns(80)),
			table.WithFocused(false),
		),
		spin: sp,
		help: help.New(),
	}
	m.applySnapshot(coord.Snapshot())
	m.startupNotices()
	return m
}

func (m *Model) startupNotices() {
	if m.inv.Available() {
		m.appendLog(successStyle.Render(fmt.Sprintf("Download command '%s' is available.", m.inv.Name())))
	} else {
		m.appendLog(warningStyle.Render(fmt.Sprintf("Download command '%s' not found; downloads are disabled.", m.inv.Name())))
	}
	if !m.clip.Available() {
		m.appendLog(warningStyle.Render("Clipboard not available; copy link is disabled."))
	}
	m.appendLog(infoStyle.Render(fmt.Sprintf("Displaying %d songs from your local library.", len(m.snapshot.Results))))
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.waitForEvent())
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.coord.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return coordinatorEventMsg{event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case coordinatorEventMsg:
		m.applyEvent(msg.event)
		return m, m.waitForEvent()

	case eventsClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// While the search box has focus, only a handful of keys escape it;
	// everything else is typed text.
	if m.focus == focusSearch {
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.searching = true
			m.setFocus(focusResults)
			m.coord.Search(m.ctx, query)
			return m, nil
		case "tab", "esc":
			m.setFocus(focusResults)
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Library):
		m.quitConfirm = false
		m.coord.ShowLibrary(m.ctx)
		return m, nil

	case key.Matches(msg, m.keys.CopyLink):
		m.quitConfirm = false
		m.copySelectedLink()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.quitConfirm = false
		m.setFocus(focusSearch)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.quitConfirm = false
		m.coord.Activate(m.ctx, m.currentID())
		return m, nil
	}

	m.quitConfirm = false
	before := m.results.Cursor()
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	if m.results.Cursor() != before {
		m.coord.Highlight(m.ctx, m.currentID())
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.coord.Downloading() && !m.quitConfirm {
		m.quitConfirm = true
		m.appendLog(warningStyle.Render("Downloads are still running. Press again to quit anyway."))
		return m, nil
	}
	return m, tea.Quit
}

func (m *Model) applyEvent(ev state.Event) {
	switch ev := ev.(type) {
	case state.SnapshotUpdated:
		if !ev.Snapshot.SameResults(m.snapshot) {
			m.searching = false
		}
		m.applySnapshot(ev.Snapshot)

	case state.Notice:
		if ev.Level == state.NoticeError {
			m.searching = false
		}
		m.appendLog(noticeLine(ev))
		if ev.Detail != "" {
			m.appendLog(dimStyle.Render("  " + ev.Detail))
		}
	}
}

func noticeLine(n state.Notice) string {
	switch n.Level {
	case state.NoticeSuccess:
		return successStyle.Render(n.Message)
	case state.NoticeWarning:
		return warningStyle.Render(n.Message)
	case state.NoticeError:
		return errorStyle.Render(n.Message)
	default:
		return infoStyle.Render(n.Message)
	}
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	rebuild := !snap.SameResults(m.snapshot)
	m.snapshot = snap
	if !rebuild {
		return
	}

	rows := make([]table.Row, 0, len(snap.Results))
	ids := make([]string, 0, len(snap.Results))
	for _, t := range snap.Results {
		explicit := ""
		if t.IsExplicit {
			explicit = "E"
		}
		rows = append(rows, table.Row{t.Title, t.Artist, t.AlbumName, t.Duration, explicit})
		ids = append(ids, t.VideoID)
	}
	m.results.SetRows(rows)
	m.rowIDs = ids
	m.results.SetCursor(0)
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
	m.log.SetContent(strings.Join(m.logLines, "\n"))
	m.log.GotoBottom()
}

func (m *Model) setFocus(area focusArea) {
	m.focus = area
	if area == focusSearch {
		m.input.Focus()
		m.results.Blur()
	} else {
		m.input.Blur()
		m.results.Focus()
	}
}

func (m *Model) currentID() string {
	cursor := m.results.Cursor()
	if cursor < 0 || cursor >= len(m.rowIDs) {
		return ""
	}
	return m.rowIDs[cursor]
}

func (m *Model) copySelectedLink() {
	track := m.snapshot.Lookup(m.currentID())
	if track == nil {
		m.appendLog(warningStyle.Render("No track selected."))
		return
	}
	if !m.clip.Available() {
		m.appendLog(warningStyle.Render("Clipboard not available; copy link is disabled."))
		return
	}
	if err := m.clip.Copy(track.Link); err != nil {
		m.logger.Warn("clipboard write failed", logging.Error(err))
		m.appendLog(errorStyle.Render("Could not copy link to the clipboard."))
		return
	}
	m.appendLog(successStyle.Render(fmt.Sprintf("Copied link for '%s'.", track.Title)))
}

func resultColumns(width int) []table.Column {
	title := width * 35 / 100
	artist := width * 25 / 100
	album := width * 22 / 100
	if title < 10 {
		title = 10
	}
	if artist < 8 {
		artist = 8
	}
	if album < 8 {
		album = 8
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Artist", Width: artist},
		{Title: "Album", Width: album},
		{Title: "Length", Width: 6},
		{Title: "E", Width: 1},
	}
}

func (m *Model) resize() {
	inner := m.width - 6
	if inner < 40 {
		inner = 40
	}
	m.input.Width = inner

	logHeight := 6
	tableHeight := m.height - logHeight - 12
	if tableHeight < 4 {
		tableHeight = 4
	}
	m.results.SetColumns(resultColumns(inner))
	m.results.SetWidth(inner + 2)
	m.results.SetHeight(tableHeight)

	m.log = viewport.New(inner, logHeight)
	m.log.SetContent(strings.Join(m.logLines, "\n"))
	m.log.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tunedex"))
	if m.searching {
		b.WriteString("  " + m.spin.View() + dimStyle.Render(" searching"))
	} else if m.coord.Downloading() {
		b.WriteString("  " + m.spin.View() + dimStyle.Render(" downloading"))
	}
	b.WriteString("\n\n")

	searchPane := paneStyle
	resultsPane := paneStyle
	if m.focus == focusSearch {
		searchPane = focusedPaneStyle
	} else {
		resultsPane = focusedPaneStyle
	}

	b.WriteString(searchPane.Width(m.width - 4).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(resultsPane.Width(m.width - 4).Render(m.results.View()))
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(paneStyle.Width(m.width - 4).Render(m.log.View()))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) detailView() string {
	track := m.snapshot.Selected
	if track == nil {
		return dimStyle.Render(" No track selected.")
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		detailLabelStyle.Render("Title "), detailValueStyle.Render(track.Title),
		detailLabelStyle.Render("  Artist "), detailValueStyle.Render(track.Artist),
		detailLabelStyle.Render("  Album "), detailValueStyle.Render(track.AlbumName),
		detailLabelStyle.Render("  Length "), detailValueStyle.Render(track.Duration),
	)
	link := dimStyle.Render(" " + track.Link)
	return " " + line + "\n" + link
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, coord *state.Coordinator, inv state.Invoker, logger *slog.Logger) error {
	m := New(ctx, coord, inv, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
