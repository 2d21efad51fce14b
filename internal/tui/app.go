// Package tui implements the interactive terminal dashboard. Unlike the
// one-shot commands, it keeps a playback engine alive for the whole
// session and reflects its events live.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/engine"
	"github.com/velium/velium/internal/library"
	"github.com/velium/velium/internal/tui/components"
	"github.com/velium/velium/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelQueue
	PanelLiked
	PanelPlaylists
)

const searchDebounce = 300 * time.Millisecond

// SearchFunc performs a search for the overlay.
type SearchFunc func(ctx context.Context, query, kind string) []core.Track

// App holds the TUI application state
type App struct {
	engine      *engine.Engine
	library     *library.Service
	search      SearchFunc
	refreshRate time.Duration
}

// NewApp creates a new TUI application
func NewApp(e *engine.Engine, lib *library.Service, search SearchFunc, refreshRate time.Duration) *App {
	if refreshRate <= 0 {
		refreshRate = time.Second
	}
	return &App{
		engine:      e,
		library:     lib,
		search:      search,
		refreshRate: refreshRate,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	state     *core.PlaybackState
	queue     *core.Queue
	liked     []core.Track
	playlists []core.Playlist

	// Components
	nowPlaying    *components.NowPlaying
	queueView     *components.Queue
	likedView     *components.Liked
	playlistsView *components.Playlists

	// Overlays
	showHelp bool

	// Search state
	showSearch    bool
	searchInput   textinput.Model
	searchResults []core.Track
	searchCursor  int
	searching     bool
	lastQuery     string

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "Search songs..."
	ti.CharLimit = 100
	ti.Width = 50

	return Model{
		app:           app,
		focusedPanel:  PanelNowPlaying,
		nowPlaying:    components.NewNowPlaying(),
		queueView:     components.NewQueue(),
		likedView:     components.NewLiked(),
		playlistsView: components.NewPlaylists(),
		searchInput:   ti,
	}
}

// Messages
type tickMsg time.Time
type engineEventMsg engine.Event
type searchDebounceMsg struct{ query string }
type searchResultsMsg struct{ results []core.Track }

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent forwards the next engine event to the update loop.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.app.engine.Events()
		if !ok {
			return nil
		}
		return engineEventMsg(ev)
	}
}

func (m Model) doSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return searchResultsMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return searchResultsMsg{results: m.app.search(ctx, query, "song")}
	}
}

// refresh reads the engine and library snapshots.
func (m *Model) refresh() {
	m.state = m.app.engine.State()
	m.queue = m.app.engine.Queue()
	m.liked = m.app.library.LikedSongs()
	m.playlists = m.app.library.Playlists()
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tick()

	case engineEventMsg:
		m.refresh()
		return m, m.waitForEvent()

	case searchDebounceMsg:
		if msg.query == m.searchInput.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = true
			return m, m.doSearch(msg.query)
		}

	case searchResultsMsg:
		m.searching = false
		m.searchResults = msg.results
		m.searchCursor = 0
		return m, nil
	}

	if m.showSearch {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showSearch {
		return m.handleSearchKeyPress(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.showSearch = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		m.lastQuery = ""
		return m, textinput.Blink

	case "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 4
		return m, nil

	case "shift+tab":
		m.focusedPanel = (m.focusedPanel + 3) % 4
		return m, nil
	}

	// Playback controls
	switch msg.String() {
	case " ":
		m.app.engine.TogglePlayPause(context.Background())
		m.refresh()
		return m, nil
	case "n":
		m.app.engine.Advance(context.Background())
		m.refresh()
		return m, nil
	case "p":
		m.playPrevious()
		return m, nil
	case "+", "=":
		m.app.engine.SetVolume(m.app.engine.Volume() + 0.05)
		m.refresh()
		return m, nil
	case "-":
		m.app.engine.SetVolume(m.app.engine.Volume() - 0.05)
		m.refresh()
		return m, nil
	case "m":
		if m.state != nil && m.state.Muted {
			m.app.engine.Unmute()
		} else {
			m.app.engine.Mute()
		}
		m.refresh()
		return m, nil
	case "L":
		m.toggleLikeCurrent()
		return m, nil
	}

	// Panel-specific keys
	switch m.focusedPanel {
	case PanelQueue:
		switch msg.String() {
		case "j", "down":
			m.queueView.ScrollDown()
		case "k", "up":
			m.queueView.ScrollUp()
		}
	case PanelLiked:
		switch msg.String() {
		case "j", "down":
			m.likedView.SelectNext(len(m.liked))
		case "k", "up":
			m.likedView.SelectPrev()
		case "enter":
			if len(m.liked) > 0 {
				m.app.engine.PlayQueue(context.Background(), m.liked, m.likedView.Selected())
			}
		}
	case PanelPlaylists:
		switch msg.String() {
		case "j", "down":
			m.playlistsView.SelectNext(len(m.playlists))
		case "k", "up":
			m.playlistsView.SelectPrev()
		case "enter":
			if i := m.playlistsView.Selected(); i >= 0 && i < len(m.playlists) {
				m.app.engine.PlayQueue(context.Background(), m.playlists[i].Tracks, 0)
			}
		}
	}

	return m, nil
}

func (m *Model) playPrevious() {
	q := m.app.engine.Queue()
	if q == nil || q.CurrentIndex <= 0 {
		return
	}
	m.app.engine.PlayQueue(context.Background(), q.Tracks, q.CurrentIndex-1)
	m.refresh()
}

func (m *Model) toggleLikeCurrent() {
	if m.state == nil || m.state.Track == nil {
		return
	}
	_, _ = m.app.library.ToggleLike(*m.state.Track)
	m.refresh()
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "esc":
		m.showSearch = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		if len(m.searchResults) > 0 && m.searchCursor < len(m.searchResults) {
			m.showSearch = false
			m.searchInput.Blur()
			m.app.engine.PlayQueue(context.Background(), m.searchResults, m.searchCursor)
			m.refresh()
		}
		return m, nil

	case "up", "ctrl+p":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil
	}

	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	cmds = append(cmds, inputCmd)

	if m.searchInput.Value() != m.lastQuery {
		cmds = append(cmds, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: m.searchInput.Value()}
		}))
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showSearch {
		return m.renderSearch()
	}

	// Main layout: two columns
	// Left: Now Playing (top), Queue (bottom)
	// Right: Liked Songs (top), Playlists (bottom)

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := m.height * 40 / 100
	bottomHeight := m.height - topHeight - 2

	nowPlaying := m.nowPlaying.Render(m.state, leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	queueView := m.queueView.Render(m.queue, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelQueue)
	likedView := m.likedView.Render(m.liked, rightWidth-2, topHeight-2, m.focusedPanel == PanelLiked)
	playlistsView := m.playlistsView.Render(m.playlists, rightWidth-2, bottomHeight-2, m.focusedPanel == PanelPlaylists)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, queueView)
	rightCol := lipgloss.JoinVertical(lipgloss.Left, likedView, playlistsView)

	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  /:search  space:play/pause  n:next  p:prev  +/-:volume  m:mute  L:like  tab:switch panel")

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Velium - Keyboard Shortcuts"
	divider := styles.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Search
  Tab          Next panel
  Shift+Tab    Previous panel

  Playback
  ────────
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/=          Volume up
  -            Volume down
  m            Mute/unmute
  L            Like current track

  Queue Panel
  ───────────
  j/↓          Scroll down
  k/↑          Scroll up

  Liked / Playlists Panel
  ───────────────────────
  j/↓          Select next
  k/↑          Select previous
  Enter        Play selection

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

func (m Model) renderSearch() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	b.WriteString(titleStyle.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle := lipgloss.NewStyle().Background(lipgloss.Color("237"))

	if m.searching {
		b.WriteString(subtitleStyle.Render("Searching..."))
	} else if len(m.searchResults) == 0 && m.searchInput.Value() != "" && m.lastQuery != "" {
		b.WriteString(subtitleStyle.Render("No results found"))
	} else {
		maxResults := 10
		for i, track := range m.searchResults {
			if i >= maxResults {
				b.WriteString(subtitleStyle.Render("  ...and more"))
				break
			}

			line := track.Title + " " + subtitleStyle.Render(track.Artist)
			if i == m.searchCursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("↑/↓:nav  Enter:play  Esc:close"))

	content := lipgloss.NewStyle().
		Width(60).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Render(content))
}

// Run starts the TUI application. The engine's poll loop runs for the
// lifetime of the program.
func Run(app *App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = app.engine.Run(ctx) }()

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
