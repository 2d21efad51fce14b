// Package wizard provides interactive pickers for terminal sessions.
package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velium/velium/internal/core"
)

// SearchKind selects what the query searches for.
type SearchKind int

const (
	SearchSongs SearchKind = iota
	SearchAlbums
	SearchArtists
)

// kindNames maps a SearchKind to the query kind the backends expect.
var kindNames = []string{"song", "album", "artist"}

// Kind returns the backend query kind for k.
func (k SearchKind) Kind() string {
	return kindNames[k]
}

// SearchFunc performs a search for the picker.
type SearchFunc func(query, kind string) ([]core.Track, error)

// SearchModel is the bubbletea model for the track picker.
type SearchModel struct {
	input      textinput.Model
	results    []core.Track
	cursor     int
	searchKind SearchKind
	searchFunc SearchFunc
	selected   *core.Track
	err        error
	debounce   time.Duration
	lastQuery  string
	searching  bool
	width      int
	height     int
}

// Styles
var (
	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	searchTabStyle = lipgloss.NewStyle().
			Padding(0, 2)

	searchActiveTabStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("205")).
				Foreground(lipgloss.Color("0"))

	searchResultStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	searchSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	searchSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	searchUnplayableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)
)

// NewSearchModel creates a new track picker model.
func NewSearchModel(searchFunc SearchFunc) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search for songs, albums, artists..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return SearchModel{
		input:      ti,
		searchFunc: searchFunc,
		debounce:   300 * time.Millisecond,
		searchKind: SearchSongs,
		width:      80,
		height:     20,
	}
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// debounceMsg is sent after the debounce period.
type debounceMsg struct {
	query string
}

// searchResultsMsg contains search results.
type searchResultsMsg struct {
	results []core.Track
	err     error
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if len(m.results) > 0 && m.cursor < len(m.results) {
				m.selected = &m.results[m.cursor]
				return m, tea.Quit
			}

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}

		case "tab":
			m.searchKind = (m.searchKind + 1) % 3
			if m.input.Value() != "" {
				return m, m.doSearch(m.input.Value())
			}

		case "shift+tab":
			if m.searchKind == 0 {
				m.searchKind = 2
			} else {
				m.searchKind--
			}
			if m.input.Value() != "" {
				return m, m.doSearch(m.input.Value())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4

	case debounceMsg:
		if msg.query == m.input.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			return m, m.doSearch(msg.query)
		}

	case searchResultsMsg:
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.cursor = 0
	}

	// Handle text input
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if m.input.Value() != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{query: m.input.Value()}
		}))
	}

	return m, tea.Batch(cmds...)
}

// doSearch performs the search.
func (m SearchModel) doSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if query == "" {
			return searchResultsMsg{results: nil}
		}
		results, err := m.searchFunc(query, m.searchKind.Kind())
		return searchResultsMsg{results: results, err: err}
	}
}

// View renders the model.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(searchTitleStyle.Render("🔍 Search"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	tabs := []string{"Songs", "Albums", "Artists"}
	for i, tab := range tabs {
		if SearchKind(i) == m.searchKind {
			b.WriteString(searchActiveTabStyle.Render(tab))
		} else {
			b.WriteString(searchTabStyle.Render(tab))
		}
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + m.err.Error()))
	} else if m.searching {
		b.WriteString("Searching...")
	} else if len(m.results) == 0 && m.input.Value() != "" {
		b.WriteString("No results found")
	} else {
		maxResults := m.height - 10
		if maxResults < 5 {
			maxResults = 5
		}
		for i, track := range m.results {
			if i >= maxResults {
				b.WriteString(searchSubtitleStyle.Render("  ...and more"))
				break
			}

			line := resultLine(track)
			if i == m.cursor {
				b.WriteString(searchSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(searchResultStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(searchSubtitleStyle.Render("↑/↓ navigate • tab switch type • enter select • esc quit"))

	return b.String()
}

// resultLine formats one result row, marking tracks with no playable
// stream.
func resultLine(t core.Track) string {
	title := t.Title
	if !t.Playable() {
		title = searchUnplayableStyle.Render(title)
	}

	sub := t.Artist
	if t.Duration > 0 {
		sub += " " + formatDuration(t.Duration)
	}
	return title + " " + searchSubtitleStyle.Render(sub)
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Selected returns the selected track, or nil if none.
func (m SearchModel) Selected() *core.Track {
	return m.selected
}

// RunSearch runs the picker and returns the selected track.
func RunSearch(searchFunc SearchFunc) (*core.Track, error) {
	model := NewSearchModel(searchFunc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(SearchModel).Selected(), nil
}
