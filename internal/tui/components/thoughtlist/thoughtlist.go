package thoughtlist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/thoughts/internal/models"
	"github.com/julianstephens/thoughts/internal/tui/components/thought"
)

// ToggleEditMsg asks the root model to enter or leave edit mode.
type ToggleEditMsg struct {
	Key int
}

// DeleteMsg asks the root model to delete a thought.
type DeleteMsg struct {
	Key int
}

// ToggleReactionMsg asks the root model to flip a reaction.
type ToggleReactionMsg struct {
	Key      int
	Reaction models.Reaction
}

// CursorMovedMsg is sent when the selection changes.
type CursorMovedMsg struct {
	Key int
}

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Italic(true).
	PaddingLeft(2)

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Like     key.Binding
	Favorite key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit/save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
	}
}

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	thoughts []models.Thought
	editing  map[int]string
	editView string
	cursor   int
	// offsets[i] is the first viewport line of row i
	offsets []int
	now     time.Time
	width   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		keys:     DefaultKeyMap(),
		editing:  map[int]string{},
		now:      time.Now(),
		width:    width,
	}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles list keys. Actions are returned as commands for the root
// model; only cursor movement and scrolling are handled here.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			return m, m.move(-1)
		case key.Matches(msg, m.keys.Down):
			return m, m.move(1)
		}

		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return ToggleEditMsg{Key: t.Key} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteMsg{Key: t.Key} }
		case key.Matches(msg, m.keys.Like):
			return m, func() tea.Msg { return ToggleReactionMsg{Key: t.Key, Reaction: models.ReactionLiked} }
		case key.Matches(msg, m.keys.Favorite):
			return m, func() tea.Msg { return ToggleReactionMsg{Key: t.Key, Reaction: models.ReactionFavorite} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) move(delta int) tea.Cmd {
	if len(m.thoughts) == 0 {
		return nil
	}
	next := clamp(m.cursor+delta, len(m.thoughts))
	if next == m.cursor {
		return nil
	}
	m.cursor = next
	m.render()
	m.ensureCursorVisible()
	k := m.thoughts[next].Key
	return func() tea.Msg { return CursorMovedMsg{Key: k} }
}

func (m Model) View() string {
	if len(m.thoughts) == 0 {
		return emptyStyle.Render("No thoughts yet.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
	m.ensureCursorVisible()
}

// SetThoughts replaces the rows. The cursor keeps its index, clamped to the
// new length.
func (m *Model) SetThoughts(thoughts []models.Thought, editing map[int]string) {
	m.thoughts = thoughts
	m.editing = editing
	if m.editing == nil {
		m.editing = map[int]string{}
	}
	m.cursor = clamp(m.cursor, len(thoughts))
	m.render()
}

// SetEditView sets the rendered edit input drawn on the selected row.
func (m *Model) SetEditView(v string) {
	m.editView = v
	m.render()
}

func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.render()
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the thought under the cursor.
func (m Model) Selected() (models.Thought, bool) {
	if m.cursor < 0 || m.cursor >= len(m.thoughts) {
		return models.Thought{}, false
	}
	return m.thoughts[m.cursor], true
}

// Last returns the index of the scroll target, -1 when empty.
func (m Model) Last() int {
	return len(m.thoughts) - 1
}

// SelectLast moves the cursor to the last row.
func (m *Model) SelectLast() {
	if len(m.thoughts) == 0 {
		return
	}
	m.cursor = m.Last()
	m.render()
}

// ScrollToLast brings the last row into view.
func (m *Model) ScrollToLast() {
	if len(m.thoughts) == 0 {
		return
	}
	m.viewport.GotoBottom()
}

// ensureCursorVisible scrolls the minimum amount to show the whole
// selected row.
func (m *Model) ensureCursorVisible() {
	if m.cursor >= len(m.offsets) || m.viewport.Height <= 0 {
		return
	}
	top := m.offsets[m.cursor]
	bottom := m.viewport.TotalLineCount()
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m *Model) render() {
	var b strings.Builder
	m.offsets = make([]int, 0, len(m.thoughts))
	line := 0
	for i, t := range m.thoughts {
		draft, editing := m.editing[t.Key]
		row := thought.Row{
			Thought:   t,
			Selected:  i == m.cursor,
			Editing:   editing,
			EditDraft: draft,
		}
		if editing && i == m.cursor {
			row.EditView = m.editView
		}

		rendered := thought.Render(row, m.now, m.width)
		m.offsets = append(m.offsets, line)
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rendered)
		b.WriteString("\n")
		line += lipgloss.Height(rendered) + 1
	}
	m.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
