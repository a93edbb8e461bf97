package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/controller"
	"github.com/julianstephens/thoughts/internal/tui/components/thoughtlist"
)

type Focus int

const (
	FocusDraft Focus = iota
	FocusList
)

// chromeHeight is the number of lines used by everything except the list:
// title and margin, bordered input, status, footer, help.
const chromeHeight = 9

// refreshInterval drives the "min ago" labels
const refreshInterval = time.Minute

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	ctrl     *controller.Controller
	keys     KeyMap
	help     help.Model
	draft    textinput.Model
	edit     textinput.Model
	list     thoughtlist.Model
	focus    Focus
	status   string
	quitting bool
	width    int
	height   int
	now      func() time.Time
}

func NewModel(ctrl *controller.Controller) Model {
	draft := textinput.New()
	draft.Placeholder = constants.Placeholder
	draft.Prompt = "› "
	draft.SetValue(ctrl.Draft())
	draft.Focus()

	edit := textinput.New()
	edit.Placeholder = constants.Placeholder
	edit.Prompt = ""

	m := Model{
		ctrl:  ctrl,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		draft: draft,
		edit:  edit,
		list:  thoughtlist.New(0, 0),
		focus: FocusDraft,
		now:   time.Now,
	}
	m.refresh()
	m.list.SelectLast()
	m.list.ScrollToLast()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m Model) ShortHelp() []key.Binding {
	if m.focus == FocusDraft {
		return []key.Binding{m.keys.Submit, m.keys.Tab, m.keys.ForceQuit}
	}
	if m.selectedEditing() {
		return []key.Binding{m.keys.Save, m.keys.Cancel, m.keys.Tab, m.keys.ForceQuit}
	}
	l := m.list.Keys()
	return []key.Binding{l.Up, l.Down, l.Edit, l.Delete, l.Like, l.Favorite, m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Cancel, m.keys.Help, m.keys.Quit, m.keys.ForceQuit}
	draft := []key.Binding{m.keys.Submit}
	l := m.list.Keys()
	list := []key.Binding{l.Up, l.Down, l.Edit, l.Delete, l.Like, l.Favorite}
	return [][]key.Binding{global, draft, list}
}

func (m Model) selectedEditing() bool {
	t, ok := m.list.Selected()
	return ok && m.ctrl.IsEditing(t.Key)
}

// refresh copies the controller state into the list. The list clock moves
// to now so rows written since the last tick are never newer than it.
func (m *Model) refresh() {
	st := m.ctrl.State()
	m.list.SetNow(m.now())
	m.list.SetThoughts(st.Thoughts, st.Editing)
	m.list.SetEditView(m.edit.View())
}

// syncEditInput binds the edit input to the selected row when that row is
// in edit mode.
func (m *Model) syncEditInput() {
	t, ok := m.list.Selected()
	if !ok || m.focus != FocusList {
		m.edit.Blur()
		m.list.SetEditView(m.edit.View())
		return
	}
	draft, editing := m.ctrl.EditDraft(t.Key)
	if !editing {
		m.edit.Blur()
		m.list.SetEditView(m.edit.View())
		return
	}
	m.edit.SetValue(draft)
	m.edit.CursorEnd()
	m.edit.Focus()
	m.list.SetEditView(m.edit.View())
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusDraft {
		m.draft.Focus()
	} else {
		m.draft.Blur()
	}
	m.syncEditInput()
}

// report shows err in the status line, or clears it.
func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.draft.Width = max(m.width-8, 10)
	m.edit.Width = max(m.width-8, 10)
	m.list.SetSize(m.width, max(m.height-chromeHeight, 3))
	m.list.SetEditView(m.edit.View())
}
