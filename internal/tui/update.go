package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thoughts/internal/tui/components/thoughtlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		m.list.SetNow(time.Time(msg))
		return m, tick()

	case thoughtlist.ToggleEditMsg:
		return m.toggleEdit(msg.Key)

	case thoughtlist.DeleteMsg:
		err := m.ctrl.Delete(msg.Key)
		m.report(err)
		m.listChanged(false)
		return m, nil

	case thoughtlist.ToggleReactionMsg:
		err := m.ctrl.Toggle(msg.Key, msg.Reaction)
		m.report(err)
		m.listChanged(false)
		return m, nil

	case thoughtlist.CursorMovedMsg:
		m.syncEditInput()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink, mouse) goes to the focused widget
	var cmd tea.Cmd
	switch {
	case m.focus == FocusDraft:
		m.draft, cmd = m.draft.Update(msg)
	case m.selectedEditing():
		m.edit, cmd = m.edit.Update(msg)
		m.list.SetEditView(m.edit.View())
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		if m.focus == FocusDraft {
			m.setFocus(FocusList)
		} else {
			m.setFocus(FocusDraft)
		}
		return m, nil
	}

	if m.focus == FocusDraft {
		return m.handleDraftKey(msg)
	}
	if t, ok := m.list.Selected(); ok && m.ctrl.IsEditing(t.Key) {
		return m.handleEditKey(msg, t.Key)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.setFocus(FocusDraft)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Cancel):
		m.setFocus(FocusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	m.ctrl.SetDraft(m.draft.Value())
	return m, cmd
}

// handleEditKey routes keys while the selected row is in edit mode. Letters
// go to the edit input, so list shortcuts are unavailable until it is saved
// or cancelled.
func (m Model) handleEditKey(msg tea.KeyMsg, k int) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.toggleEdit(k)
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CancelEdit(k)
		m.refresh()
		m.syncEditInput()
		return m, nil
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.ctrl.SetEditDraft(k, m.edit.Value())
	m.refresh()
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.SetDraft(m.draft.Value())
	_, added, err := m.ctrl.Add()
	m.report(err)
	if !added {
		return m, nil
	}
	m.draft.Reset()
	m.listChanged(true)
	return m, nil
}

func (m Model) toggleEdit(k int) (tea.Model, tea.Cmd) {
	saving := m.ctrl.IsEditing(k)
	err := m.ctrl.ToggleEdit(k)
	m.report(err)
	if saving {
		m.listChanged(false)
		return m, nil
	}
	m.refresh()
	m.syncEditInput()
	return m, nil
}

// listChanged re-renders after a mutation and scrolls the newest thought
// into view. After an add the cursor follows it.
func (m *Model) listChanged(added bool) {
	m.refresh()
	if added {
		m.list.SelectLast()
	}
	m.list.ScrollToLast()
	m.syncEditInput()
}
