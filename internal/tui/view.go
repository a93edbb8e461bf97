package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/thoughts/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	input := inputStyle
	if m.focus == FocusDraft {
		input = focusedInputStyle
	}
	if m.width > 4 {
		input = input.Width(m.width - 2)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(constants.Title),
		m.list.View(),
		input.Render(m.draft.View()),
		dangerStyle.Render(m.status),
		footerStyle.Render(fmt.Sprintf(constants.FooterFmt, m.ctrl.ConfigPath())),
		m.help.View(m),
	)
}
