package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thoughts/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Back up before the session can change anything
	ctx.PerformAutomaticBackup()

	ctrl, err := ctx.Controller()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
