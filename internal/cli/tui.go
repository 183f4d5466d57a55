package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xujingshi/LifeTrack/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(ctx *Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive mode: %w", err)
	}
	return nil
}
