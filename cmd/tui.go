package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/packsmith/internal/reconcile"
	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/desertthunder/packsmith/internal/ui"
)

// runCuration launches the interactive curation TUI over a reconciliation
// session. editPort is nil in create mode.
func (r *Runner) runCuration(ctx context.Context, port reconcile.Port, editPort *reconcile.EditPort, title string) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/packsmith-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}

	session := reconcile.NewSession(port, fileLogger)
	model := ui.NewModel(ctx, session, editPort, title)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
