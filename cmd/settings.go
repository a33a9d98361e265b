package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/packsmith/internal/shared"
	"github.com/urfave/cli/v3"
)

// SettingsShow prints the current user preferences.
func (r *Runner) SettingsShow(ctx context.Context, cmd *cli.Command) error {
	st, err := r.store()
	if err != nil {
		return err
	}

	enabled, err := st.settings.AutoEnrich()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	// Never-set is treated as enabled by the creation pipeline.
	switch {
	case enabled == nil:
		r.writePlain("auto-enrich: not set (enabled)\n")
	case *enabled:
		r.writePlain("auto-enrich: enabled\n")
	default:
		r.writePlain("auto-enrich: disabled\n")
	}

	return nil
}

// SettingsEnrich enables or disables catalog enrichment during pack creation.
func (r *Runner) SettingsEnrich(ctx context.Context, cmd *cli.Command) error {
	state := cmd.StringArg("state")

	var enabled bool
	switch state {
	case "on", "enable", "enabled", "true":
		enabled = true
	case "off", "disable", "disabled", "false":
		enabled = false
	default:
		return fmt.Errorf("%w: state must be 'on' or 'off', got '%s'", shared.ErrInvalidArgument, state)
	}

	st, err := r.store()
	if err != nil {
		return err
	}

	if err := st.settings.SetAutoEnrich(enabled); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	if enabled {
		r.writePlain("✓ Catalog enrichment enabled\n")
	} else {
		r.writePlain("✓ Catalog enrichment disabled\n")
	}

	return nil
}
