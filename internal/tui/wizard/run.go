package wizard

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/jothom/inquiry/internal/inquiry"
	"github.com/jothom/inquiry/internal/state"
)

// Run starts the wizard on a fresh session and blocks until the user quits.
// The picker directory is remembered in opts.DataDir between runs.
func Run(ctx context.Context, opts Options) error {
	if opts.Pipeline == nil {
		return fmt.Errorf("wizard needs a submission pipeline")
	}

	ui := state.Load(opts.DataDir)
	if opts.StartDir == "" {
		opts.StartDir = ui.Picker.Dir
	}

	m := New(ctx, inquiry.NewSession(), opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if dir := m.PickerDir(); dir != "" && dir != ui.Picker.Dir {
		ui.Picker.Dir = dir
		if err := state.Save(opts.DataDir, ui); err != nil {
			log.Warn("failed to save UI state: %v", err)
		}
	}
	return nil
}
