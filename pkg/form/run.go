package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/pkg/render"
)

// Options configures Run.
type Options struct {
	Values    Values
	Store     store.Store // nil disables saving
	Clipboard Clipboard   // nil means SystemClipboard
	Theme     render.Theme
	Input     io.Reader // nil means the terminal
	Output    io.Writer // nil means stdout
	Logger    *slog.Logger
}

// Outcome is the state of the form when it closed.
type Outcome struct {
	Expression string
	Values     Values
	Copied     bool
}

// Run shows the form until the user copies a result or cancels.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	model := NewModel(opts.Values, opts.Clipboard, opts.Store, opts.Theme, opts.Logger)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	finalModel, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("form: %w", err)
	}
	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("form: unexpected model type %T", finalModel)
	}
	return Outcome{
		Expression: m.Expression(),
		Values:     m.Values(),
		Copied:     m.Copied(),
	}, nil
}
