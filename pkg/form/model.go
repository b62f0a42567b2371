package form

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/fluid/internal/logging"
	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/pkg/render"
)

const (
	fieldMinSize = iota
	fieldMaxSize
	fieldMinViewport
	fieldMaxViewport
	fieldUnit
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Minimum size",
	"Maximum size",
	"Minimum viewport",
	"Maximum viewport",
	"Unit",
}

// StatusCopied is shown after the expression reaches the clipboard.
const StatusCopied = "Copied to clipboard"

// copiedMsg reports the result of writing to the clipboard.
type copiedMsg struct {
	expression string
	err        error
}

// Model is the bubbletea model behind the form.
type Model struct {
	inputs       [fieldUnit]textinput.Model
	rootRelative bool
	focus        int
	expression   string

	clipboard Clipboard
	store     store.Store
	theme     render.Theme
	logger    *slog.Logger

	status    string
	err       error
	copied    bool
	saved     bool
	cancelled bool
}

// NewModel builds a form populated with v. A nil store disables saving.
func NewModel(v Values, clip Clipboard, s store.Store, theme render.Theme, logger *slog.Logger) Model {
	if clip == nil {
		clip = SystemClipboard{}
	}
	m := Model{
		clipboard:    clip,
		store:        s,
		theme:        theme,
		logger:       logging.OrNop(logger),
		rootRelative: v.RootRelative,
	}
	for i, text := range []string{v.MinSize, v.MaxSize, v.MinViewport, v.MaxViewport} {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = "0"
		in.CharLimit = 32
		in.Width = 12
		in.SetValue(text)
		m.inputs[i] = in
	}
	m.inputs[fieldMinSize].Focus()
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			return m, m.submit()
		case " ", "x":
			if m.focus == fieldUnit {
				m.rootRelative = !m.rootRelative
				m.recompute()
				return m, nil
			}
		}
	case copiedMsg:
		return m.handleCopied(msg)
	}

	if m.focus == fieldUnit {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.recompute()
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	if m.focus < fieldUnit {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	if m.focus < fieldUnit {
		m.inputs[m.focus].Focus()
	}
	return m
}

// recompute refreshes the result line. It runs on every edit.
func (m *Model) recompute() {
	m.expression = m.Values().Expression()
}

// submit copies the expression exactly as displayed.
func (m Model) submit() tea.Cmd {
	expression, clip := m.expression, m.clipboard
	return func() tea.Msg {
		return copiedMsg{expression: expression, err: clip.WriteAll(expression)}
	}
}

func (m Model) handleCopied(msg copiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.status = "Copy failed: " + msg.err.Error()
		m.logger.Warn("clipboard write failed", "error", msg.err)
		return m, nil
	}

	m.err = nil
	m.copied = true
	m.status = StatusCopied
	if m.store != nil && !m.saved {
		m.saved = true
		if err := SaveValues(m.store, m.Values()); err != nil {
			m.logger.Warn("failed to save form values", "error", err)
		}
	}
	return m, tea.Quit
}

// Values returns the fields as currently typed.
func (m Model) Values() Values {
	return Values{
		MinSize:      m.inputs[fieldMinSize].Value(),
		MaxSize:      m.inputs[fieldMaxSize].Value(),
		MinViewport:  m.inputs[fieldMinViewport].Value(),
		MaxViewport:  m.inputs[fieldMaxViewport].Value(),
		RootRelative: m.rootRelative,
	}
}

// Expression returns the live result line.
func (m Model) Expression() string { return m.expression }

// Status returns the last status message, if any.
func (m Model) Status() string { return m.status }

// Err returns the last clipboard error, if any.
func (m Model) Err() error { return m.err }

// Copied reports whether the expression reached the clipboard.
func (m Model) Copied() bool { return m.copied }

// Cancelled reports whether the user left without submitting.
func (m Model) Cancelled() bool { return m.cancelled }

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	t := m.theme

	b.WriteString(t.Label.Render("fluid " + t.Icons.Bullet + " clamp() calculator"))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, l := range fieldLabels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l)+len(" (px)"))
	}
	for i := range fieldCount {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		label := fieldLabels[i]
		if i < fieldUnit {
			label += " (px)"
		}
		b.WriteString(cursor)
		b.WriteString(t.Label.Render(runewidth.FillRight(label, labelWidth)))
		b.WriteString("  ")
		if i < fieldUnit {
			b.WriteString(m.inputs[i].View())
		} else {
			b.WriteString(m.unitView())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(t.Expression.Render(m.expression))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString("  " + t.Warning.Render(t.Icons.Warn+" "+m.status) + "\n")
	case m.status != "":
		b.WriteString("  " + t.Success.Render(t.Icons.Pass+" "+m.status) + "\n")
	}
	b.WriteString(t.Muted.Render("  tab next " + t.Icons.Bullet + " space toggle unit " + t.Icons.Bullet + " enter copy " + t.Icons.Bullet + " esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) unitView() string {
	box := "[ ]"
	if m.rootRelative {
		box = "[x]"
	}
	return m.theme.Value.Render(box + " rem (root-relative, Tailwind style)")
}
