package render

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/fluid/pkg/clamp"
)

// Terminal renders results as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

type row struct {
	label string
	value string
}

// Render formats a result for terminal display. The expression comes first,
// on its own line, so it can be selected and copied.
func (t *Terminal) Render(r Result) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Expression.Render(r.Expression))
	sb.WriteString("\n")
	sb.WriteString(t.rule(r.Expression))

	s := r.Spec
	arrow := " " + t.theme.Icons.Arrow + " "
	t.writeRows(&sb, []row{
		{"size", px(s.MinSize) + arrow + px(s.MaxSize)},
		{"viewport", px(s.MinViewport) + arrow + px(s.MaxViewport)},
		{"preferred", clamp.FormatNumber(r.Line.Coefficient) + "vw + " + px(r.Line.Intercept)},
		{"unit", title(s.Unit.String()) + " (" + s.Unit.Suffix() + ")"},
	})

	if s.MinViewport == s.MaxViewport {
		sb.WriteString(t.theme.Warning.Render(t.theme.Icons.Warn + " empty viewport range: size is fixed at " + px(r.Line.Intercept)))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, anchor := range []struct{ viewport, size float64 }{
		{s.MinViewport, s.MinSize},
		{s.MaxViewport, s.MaxSize},
	} {
		got := r.Line.At(anchor.viewport)
		icon, style := t.theme.Icons.Pass, t.theme.Success
		if math.Abs(got-anchor.size) > anchorTolerance(anchor.viewport) {
			icon, style = t.theme.Icons.Warn, t.theme.Warning
		}
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " at " + px(anchor.viewport) + arrow + px(clamp.Round(got, clamp.Precision))))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Inspect formats a parsed expression and the viewport range it implies.
func (t *Terminal) Inspect(in Inspection) string {
	var sb strings.Builder
	sb.WriteString(t.theme.Expression.Render(in.Expression.String()))
	sb.WriteString("\n")
	sb.WriteString(t.rule(in.Expression.String()))

	e := in.Expression
	unit := e.Unit.Suffix()
	rows := []row{
		{"lower", clamp.FormatNumber(e.Lower) + unit},
		{"upper", clamp.FormatNumber(e.Upper) + unit},
		{"preferred", clamp.FormatNumber(e.Coefficient) + "vw + " + clamp.FormatNumber(e.Intercept) + unit},
	}
	if in.Fluid {
		rows = append(rows, row{"viewport", px(in.MinViewport) + " " + t.theme.Icons.Arrow + " " + px(in.MaxViewport)})
	}
	t.writeRows(&sb, rows)

	if !in.Fluid {
		sb.WriteString(t.theme.Warning.Render(t.theme.Icons.Warn + " coefficient is 0vw: the size never changes with the viewport"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) writeRows(sb *strings.Builder, rows []row) {
	labelWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(t.theme.Icons.Bullet + " "))
		sb.WriteString(t.theme.Label.Render(padRight(r.label, labelWidth)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Value.Render(r.value))
		sb.WriteString("\n")
	}
}

func (t *Terminal) rule(expression string) string {
	n := runewidth.StringWidth(expression)
	if n > t.width {
		n = t.width
	}
	return t.theme.Muted.Render(strings.Repeat("─", n)) + "\n"
}

// anchorTolerance is the largest drift the 3-decimal rounding of the
// coefficient and intercept can cause at viewport.
func anchorTolerance(viewport float64) float64 {
	return 0.0005*math.Abs(viewport)/100 + 0.0005 + 1e-9
}

func px(v float64) string {
	return clamp.FormatNumber(v) + "px"
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
