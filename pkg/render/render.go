// Package render formats clamp results for the terminal, for pipes and for automation.
package render

import (
	"github.com/dkoosis/fluid/pkg/clamp"
)

// Renderer converts a result or an inspected expression to formatted output.
type Renderer interface {
	Render(r Result) string
	Inspect(in Inspection) string
}

// Result is one computed expression together with the inputs it came from.
type Result struct {
	Spec       clamp.ScaleSpec
	Line       clamp.Line
	Expression string
}

// NewResult computes the expression for spec.
func NewResult(spec clamp.ScaleSpec) Result {
	return Result{
		Spec:       spec.Sanitized(),
		Line:       clamp.Derive(spec),
		Expression: clamp.Build(spec),
	}
}

// Inspection describes an expression parsed back into numbers.
type Inspection struct {
	Source      string
	Expression  clamp.Expression
	MinViewport float64
	MaxViewport float64
	Fluid       bool // false when the coefficient is zero
}

// NewInspection derives the viewport anchors of expr.
func NewInspection(source string, expr clamp.Expression) Inspection {
	minVW, maxVW, ok := expr.Anchors()
	return Inspection{
		Source:      source,
		Expression:  expr,
		MinViewport: clamp.Round(minVW, clamp.Precision),
		MaxViewport: clamp.Round(maxVW, clamp.Precision),
		Fluid:       ok,
	}
}

// ByName returns the renderer for an output mode: "json", "plain" or
// "terminal". Unknown modes fall back to terminal.
func ByName(mode string, theme Theme, width int) Renderer {
	switch mode {
	case "json":
		return NewJSON()
	case "plain":
		return NewPlain()
	default:
		return NewTerminal(theme, width)
	}
}
