package render

import (
	"strings"

	"github.com/dkoosis/fluid/pkg/clamp"
)

// Plain renders bare text with no styling, for pipes and copy-paste.
type Plain struct{}

// NewPlain creates a plain renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render returns the expression followed by a newline and nothing else.
func (p *Plain) Render(r Result) string {
	return r.Expression + "\n"
}

// Inspect returns the canonical expression followed by one key=value line
// per derived field.
func (p *Plain) Inspect(in Inspection) string {
	var sb strings.Builder
	sb.WriteString(in.Expression.String())
	sb.WriteString("\n")
	e := in.Expression
	unit := e.Unit.Suffix()
	writeKV(&sb, "lower", clamp.FormatNumber(e.Lower)+unit)
	writeKV(&sb, "upper", clamp.FormatNumber(e.Upper)+unit)
	writeKV(&sb, "coefficient", clamp.FormatNumber(e.Coefficient)+"vw")
	writeKV(&sb, "intercept", clamp.FormatNumber(e.Intercept)+unit)
	if in.Fluid {
		writeKV(&sb, "min-viewport", px(in.MinViewport))
		writeKV(&sb, "max-viewport", px(in.MaxViewport))
	}
	return sb.String()
}

func writeKV(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteString("=")
	sb.WriteString(value)
	sb.WriteString("\n")
}
