package render

import (
	"encoding/json"

	"github.com/dkoosis/fluid/pkg/clamp"
)

// jsonVersion is bumped whenever a field is renamed or removed.
const jsonVersion = "1"

// JSON renders results as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonInput struct {
	MinSize     float64 `json:"min_size"`
	MaxSize     float64 `json:"max_size"`
	MinViewport float64 `json:"min_viewport"`
	MaxViewport float64 `json:"max_viewport"`
}

// jsonOutput is the top-level JSON structure for Render.
type jsonOutput struct {
	Version    string         `json:"version"`
	Expression string         `json:"expression"`
	Unit       clamp.UnitMode `json:"unit"`
	Input      jsonInput      `json:"input"`
	Line       clamp.Line     `json:"line"`
}

// jsonInspection is the top-level JSON structure for Inspect.
type jsonInspection struct {
	Version    string           `json:"version"`
	Source     string           `json:"source"`
	Expression string           `json:"expression"`
	Parsed     clamp.Expression `json:"parsed"`
	Fluid      bool             `json:"fluid"`
	Viewport   *jsonViewport    `json:"viewport,omitempty"`
}

type jsonViewport struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Render formats a result as JSON.
func (j *JSON) Render(r Result) string {
	return marshal(jsonOutput{
		Version:    jsonVersion,
		Expression: r.Expression,
		Unit:       r.Spec.Unit,
		Input: jsonInput{
			MinSize:     r.Spec.MinSize,
			MaxSize:     r.Spec.MaxSize,
			MinViewport: r.Spec.MinViewport,
			MaxViewport: r.Spec.MaxViewport,
		},
		Line: r.Line,
	})
}

// Inspect formats an inspected expression as JSON.
func (j *JSON) Inspect(in Inspection) string {
	out := jsonInspection{
		Version:    jsonVersion,
		Source:     in.Source,
		Expression: in.Expression.String(),
		Parsed:     in.Expression,
		Fluid:      in.Fluid,
	}
	if in.Fluid {
		out.Viewport = &jsonViewport{Min: in.MinViewport, Max: in.MaxViewport}
	}
	return marshal(out)
}

func marshal(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON) + "\n"
	}
	return string(data) + "\n"
}
