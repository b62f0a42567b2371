package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/fluid/pkg/clamp"
)

var bodySpec = clamp.ScaleSpec{MinSize: 32, MaxSize: 48, MinViewport: 400, MaxViewport: 1600}

func TestPlain_Render_PrintsOnlyExpression(t *testing.T) {
	out := NewPlain().Render(NewResult(bodySpec))
	assert.Equal(t, "clamp(32px, 1.333vw + 26.667px, 48px)\n", out)

	rem := bodySpec
	rem.Unit = clamp.RootRelative
	out = NewPlain().Render(NewResult(rem))
	assert.Equal(t, "clamp(2rem,1.333vw+1.667rem,3rem)\n", out)
}

func TestTerminal_Render_ShowsInputsAndAnchors(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(NewResult(bodySpec))
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "clamp(32px, 1.333vw + 26.667px, 48px)")
	assert.Contains(t, out, "32px -> 48px")
	assert.Contains(t, out, "400px -> 1600px")
	assert.Contains(t, out, "1.333vw + 26.667px")
	assert.Contains(t, out, "Pixels (px)")
	assert.Contains(t, out, "+ at 400px -> 31.999px")
	assert.Contains(t, out, "+ at 1600px -> 47.995px")
	assert.NotContains(t, out, "!")
}

func TestTerminal_Render_WarnsOnEmptyViewportRange(t *testing.T) {
	spec := clamp.ScaleSpec{MinSize: 16, MaxSize: 24, MinViewport: 800, MaxViewport: 800}
	out := NewTerminal(MonoTheme(), 80).Render(NewResult(spec))

	assert.Contains(t, out, "clamp(16px, 0vw + 24px, 24px)")
	assert.Contains(t, out, "! empty viewport range: size is fixed at 24px")
	assert.NotContains(t, out, " at 800px")
}

func TestTerminal_Render_SanitizesNonFiniteInput(t *testing.T) {
	spec := bodySpec
	spec.MinViewport = nan()
	out := NewTerminal(MonoTheme(), 80).Render(NewResult(spec))
	assert.Contains(t, out, "0px -> 1600px")
	assert.NotContains(t, out, "NaN")
}

func TestTerminal_Inspect_DerivesViewportRange(t *testing.T) {
	expr, err := clamp.ParseExpression("clamp(16px, 7.5vw + -32px, 64px)")
	require.NoError(t, err)

	in := NewInspection("clamp(16px, 7.5vw + -32px, 64px)", expr)
	assert.True(t, in.Fluid)
	assert.Equal(t, 640.0, in.MinViewport)
	assert.Equal(t, 1280.0, in.MaxViewport)

	out := NewTerminal(MonoTheme(), 80).Inspect(in)
	assert.Contains(t, out, "640px -> 1280px")
	assert.Contains(t, out, "7.5vw + -32px")
}

func TestTerminal_Inspect_WarnsWhenNotFluid(t *testing.T) {
	expr, err := clamp.ParseExpression("clamp(1rem,0vw+1.5rem,1.5rem)")
	require.NoError(t, err)

	out := NewTerminal(MonoTheme(), 80).Inspect(NewInspection("x", expr))
	assert.Contains(t, out, "coefficient is 0vw")
	assert.NotContains(t, out, "viewport  ")
}

func TestPlain_Inspect_ListsFields(t *testing.T) {
	expr, err := clamp.ParseExpression("clamp(1rem,7.5vw+-2rem,4rem)")
	require.NoError(t, err)

	out := NewPlain().Inspect(NewInspection("", expr))
	want := "clamp(1rem,7.5vw+-2rem,4rem)\n" +
		"lower=1rem\n" +
		"upper=4rem\n" +
		"coefficient=7.5vw\n" +
		"intercept=-2rem\n" +
		"min-viewport=640px\n" +
		"max-viewport=1280px\n"
	assert.Equal(t, want, out)
}

func TestJSON_Render_ProducesVersionedDocument(t *testing.T) {
	out := NewJSON().Render(NewResult(bodySpec))

	var doc struct {
		Version    string `json:"version"`
		Expression string `json:"expression"`
		Unit       string `json:"unit"`
		Input      struct {
			MinSize     float64 `json:"min_size"`
			MaxViewport float64 `json:"max_viewport"`
		} `json:"input"`
		Line struct {
			Coefficient float64 `json:"coefficient"`
			Intercept   float64 `json:"intercept"`
		} `json:"line"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "1", doc.Version)
	assert.Equal(t, "clamp(32px, 1.333vw + 26.667px, 48px)", doc.Expression)
	assert.Equal(t, "px", doc.Unit)
	assert.Equal(t, 32.0, doc.Input.MinSize)
	assert.Equal(t, 1600.0, doc.Input.MaxViewport)
	assert.Equal(t, 1.333, doc.Line.Coefficient)
	assert.Equal(t, 26.667, doc.Line.Intercept)
}

func TestJSON_Inspect_OmitsViewport_When_NotFluid(t *testing.T) {
	expr, err := clamp.ParseExpression("clamp(16px, 0vw + 24px, 24px)")
	require.NoError(t, err)

	out := NewJSON().Inspect(NewInspection("clamp(16px, 0vw + 24px, 24px)", expr))
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, false, doc["fluid"])
	assert.NotContains(t, doc, "viewport")
	assert.Equal(t, "px", doc["parsed"].(map[string]any)["unit"])
}

func TestByName_SelectsRenderer(t *testing.T) {
	assert.IsType(t, &JSON{}, ByName("json", MonoTheme(), 80))
	assert.IsType(t, &Plain{}, ByName("plain", MonoTheme(), 80))
	assert.IsType(t, &Terminal{}, ByName("terminal", MonoTheme(), 80))
	assert.IsType(t, &Terminal{}, ByName("bogus", MonoTheme(), 80))
}

func TestThemeByName_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "orca", ThemeByName("orca").Name)
	assert.Equal(t, "mono", ThemeByName("mono").Name)
	assert.Equal(t, "default", ThemeByName("neon").Name)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
