package clamp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedExpression is returned by ParseExpression for input that is
// not a clamp(lower, Nvw + intercept, upper) expression.
var ErrMalformedExpression = errors.New("malformed clamp expression")

// Expression is a parsed clamp() expression. Lower, Intercept and Upper are
// in Unit; Coefficient is in vw.
type Expression struct {
	Lower       float64  `json:"lower"`
	Coefficient float64  `json:"coefficient"`
	Intercept   float64  `json:"intercept"`
	Upper       float64  `json:"upper"`
	Unit        UnitMode `json:"unit"`
}

// ParseExpression parses an expression in either the spaced or the compact
// form produced by Build. All three lengths must share one unit.
func ParseExpression(s string) (Expression, error) {
	compact := strings.Join(strings.Fields(s), "")
	body, ok := strings.CutPrefix(compact, "clamp(")
	if !ok || !strings.HasSuffix(body, ")") {
		return Expression{}, fmt.Errorf("%w: %q: expected clamp(...)", ErrMalformedExpression, s)
	}
	parts := strings.Split(strings.TrimSuffix(body, ")"), ",")
	if len(parts) != 3 {
		return Expression{}, fmt.Errorf("%w: %q: expected 3 arguments, got %d", ErrMalformedExpression, s, len(parts))
	}

	coefText, interceptText, ok := strings.Cut(parts[1], "vw+")
	if !ok {
		// "Nvw - length" is the same line written by hand.
		if coefText, interceptText, ok = strings.Cut(parts[1], "vw-"); ok {
			interceptText = "-" + interceptText
		}
	}
	if !ok {
		return Expression{}, fmt.Errorf("%w: %q: preferred value must be Nvw + length", ErrMalformedExpression, s)
	}
	coef, err := parseFinite(coefText)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: coefficient %q: %v", ErrMalformedExpression, coefText, err)
	}

	var (
		expr  = Expression{Coefficient: coef}
		units [3]UnitMode
	)
	for i, field := range []struct {
		text string
		dst  *float64
	}{
		{parts[0], &expr.Lower},
		{interceptText, &expr.Intercept},
		{parts[2], &expr.Upper},
	} {
		v, unit, err := parseLength(field.text)
		if err != nil {
			return Expression{}, err
		}
		*field.dst = v
		units[i] = unit
	}
	if units[0] != units[1] || units[1] != units[2] {
		return Expression{}, fmt.Errorf("%w: %q: mixed units", ErrMalformedExpression, s)
	}
	expr.Unit = units[0]
	return expr, nil
}

// Anchors returns the viewport widths in pixels at which the preferred value
// reaches Lower and Upper. ok is false for a flat expression.
func (e Expression) Anchors() (minViewport, maxViewport float64, ok bool) {
	if e.Coefficient == 0 {
		return 0, 0, false
	}
	toPx := 1.0
	if e.Unit == RootRelative {
		toPx = RootFontSize
	}
	intercept := e.Intercept * toPx
	minViewport = (e.Lower*toPx - intercept) / e.Coefficient * 100
	maxViewport = (e.Upper*toPx - intercept) / e.Coefficient * 100
	return minViewport, maxViewport, true
}

// String renders e the way Build renders the same numbers.
func (e Expression) String() string {
	unit := e.Unit.Suffix()
	out := fmt.Sprintf("clamp(%s%s, %svw + %s%s, %s%s)",
		FormatNumber(e.Lower), unit,
		FormatNumber(e.Coefficient),
		FormatNumber(e.Intercept), unit,
		FormatNumber(e.Upper), unit,
	)
	if e.Unit == RootRelative {
		out = strings.ReplaceAll(out, " ", "")
	}
	return out
}

func parseLength(text string) (float64, UnitMode, error) {
	var (
		num  string
		unit UnitMode
	)
	switch {
	case strings.HasSuffix(text, "rem"):
		num, unit = strings.TrimSuffix(text, "rem"), RootRelative
	case strings.HasSuffix(text, "px"):
		num, unit = strings.TrimSuffix(text, "px"), Pixels
	default:
		return 0, Pixels, fmt.Errorf("%w: length %q: expected px or rem", ErrMalformedExpression, text)
	}
	v, err := parseFinite(num)
	if err != nil {
		return 0, Pixels, fmt.Errorf("%w: length %q: %v", ErrMalformedExpression, text, err)
	}
	return v, unit, nil
}

// parseFinite is strconv.ParseFloat without NaN and infinities.
func parseFinite(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return v, nil
}
