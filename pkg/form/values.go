// Package form is the interactive front end of fluid: four numeric fields,
// a unit toggle and a live clamp() result that is copied on submit.
package form

import (
	"fmt"
	"strconv"

	"github.com/dkoosis/fluid/internal/store"
	"github.com/dkoosis/fluid/pkg/clamp"
)

// Store keys for persisted fields.
const (
	KeyMinSize      = "min-size"
	KeyMaxSize      = "max-size"
	KeyMinViewport  = "min-viewport"
	KeyMaxViewport  = "max-viewport"
	KeyRootRelative = "root-relative"
)

// Values holds the form fields as typed. Text is kept verbatim so a
// half-typed "1." survives a save and reload.
type Values struct {
	MinSize      string
	MaxSize      string
	MinViewport  string
	MaxViewport  string
	RootRelative bool
}

// DefaultValues returns the values shown on first use.
func DefaultValues() Values {
	return Values{
		MinSize:     "32",
		MaxSize:     "48",
		MinViewport: "400",
		MaxViewport: "1600",
	}
}

// Spec coerces the text fields to numbers. Anything unparsable is zero.
func (v Values) Spec() clamp.ScaleSpec {
	spec := clamp.ScaleSpec{
		MinSize:     clamp.ParseValue(v.MinSize),
		MaxSize:     clamp.ParseValue(v.MaxSize),
		MinViewport: clamp.ParseValue(v.MinViewport),
		MaxViewport: clamp.ParseValue(v.MaxViewport),
	}
	if v.RootRelative {
		spec.Unit = clamp.RootRelative
	}
	return spec
}

// Expression is the clamp() expression for the current fields.
func (v Values) Expression() string {
	return clamp.Build(v.Spec())
}

// LoadValues reads the persisted fields from s. Keys that were never stored
// keep their value from fallback.
func LoadValues(s store.Store, fallback Values) (Values, error) {
	v := fallback
	for key, dst := range v.textFields() {
		text, ok, err := s.Get(key)
		if err != nil {
			return fallback, fmt.Errorf("failed to load %s: %w", key, err)
		}
		if ok {
			*dst = text
		}
	}

	text, ok, err := s.Get(KeyRootRelative)
	if err != nil {
		return fallback, fmt.Errorf("failed to load %s: %w", KeyRootRelative, err)
	}
	if ok {
		if b, err := strconv.ParseBool(text); err == nil {
			v.RootRelative = b
		}
	}
	return v, nil
}

// SaveValues writes all five fields to s.
func SaveValues(s store.Store, v Values) error {
	for key, src := range v.textFields() {
		if err := s.Set(key, *src); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	if err := s.Set(KeyRootRelative, strconv.FormatBool(v.RootRelative)); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyRootRelative, err)
	}
	return nil
}

func (v *Values) textFields() map[string]*string {
	return map[string]*string{
		KeyMinSize:     &v.MinSize,
		KeyMaxSize:     &v.MaxSize,
		KeyMinViewport: &v.MinViewport,
		KeyMaxViewport: &v.MaxViewport,
	}
}
