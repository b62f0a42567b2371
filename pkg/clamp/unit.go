package clamp

import (
	"fmt"
	"strings"
)

// UnitMode selects the unit of the emitted bounds and intercept.
type UnitMode int

const (
	// Pixels emits absolute px values with spaced tokens.
	Pixels UnitMode = iota
	// RootRelative emits rem values (1rem = RootFontSize px) with no spaces,
	// the convention of utility-class frameworks such as Tailwind.
	RootRelative
)

// Suffix returns the CSS unit suffix for m.
func (m UnitMode) Suffix() string {
	if m == RootRelative {
		return "rem"
	}
	return "px"
}

func (m UnitMode) String() string {
	if m == RootRelative {
		return "root-relative"
	}
	return "pixels"
}

// MarshalText encodes m as its CSS suffix.
func (m UnitMode) MarshalText() ([]byte, error) {
	return []byte(m.Suffix()), nil
}

// UnmarshalText accepts any spelling ParseUnitMode accepts.
func (m *UnitMode) UnmarshalText(text []byte) error {
	mode, err := ParseUnitMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseUnitMode parses a unit mode name. The empty string means Pixels.
func ParseUnitMode(s string) (UnitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "px", "pixel", "pixels":
		return Pixels, nil
	case "rem", "root-relative", "tailwind":
		return RootRelative, nil
	default:
		return Pixels, fmt.Errorf("unknown unit %q (expected px or rem)", s)
	}
}
