package clamp

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Values at or beyond this magnitude are printed in exponent form and are
// never rounded, matching how CSS tooling prints numbers.
const exponentThreshold = 1e21

// Round rounds x to the given number of decimal places. Ties are decided on
// the exact binary value of x and go away from zero, so 1.0005 (stored as
// 1.000499...) rounds down while 0.0625 rounds up to 0.063.
func Round(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= exponentThreshold {
		return x
	}
	if digits < 0 {
		digits = 0
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r := new(big.Rat).SetFloat64(math.Abs(x))
	r.Mul(r, new(big.Rat).SetInt(scale))

	q, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	out, _ := new(big.Rat).SetFrac(q, scale).Float64()
	if x < 0 {
		out = -out
	}
	if out == 0 {
		return 0
	}
	return out
}

// FormatNumber prints x the shortest way that round-trips, without trailing
// zeros. Magnitudes below 1e-6 or at least 1e21 use exponent form ("1e-7",
// "1.5e+21"). Negative zero and non-finite values print as "0".
func FormatNumber(x float64) string {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e-6 && abs < exponentThreshold {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	s := strconv.FormatFloat(x, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// ParseValue coerces user-entered text to a number. Surrounding whitespace is
// ignored, empty text is 0, and anything unparsable or non-finite is 0.
// Unsigned integer literals with 0x, 0o and 0b prefixes are accepted.
func ParseValue(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" || strings.Contains(s, "_") {
		return 0
	}
	if hasBasePrefix(s) {
		if v, err := strconv.ParseUint(s, 0, 64); err == nil {
			return float64(v)
		}
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(v)
	}
	return 0
}

func hasBasePrefix(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0b")
}
