package mathcheck

import (
	"math"
	"regexp"
	"strconv"
)

var (
	// Plain decimal literal. No exponent notation, no hex, no inf/nan.
	decimalRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

	// base^exponent with unsigned numbers only.
	exponentRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\^(\d+(?:\.\d+)?)$`)
)

// ParseNumber interprets a normalized answer as a number: first as a
// decimal literal, then as a fraction. It reports false when neither
// applies or the value is not finite.
func ParseNumber(s string) (float64, bool) {
	if decimalRe.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && isFinite(f) {
			return f, true
		}
		return 0, false
	}

	if frac, ok := ParseFraction(s); ok {
		return frac.Float(), true
	}
	return 0, false
}

// EvaluateExponent computes "base^exponent" for a whole-string power of
// two unsigned numbers. Exponents above MaxExponent are refused.
func (c *Checker) EvaluateExponent(s string) (float64, bool) {
	m := exponentRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	base, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	exp, err := strconv.ParseFloat(m[2], 64)
	if err != nil || exp > c.cfg.MaxExponent {
		return 0, false
	}

	v := math.Pow(base, exp)
	if !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
