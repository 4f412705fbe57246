// Package mathcheck decides whether a typed mathematical answer is
// equivalent to the canonical answer authored for an exercise.
//
// Comparison escalates through exact match of the normalized strings,
// fraction cross-multiplication, numeric tolerance, and finally evaluation
// of powers and plain arithmetic. Every parser in the package is total:
// a string that does not have the expected shape yields (zero, false),
// never an error or a panic.
package mathcheck

import (
	"strings"

	"github.com/gonum/floats"
)

// Strategy names the rule that accepted a pair of answers.
type Strategy string

const (
	StrategyNone       Strategy = "none"
	StrategyExact      Strategy = "exact"      // identical after normalization
	StrategyFraction   Strategy = "fraction"   // a/b == c/d by cross multiplication
	StrategyNumeric    Strategy = "numeric"    // both parse as numbers within tolerance
	StrategyExponent   Strategy = "exponent"   // a power on at least one side
	StrategyExpression Strategy = "expression" // both evaluate as arithmetic
)

// Checker compares answers. It holds no mutable state and is safe for
// concurrent use.
type Checker struct {
	cfg Config
}

// New returns a Checker using cfg. Callers should Validate cfg first;
// zero limits make every power and expression uninterpretable.
func New(cfg Config) *Checker {
	return &Checker{cfg: cfg}
}

// Config returns the configuration the Checker was built with.
func (c *Checker) Config() Config {
	return c.cfg
}

var defaultChecker = New(DefaultConfig())

// Compare reports whether user and correct are equivalent under DefaultConfig.
func Compare(user, correct string) bool {
	return defaultChecker.Compare(user, correct)
}

// Compare reports whether the learner's answer is equivalent to the
// correct one. Blank input on either side is never equivalent.
func (c *Checker) Compare(user, correct string) bool {
	return c.Match(user, correct) != StrategyNone
}

// Match returns the first strategy that accepts the pair, or StrategyNone.
func (c *Checker) Match(user, correct string) Strategy {
	if strings.TrimSpace(user) == "" || strings.TrimSpace(correct) == "" {
		return StrategyNone
	}
	return c.match(Normalize(user), Normalize(correct))
}

func (c *Checker) match(a, b string) Strategy {
	if a == b {
		return StrategyExact
	}

	fa, okA := ParseFraction(a)
	fb, okB := ParseFraction(b)
	if okA && okB && EquivalentFractions(fa, fb) {
		return StrategyFraction
	}

	na, numA := ParseNumber(a)
	nb, numB := ParseNumber(b)
	if numA && numB && c.within(na, nb) {
		return StrategyNumeric
	}

	ea, expA := c.EvaluateExponent(a)
	eb, expB := c.EvaluateExponent(b)
	switch {
	case expA && numB && c.within(ea, nb):
		return StrategyExponent
	case expB && numA && c.within(eb, na):
		return StrategyExponent
	case expA && expB && c.within(ea, eb):
		return StrategyExponent
	}

	va, okA := c.EvaluateSimpleExpression(a)
	vb, okB := c.EvaluateSimpleExpression(b)
	if okA && okB && c.within(va, vb) {
		return StrategyExpression
	}

	return StrategyNone
}

// within reports whether two finite values agree to the configured tolerance.
func (c *Checker) within(a, b float64) bool {
	if !isFinite(a) || !isFinite(b) {
		return false
	}
	return floats.EqualWithinAbs(a, b, c.cfg.Tolerance)
}

// CompareNumbers is the check used for questions whose answer is a plain
// number: both sides must parse as numbers (decimal or fraction) and agree
// within tolerance. Expressions and powers are not evaluated.
func (c *Checker) CompareNumbers(user, correct string) bool {
	if strings.TrimSpace(user) == "" || strings.TrimSpace(correct) == "" {
		return false
	}
	a, okA := ParseNumber(Normalize(user))
	b, okB := ParseNumber(Normalize(correct))
	return okA && okB && c.within(a, b)
}
