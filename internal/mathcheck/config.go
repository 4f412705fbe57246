package mathcheck

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate when a limit is out of range.
var ErrInvalidConfig = errors.New("mathcheck: invalid config")

// Config controls how lenient a Checker is.
type Config struct {
	// Tolerance is the largest absolute difference between two numeric
	// interpretations that still counts as equal. Default: 0.001.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// MaxExponent caps the exponent accepted by the exponent and expression
	// evaluators. Larger exponents make the answer uninterpretable. Default: 10.
	MaxExponent float64 `yaml:"max_exponent" json:"max_exponent"`

	// MaxDepth caps nesting in the expression evaluator. Each parenthesis
	// level, unary sign and chained ^ counts as one level.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// MaxInputLen is the longest normalized answer (in runes) the expression
	// evaluator will look at.
	MaxInputLen int `yaml:"max_input_len" json:"max_input_len"`
}

// DefaultConfig returns the grading defaults used by the course viewer.
func DefaultConfig() Config {
	return Config{
		Tolerance:   0.001,
		MaxExponent: 10,
		MaxDepth:    64,
		MaxInputLen: 256,
	}
}

// Validate reports whether every limit is usable.
func (c Config) Validate() error {
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance = %v, must be finite and >= 0", ErrInvalidConfig, c.Tolerance)
	}
	if math.IsNaN(c.MaxExponent) || math.IsInf(c.MaxExponent, 0) || c.MaxExponent <= 0 {
		return fmt.Errorf("%w: max_exponent = %v, must be finite and > 0", ErrInvalidConfig, c.MaxExponent)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth = %d, must be > 0", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxInputLen <= 0 {
		return fmt.Errorf("%w: max_input_len = %d, must be > 0", ErrInvalidConfig, c.MaxInputLen)
	}
	return nil
}
