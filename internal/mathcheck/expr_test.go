package mathcheck

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEvaluateSimpleExpression(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		input string
		want  float64
	}{
		{"8", 8},
		{"2*3", 6},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10/4", 2.5},
		{"1/3", 1.0 / 3.0},
		{"10-4-3", 3},
		{"24/4/2", 3},
		{"2^3", 8},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"(-2)^2", 4},
		{"2^-1", 0.5},
		{" 1 + 1 ", 2},
		{"1.5+1.5", 3},
		{"--3", 3},
		{"+4", 4},
		{"1.", 1},
		{".25*4", 1},
		{"((((((2))))))", 2},
		{"2^-11", 0.00048828125},
		{"10^-20", 1e-20},
		{strings.Repeat("(", 64) + "1" + strings.Repeat(")", 64), 1},
		{strings.Repeat("-", 64) + "1", 1},
	}

	for _, tc := range tests {
		got, ok := c.EvaluateSimpleExpression(tc.input)
		if !ok {
			t.Errorf("EvaluateSimpleExpression(%q) not evaluated, want %v", tc.input, tc.want)
			continue
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("EvaluateSimpleExpression(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluateSimpleExpression_Rejected(t *testing.T) {
	c := New(DefaultConfig())

	inputs := []string{
		"",
		"alert(1)",
		"process.exit(1)",
		"2x",
		"x",
		"1e5",
		"1/0",
		"1/(2-2)",
		"(1+2",
		"1+2)",
		"()",
		"1 2",
		"2(3)",
		"1..2",
		".",
		"2^11",
		"9^10^10",
		"(-8)^(1/3)",
		"1+",
		"*2",
		"2=2",
		"1,5",
		strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100),
		strings.Repeat("-", 100) + "1",
		strings.Repeat("1+", 200) + "1",
	}

	for _, in := range inputs {
		if v, ok := c.EvaluateSimpleExpression(in); ok {
			t.Errorf("EvaluateSimpleExpression(%q) = %v, want rejection", in, v)
		}
	}
}

func TestEvaluate_ErrorKinds(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		input string
		want  error
	}{
		{"1/0", errDivideByZero},
		{"2^20", errExponent},
		{strings.Repeat("(", 65) + "1" + strings.Repeat(")", 65), errTooDeep},
		{strings.Repeat("-", 65) + "1", errTooDeep},
		{"0^-1", errNotFinite},
		{"(1", errSyntax},
		{"abc", errSyntax},
	}

	for _, tc := range tests {
		_, err := c.evaluate(tc.input)
		if err == nil || !errors.Is(err, tc.want) {
			t.Errorf("evaluate(%q) error = %v, want %v", tc.input, err, tc.want)
		}
	}
}
