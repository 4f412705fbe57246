package mathcheck

import "testing"

var compareCases = []struct {
	user     string
	correct  string
	want     bool
	strategy Strategy
}{
	{"1/2", "1/2", true, StrategyExact},
	{"  X² ", "x^2", true, StrategyExact},
	{"2×3", "2*3", true, StrategyExact},
	{"5÷2", "5/2", true, StrategyExact},
	{"2^3", "2³", true, StrategyExact},
	{"2/4", "1/2", true, StrategyFraction},
	{"1/3", "2/6", true, StrategyFraction},
	{"3/-4", "-3/4", true, StrategyFraction},
	{"1 1/2", "3/2", true, StrategyFraction},
	{"1½", "3/2", true, StrategyFraction},
	{"0.3333", "1/3", true, StrategyNumeric},
	{"1/3", "0.333", true, StrategyNumeric},
	{"3.50", "3.5", true, StrategyNumeric},
	{"007", "7", true, StrategyNumeric},
	{"-1 1/2", "-1.5", true, StrategyNumeric},
	{"2³", "8", true, StrategyExponent},
	{"2^-11", "0.00048828125", true, StrategyExpression},
	{"2⁻¹", "0.5", true, StrategyExpression},
	{"2^3", "8", true, StrategyExponent},
	{"8", "2 ^ 3", true, StrategyExponent},
	{"4^2", "2^4", true, StrategyExponent},
	{"2^0.5", "1.4142", true, StrategyExponent},
	{"2*3", "6", true, StrategyExpression},
	{"(1+2)*3", "3^2", true, StrategyExpression},
	{"1/3 + 1/3", "2/3", true, StrategyExpression},
	{"2 × (3 − 1)", "4", true, StrategyExpression},

	{"1/2", "1/3", false, StrategyNone},
	{"0.33", "1/3", false, StrategyNone},
	{"10.002", "10", false, StrategyNone},
	{"alert(1)", "1", false, StrategyNone},
	{"x+1", "1+x", false, StrategyNone},
	{"", "5", false, StrategyNone},
	{"5", "", false, StrategyNone},
	{"   ", "   ", false, StrategyNone},
	{"5/0", "1", false, StrategyNone},
	{"5/0", "0/0", false, StrategyNone},
	{"1/0", "2/0", false, StrategyNone},
	{"2^11", "2048", false, StrategyNone},
	{"2*3", "2", false, StrategyNone},
	{"1e3", "1000", false, StrategyNone},
}

func TestCompare(t *testing.T) {
	for _, tc := range compareCases {
		if got := Compare(tc.user, tc.correct); got != tc.want {
			t.Errorf("Compare(%q, %q) = %v, want %v", tc.user, tc.correct, got, tc.want)
		}
	}
}

func TestMatch_Strategy(t *testing.T) {
	c := New(DefaultConfig())
	for _, tc := range compareCases {
		if got := c.Match(tc.user, tc.correct); got != tc.strategy {
			t.Errorf("Match(%q, %q) = %s, want %s", tc.user, tc.correct, got, tc.strategy)
		}
	}
}

func TestCompare_Symmetric(t *testing.T) {
	c := New(DefaultConfig())
	for _, a := range compareCases {
		for _, b := range compareCases {
			for _, pair := range [][2]string{
				{a.user, b.correct},
				{a.user, b.user},
				{a.correct, b.correct},
			} {
				ab := c.Compare(pair[0], pair[1])
				ba := c.Compare(pair[1], pair[0])
				if ab != ba {
					t.Errorf("Compare(%q, %q) = %v but reversed = %v", pair[0], pair[1], ab, ba)
				}
			}
		}
	}
}

func TestCompare_IdenticalZeroDenominator(t *testing.T) {
	// Identical text is accepted before any arithmetic happens.
	if !Compare("5/0", "5/0") {
		t.Error("expected identical answers to match exactly")
	}
	if _, ok := ParseNumber(Normalize("5/0")); ok {
		t.Error("expected 5/0 to have no numeric value")
	}
}

func TestCompare_CustomTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 0.01
	c := New(cfg)

	if !c.Compare("0.33", "1/3") {
		t.Error("expected 0.33 ≈ 1/3 with tolerance 0.01")
	}
	if c.Compare("0.3", "1/3") {
		t.Error("expected 0.3 to stay outside tolerance 0.01")
	}

	cfg.Tolerance = 0
	strict := New(cfg)
	if strict.Compare("0.3333", "1/3") {
		t.Error("expected no numeric slack with zero tolerance")
	}
	if !strict.Compare("0.5", "1/2") {
		t.Error("expected exact values to match with zero tolerance")
	}
}

func TestCheckerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 0.05
	if got := New(cfg).Config(); got != cfg {
		t.Errorf("Config() = %+v, want %+v", got, cfg)
	}
}

func TestCompareNumbers(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		user, correct string
		want          bool
	}{
		{"12.5", "12.5", true},
		{" 12.50 ", "12.5", true},
		{"0.3333", "1/3", true},
		{"-2", "−2", true},
		{"2*3", "6", false},
		{"2³", "8", false},
		{"abc", "abc", false},
		{"", "0", false},
	}
	for _, tc := range tests {
		if got := c.CompareNumbers(tc.user, tc.correct); got != tc.want {
			t.Errorf("CompareNumbers(%q, %q) = %v, want %v", tc.user, tc.correct, got, tc.want)
		}
	}
}
