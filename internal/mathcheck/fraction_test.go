package mathcheck

import (
	"math"
	"testing"
)

func TestParseFraction(t *testing.T) {
	tests := []struct {
		input  string
		want   Fraction
		wantOK bool
	}{
		{"1/2", Fraction{1, 2}, true},
		{"-3/4", Fraction{-3, 4}, true},
		{"3/-4", Fraction{3, -4}, true},
		{"3 / 4", Fraction{3, 4}, true},
		{"1 2/3", Fraction{5, 3}, true},
		{"-1 1/2", Fraction{-3, 2}, true},
		{"-0 1/2", Fraction{-1, 2}, true},
		{"2 0/5", Fraction{10, 5}, true},

		{"5/0", Fraction{}, false},
		{"0/0", Fraction{}, false},
		{"1 1/0", Fraction{}, false},
		{"5", Fraction{}, false},
		{"0.5", Fraction{}, false},
		{"1/2/3", Fraction{}, false},
		{"a/b", Fraction{}, false},
		{"1/2x", Fraction{}, false},
		{"1 -2/3", Fraction{}, false},
		{"99999999999999999999/1", Fraction{}, false},
		{"9223372036854775807 1/2", Fraction{}, false},
		{"", Fraction{}, false},
	}

	for _, tc := range tests {
		got, ok := ParseFraction(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseFraction(%q) = %v, %v; want %v, %v", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestEquivalentFractions(t *testing.T) {
	tests := []struct {
		a, b Fraction
		want bool
	}{
		{Fraction{1, 2}, Fraction{2, 4}, true},
		{Fraction{1, 3}, Fraction{2, 6}, true},
		{Fraction{1, 2}, Fraction{1, 3}, false},
		{Fraction{3, -4}, Fraction{-3, 4}, true},
		{Fraction{-3, 4}, Fraction{3, 4}, false},
		{Fraction{math.MaxInt64, 2}, Fraction{math.MaxInt64, 2}, true},
		{Fraction{math.MaxInt64, 3}, Fraction{math.MaxInt64 - 1, 3}, false},
	}

	for _, tc := range tests {
		if got := EquivalentFractions(tc.a, tc.b); got != tc.want {
			t.Errorf("EquivalentFractions(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got := EquivalentFractions(tc.b, tc.a); got != tc.want {
			t.Errorf("EquivalentFractions(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestFraction_String(t *testing.T) {
	if got := (Fraction{-3, 4}).String(); got != "-3/4" {
		t.Errorf("String() = %q, want %q", got, "-3/4")
	}
}
