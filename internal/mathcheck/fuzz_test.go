package mathcheck

import (
	"testing"
	"unicode/utf8"
)

func FuzzNormalizeIdempotent(f *testing.F) {
	for _, seed := range []string{"", " 2 × 3 ", "X² + 1", "1½", "x⁻¹", "³", "5 ÷ − 2", "É = mc²", "π\u0301", "π\u03010²⅓", "½\u0301"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			t.Skip()
		}
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(%q) = %q, Normalize of that = %q", s, once, twice)
		}
	})
}

func FuzzCompareSymmetric(f *testing.F) {
	f.Add("2/4", "1/2")
	f.Add("0.3333", "1/3")
	f.Add("2³", "8")
	f.Add("alert(1)", "1")
	f.Add("(1+2)*3", "9")
	f.Fuzz(func(t *testing.T, a, b string) {
		if Compare(a, b) != Compare(b, a) {
			t.Errorf("Compare(%q, %q) is not symmetric", a, b)
		}
	})
}

func FuzzEvaluateNeverPanics(f *testing.F) {
	c := New(DefaultConfig())
	for _, seed := range []string{"1+2", "((1)", "2^2^2", "1/0", "-(-(-1))"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		v, ok := c.EvaluateSimpleExpression(s)
		if ok && !isFinite(v) {
			t.Errorf("EvaluateSimpleExpression(%q) = %v, want a finite value", s, v)
		}
	})
}
