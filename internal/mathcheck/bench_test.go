package mathcheck

import "testing"

func BenchmarkCompare_Exact(b *testing.B) {
	c := New(DefaultConfig())
	for i := 0; i < b.N; i++ {
		c.Compare("2 × 3", "2*3")
	}
}

func BenchmarkCompare_Expression(b *testing.B) {
	c := New(DefaultConfig())
	for i := 0; i < b.N; i++ {
		c.Compare("(1 + 2) × 3 − 4 ÷ 2", "7")
	}
}

func BenchmarkNormalize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Normalize("  (A + B)² = A² + 2AB + B²  ")
	}
}
