package mathcheck

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Fraction is a parsed fraction as typed, not reduced.
type Fraction struct {
	Num int64
	Den int64
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Float returns the decimal value of f.
func (f Fraction) Float() float64 {
	return float64(f.Num) / float64(f.Den)
}

var (
	// "3/4", "-3/4", "3 / -4"
	simpleFractionRe = regexp.MustCompile(`^(-?\d+)\s*/\s*(-?\d+)$`)

	// "1 2/3", "-1 2/3"
	mixedFractionRe = regexp.MustCompile(`^(-?\d+)\s+(\d+)\s*/\s*(\d+)$`)
)

// ParseFraction recognizes a whole-string simple or mixed fraction.
// A mixed number's sign applies to the whole value: "-1 1/2" is -3/2.
// Anything else, including a zero denominator or a value that does not
// fit in an int64, reports false.
func ParseFraction(s string) (Fraction, bool) {
	if m := simpleFractionRe.FindStringSubmatch(s); m != nil {
		num, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Fraction{}, false
		}
		den, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || den == 0 {
			return Fraction{}, false
		}
		return Fraction{Num: num, Den: den}, true
	}

	if m := mixedFractionRe.FindStringSubmatch(s); m != nil {
		negative := strings.HasPrefix(m[1], "-")

		whole, ok := new(big.Int).SetString(strings.TrimPrefix(m[1], "-"), 10)
		if !ok {
			return Fraction{}, false
		}
		num, ok := new(big.Int).SetString(m[2], 10)
		if !ok {
			return Fraction{}, false
		}
		den, ok := new(big.Int).SetString(m[3], 10)
		if !ok || den.Sign() == 0 || !den.IsInt64() {
			return Fraction{}, false
		}

		total := new(big.Int).Mul(whole, den)
		total.Add(total, num)
		if negative {
			total.Neg(total)
		}
		if !total.IsInt64() {
			return Fraction{}, false
		}
		return Fraction{Num: total.Int64(), Den: den.Int64()}, true
	}

	return Fraction{}, false
}

// EquivalentFractions reports whether a/b == c/d by cross multiplication.
// The products are computed exactly, so large numerators cannot overflow.
func EquivalentFractions(a, b Fraction) bool {
	left := new(big.Int).Mul(big.NewInt(a.Num), big.NewInt(b.Den))
	right := new(big.Int).Mul(big.NewInt(a.Den), big.NewInt(b.Num))
	return left.Cmp(right) == 0
}
