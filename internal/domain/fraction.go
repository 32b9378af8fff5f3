package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a reduced rational amount. The zero value is 0.
type Fraction struct {
	num int64
	den int64
}

// Whole returns n/1
func Whole(n int64) Fraction {
	return Fraction{num: n, den: 1}
}

// NewFraction returns num/den reduced; den must not be zero
func NewFraction(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, fmt.Errorf("fraction %d/0 has zero denominator", num)
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Fraction{num: num, den: den}, nil
}

// ParseFraction reads "n" or "n/d"
func ParseFraction(s string) (Fraction, error) {
	numPart, denPart, found := strings.Cut(strings.TrimSpace(s), "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numPart), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	if !found {
		return Whole(num), nil
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denPart), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	return NewFraction(num, den)
}

func (f Fraction) Numerator() int64 { return f.num }

func (f Fraction) Denominator() int64 {
	if f.den == 0 {
		return 1
	}
	return f.den
}

func (f Fraction) IsZero() bool { return f.num == 0 }

// Sign returns -1, 0 or 1
func (f Fraction) Sign() int {
	switch {
	case f.num < 0:
		return -1
	case f.num > 0:
		return 1
	}
	return 0
}

// Equal compares values, not representations
func (f Fraction) Equal(other Fraction) bool {
	return f.num == other.num && f.Denominator() == other.Denominator()
}

func (f Fraction) Float64() float64 {
	return float64(f.num) / float64(f.Denominator())
}

func (f Fraction) String() string {
	if f.Denominator() == 1 {
		return strconv.FormatInt(f.num, 10)
	}
	return strconv.FormatInt(f.num, 10) + "/" + strconv.FormatInt(f.den, 10)
}

func (f Fraction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fraction) UnmarshalText(text []byte) error {
	parsed, err := ParseFraction(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
