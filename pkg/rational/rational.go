package rational

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when constructing a fraction with a zero
	// denominator or dividing by a zero fraction.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNonInteger is returned when an exact integer is requested from a
	// fraction whose denominator is not 1.
	ErrNonInteger = errors.New("fraction is not an integer")
)

var one = big.NewInt(1)

// Fraction is an exact rational number over arbitrary-precision integers.
// The denominator is always strictly positive and the fraction is always
// fully reduced. Fractions are values: arithmetic never mutates operands.
// Use the constructors; the zero value is not a valid Fraction.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// New constructs the fraction num/den, normalized so the denominator is
// positive and the pair is reduced by its greatest common divisor.
func New(num, den *big.Int) (Fraction, error) {
	if den.Sign() == 0 {
		return Fraction{}, fmt.Errorf("denominator is zero: %w", ErrDivisionByZero)
	}
	return normalize(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// FromInt constructs the integer fraction v/1.
func FromInt(v *big.Int) Fraction {
	return Fraction{num: new(big.Int).Set(v), den: big.NewInt(1)}
}

// Zero returns the fraction 0/1.
func Zero() Fraction {
	return Fraction{num: new(big.Int), den: big.NewInt(1)}
}

// normalize takes ownership of num and den. den must be non-zero.
func normalize(num, den *big.Int) Fraction {
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Sign() == 0 {
		// gcd(0, 0) is treated as 1; unreachable while den != 0 but keeps
		// normalization total.
		g.SetInt64(1)
	}
	num.Quo(num, g)
	den.Quo(den, g)
	return Fraction{num: num, den: den}
}

// Add returns a + b as a new fully-reduced fraction.
func (a Fraction) Add(b Fraction) Fraction {
	num := new(big.Int).Mul(a.num, b.den)
	num.Add(num, new(big.Int).Mul(b.num, a.den))
	return normalize(num, new(big.Int).Mul(a.den, b.den))
}

// Sub returns a - b as a new fully-reduced fraction.
func (a Fraction) Sub(b Fraction) Fraction {
	num := new(big.Int).Mul(a.num, b.den)
	num.Sub(num, new(big.Int).Mul(b.num, a.den))
	return normalize(num, new(big.Int).Mul(a.den, b.den))
}

// Mul returns a * b as a new fully-reduced fraction.
func (a Fraction) Mul(b Fraction) Fraction {
	num := new(big.Int).Mul(a.num, b.num)
	return normalize(num, new(big.Int).Mul(a.den, b.den))
}

// Div returns a / b as a new fully-reduced fraction. Dividing by a zero
// fraction fails with ErrDivisionByZero.
func (a Fraction) Div(b Fraction) (Fraction, error) {
	if b.num.Sign() == 0 {
		return Fraction{}, fmt.Errorf("divisor is zero: %w", ErrDivisionByZero)
	}
	num := new(big.Int).Mul(a.num, b.den)
	return normalize(num, new(big.Int).Mul(a.den, b.num)), nil
}

// IsInt reports whether the fraction is an exact integer.
func (a Fraction) IsInt() bool {
	return a.den.Cmp(one) == 0
}

// Int returns the fraction as an integer, failing with ErrNonInteger when
// the denominator is not 1.
func (a Fraction) Int() (*big.Int, error) {
	if !a.IsInt() {
		return nil, fmt.Errorf("%s: %w", a, ErrNonInteger)
	}
	return new(big.Int).Set(a.num), nil
}

// Num returns a copy of the numerator.
func (a Fraction) Num() *big.Int {
	return new(big.Int).Set(a.num)
}

// Den returns a copy of the denominator.
func (a Fraction) Den() *big.Int {
	return new(big.Int).Set(a.den)
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Fraction) Cmp(b Fraction) int {
	l := new(big.Int).Mul(a.num, b.den)
	r := new(big.Int).Mul(b.num, a.den)
	return l.Cmp(r)
}

// String renders an integer fraction as its plain decimal numerator and
// anything else as "numerator/denominator".
func (a Fraction) String() string {
	if a.IsInt() {
		return a.num.String()
	}
	return a.num.String() + "/" + a.den.String()
}
