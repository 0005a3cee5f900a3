// Package lagrange evaluates the polynomial defined by a set of sample
// points at any position, using exact rational arithmetic throughout.
package lagrange

import (
	"math/big"

	"github.com/Beastly713/pensieve/pkg/rational"
)

// Point is a single (x, y) sample of the polynomial.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Evaluate computes f(x0) for the unique polynomial of degree len(points)-1
// passing through the given points, via Lagrange basis polynomials:
//
//	Li(x0) = Π_{j≠i} (x0 - xj) / Π_{j≠i} (xi - xj)
//	f(x0)  = Σ_i yi * Li(x0)
//
// The sum is accumulated in input order. Duplicate x values within the
// point set make the basis denominator zero and fail with
// rational.ErrDivisionByZero. Cost is O(k²) big-integer multiplications.
func Evaluate(points []Point, x0 *big.Int) (rational.Fraction, error) {
	sum := rational.Zero()
	for i, pi := range points {
		num := big.NewInt(1)
		den := big.NewInt(1)
		for j, pj := range points {
			if j == i {
				continue
			}
			num.Mul(num, new(big.Int).Sub(x0, pj.X))
			den.Mul(den, new(big.Int).Sub(pi.X, pj.X))
		}
		basis, err := rational.New(num, den)
		if err != nil {
			return rational.Fraction{}, err
		}
		sum = sum.Add(rational.FromInt(pi.Y).Mul(basis))
	}
	return sum, nil
}
