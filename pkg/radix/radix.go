// Package radix decodes digit strings of arbitrary length in any base
// from 2 to 36 into arbitrary-precision integers.
package radix

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidBase is returned for bases outside the 2..36 range.
	ErrInvalidBase = errors.New("base must be between 2 and 36")

	// ErrInvalidDigit is returned when a character is not a digit of the
	// requested base.
	ErrInvalidDigit = errors.New("invalid digit")
)

// Decode converts a digit string in the given base to an integer.
// Digits are case-insensitive: '0'-'9' map to 0-9 and 'a'-'z' to 10-35.
// No sign or leading-zero handling is performed; share values are
// non-negative by contract.
func Decode(digits string, base int) (*big.Int, error) {
	if base < 2 || base > 36 {
		return nil, fmt.Errorf("base %d: %w", base, ErrInvalidBase)
	}

	value := new(big.Int)
	bigBase := big.NewInt(int64(base))
	for _, c := range digits {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'z':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			d = int(c-'A') + 10
		default:
			return nil, fmt.Errorf("character %q: %w", c, ErrInvalidDigit)
		}
		if d >= base {
			return nil, fmt.Errorf("character %q is not valid in base %d: %w", c, base, ErrInvalidDigit)
		}
		value.Mul(value, bigBase)
		value.Add(value, big.NewInt(int64(d)))
	}

	return value, nil
}
