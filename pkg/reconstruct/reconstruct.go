// Package reconstruct recovers a secret from a bundle of threshold shares,
// tolerating corrupted or inconsistent shares and reporting which ones
// disagree with the recovered polynomial.
package reconstruct

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Beastly713/pensieve/pkg/format"
	"github.com/Beastly713/pensieve/pkg/radix"
	"github.com/Beastly713/pensieve/pkg/search"
)

// ErrNoModelFound is returned when no k-subset of the supplied shares can
// define a polynomial, typically because k is outside 1..n.
var ErrNoModelFound = errors.New("no consistent share subset found")

// Reconstruct decodes the bundle's shares, searches for the
// largest-consistency k-subset, and recovers the secret as the winning
// polynomial's value at x = 0. Decoding errors are attributed to the
// offending share's index. A non-integer secret is reported as
// "numerator/denominator" rather than failing; it signals that the shares
// do not agree on an integer secret.
func Reconstruct(bundle *format.Bundle, opts search.Options) (*format.Result, error) {
	shares := make([]search.Share, 0, len(bundle.Shares))
	for _, raw := range bundle.Shares {
		x, err := radix.Decode(raw.Index, 10)
		if err != nil {
			return nil, fmt.Errorf("share %q: bad index: %w", raw.Index, err)
		}
		base, err := strconv.Atoi(raw.Base)
		if err != nil {
			return nil, fmt.Errorf("share %q: base %q is not a number: %w", raw.Index, raw.Base, err)
		}
		y, err := radix.Decode(raw.Value, base)
		if err != nil {
			return nil, fmt.Errorf("share %q: %w", raw.Index, err)
		}
		shares = append(shares, search.Share{X: x, Y: y})
	}

	// The search's enumeration order and tie-break are defined over shares
	// sorted by ascending x.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].X.Cmp(shares[j].X) < 0
	})

	best, err := search.Find(shares, bundle.K, opts)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, fmt.Errorf("k=%d with %d shares: %w", bundle.K, len(shares), ErrNoModelFound)
	}

	res := &format.Result{
		N:           bundle.N,
		K:           bundle.K,
		Secret:      best.Secret.String(),
		WrongShares: make([]format.WrongShare, 0, len(best.Mismatches)),
	}
	for _, m := range best.Mismatches {
		ws := format.WrongShare{
			Index: m.Share.X.String(),
			Given: m.Share.Y.String(),
		}
		if m.Kind == search.MismatchWrongValue {
			ws.Expected = m.Expected.String()
		} else {
			ws.Expected = format.InconsistentMarker
		}
		res.WrongShares = append(res.WrongShares, ws)
	}

	return res, nil
}
