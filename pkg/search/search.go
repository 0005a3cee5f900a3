// Package search finds, among n shares, the k-share subset whose implied
// polynomial agrees with as many of the other shares as possible.
package search

import (
	"context"
	"math/big"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Beastly713/pensieve/pkg/lagrange"
	"github.com/Beastly713/pensieve/pkg/rational"
)

// Share is one decoded (x, y) pair issued by the sharing scheme.
type Share struct {
	X *big.Int
	Y *big.Int
}

// MismatchKind distinguishes how a share disagrees with a candidate
// polynomial.
type MismatchKind int

const (
	// MismatchWrongValue means the polynomial predicts an integer at the
	// share's x, but not the share's y.
	MismatchWrongValue MismatchKind = iota

	// MismatchInconsistent means the prediction is not an integer, or is
	// undefined at the share's x.
	MismatchInconsistent
)

// Mismatch records one share that disagrees with a candidate polynomial.
type Mismatch struct {
	Share Share
	Kind  MismatchKind

	// Expected is the predicted integer value; set only for
	// MismatchWrongValue.
	Expected *big.Int
}

// Candidate is one scored k-subset of the share set.
type Candidate struct {
	// Indices are the subset's positions in the sorted share slice, in
	// ascending order.
	Indices []int

	// Shares are the subset members themselves.
	Shares []Share

	// Mismatches lists every share in the full set that disagrees with the
	// polynomial through this subset.
	Mismatches []Mismatch

	// Score is len(allShares) - len(Mismatches).
	Score int

	// Secret is the subset polynomial evaluated at x = 0.
	Secret rational.Fraction

	// seq is the candidate's position in the lexicographic enumeration;
	// the parallel path uses it to keep the tie-break deterministic.
	seq int
}

// Options tunes a search run.
type Options struct {
	// Workers > 1 scores candidates on a worker pool. The result is the
	// same as the sequential search up to ties between perfect fits.
	Workers int

	// Logger receives per-candidate debug output. Nil means silent.
	Logger *zap.Logger
}

// Find enumerates every k-subset of shares in lexicographic index order and
// returns the best-scoring candidate. Ties go to the subset encountered
// first; a candidate with no mismatches ends the search immediately. The
// shares must already be sorted by ascending X, since that order defines
// the enumeration and therefore the tie-break. Returns nil when k is not
// in 1..len(shares) or every subset is degenerate.
func Find(shares []Share, k int, opts Options) (*Candidate, error) {
	if k <= 0 || k > len(shares) {
		return nil, nil
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers > 1 {
		return findParallel(shares, k, opts.Workers, logger)
	}
	return findSequential(shares, k, logger)
}

func findSequential(shares []Share, k int, logger *zap.Logger) (*Candidate, error) {
	var best *Candidate
	enum := newEnumerator(len(shares), k)
	seq := 0
	for indices, ok := enum.next(); ok; indices, ok = enum.next() {
		cand := score(shares, indices, seq)
		seq++
		if cand == nil {
			continue
		}
		logger.Debug("scored candidate",
			zap.Ints("indices", cand.Indices),
			zap.Int("score", cand.Score))

		if best == nil || cand.Score > best.Score {
			if err := cand.evaluateSecret(); err != nil {
				return nil, err
			}
			best = cand
			if len(cand.Mismatches) == 0 {
				// Perfect fit: no later subset can score higher.
				break
			}
		}
	}
	return best, nil
}

func findParallel(shares []Share, k, workers int, logger *zap.Logger) (*Candidate, error) {
	type job struct {
		indices []int
		seq     int
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan job)
	g.Go(func() error {
		defer close(jobs)
		enum := newEnumerator(len(shares), k)
		seq := 0
		for indices, ok := enum.next(); ok; indices, ok = enum.next() {
			j := job{indices: append([]int(nil), indices...), seq: seq}
			seq++
			select {
			case jobs <- j:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	var mu sync.Mutex
	var best *Candidate
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				cand := score(shares, j.indices, j.seq)
				if cand == nil {
					continue
				}
				logger.Debug("scored candidate",
					zap.Ints("indices", cand.Indices),
					zap.Int("score", cand.Score))

				mu.Lock()
				if cand.better(best) {
					if err := cand.evaluateSecret(); err != nil {
						mu.Unlock()
						return err
					}
					best = cand
					if len(cand.Mismatches) == 0 {
						// Stop producing further work; in-flight jobs still
						// finish and may replace an equally perfect but
						// later candidate.
						cancel()
					}
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return best, nil
}

// better reports whether c should replace current: higher score wins, equal
// scores fall back to the earlier position in the enumeration order.
func (c *Candidate) better(current *Candidate) bool {
	if current == nil {
		return true
	}
	if c.Score != current.Score {
		return c.Score > current.Score
	}
	return c.seq < current.seq
}

// score evaluates one candidate subset against the whole share set. A nil
// return means the subset itself is degenerate (duplicate x) and defines no
// polynomial.
func score(shares []Share, indices []int, seq int) *Candidate {
	// Combination indices are ascending over shares sorted by x, so
	// duplicates inside the subset are adjacent.
	for i := 1; i < len(indices); i++ {
		if shares[indices[i]].X.Cmp(shares[indices[i-1]].X) == 0 {
			return nil
		}
	}

	subset := make([]Share, len(indices))
	for i, idx := range indices {
		subset[i] = shares[idx]
	}
	points := toPoints(subset)

	var mismatches []Mismatch
	for _, s := range shares {
		predicted, err := lagrange.Evaluate(points, s.X)
		if err != nil {
			// Duplicate or corrupted shares are expected input; an
			// undefined prediction at this x is a mismatch, not a failure.
			mismatches = append(mismatches, Mismatch{Share: s, Kind: MismatchInconsistent})
			continue
		}
		if !predicted.IsInt() {
			mismatches = append(mismatches, Mismatch{Share: s, Kind: MismatchInconsistent})
			continue
		}
		expected, _ := predicted.Int()
		if expected.Cmp(s.Y) != 0 {
			mismatches = append(mismatches, Mismatch{Share: s, Kind: MismatchWrongValue, Expected: expected})
		}
	}

	return &Candidate{
		Indices:    append([]int(nil), indices...),
		Shares:     subset,
		Mismatches: mismatches,
		Score:      len(shares) - len(mismatches),
		seq:        seq,
	}
}

// evaluateSecret fills in the subset polynomial's value at x = 0.
func (c *Candidate) evaluateSecret() error {
	secret, err := lagrange.Evaluate(toPoints(c.Shares), new(big.Int))
	if err != nil {
		return err
	}
	c.Secret = secret
	return nil
}

func toPoints(shares []Share) []lagrange.Point {
	points := make([]lagrange.Point, len(shares))
	for i, s := range shares {
		points[i] = lagrange.Point{X: s.X, Y: s.Y}
	}
	return points
}
