package search

import (
	"math/big"
	"reflect"
	"testing"
)

func sh(x, y int64) Share {
	return Share{X: big.NewInt(x), Y: big.NewInt(y)}
}

func TestEnumeratorOrder(t *testing.T) {
	enum := newEnumerator(4, 2)
	var got [][]int
	for indices, ok := enum.next(); ok; indices, ok = enum.next() {
		got = append(got, append([]int(nil), indices...))
	}
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("enumeration order:\ngot  %v\nwant %v", got, want)
	}
}

func TestEnumeratorSingleCombination(t *testing.T) {
	enum := newEnumerator(3, 3)
	indices, ok := enum.next()
	if !ok || !reflect.DeepEqual(indices, []int{0, 1, 2}) {
		t.Fatalf("expected {0,1,2}, got %v (ok=%v)", indices, ok)
	}
	if _, ok := enum.next(); ok {
		t.Error("expected exhaustion after the only combination")
	}
}

func TestFindPerfectLine(t *testing.T) {
	// y = 3x: every share fits, so the very first subset is a perfect fit
	// and the search stops there.
	shares := []Share{sh(1, 3), sh(2, 6), sh(3, 9), sh(6, 18)}

	best, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a candidate")
	}
	if best.Score != 4 || len(best.Mismatches) != 0 {
		t.Errorf("expected perfect score 4, got score=%d mismatches=%d", best.Score, len(best.Mismatches))
	}
	if !reflect.DeepEqual(best.Indices, []int{0, 1}) {
		t.Errorf("expected first subset {0,1} to win, got %v", best.Indices)
	}
	if best.Secret.String() != "0" {
		t.Errorf("expected secret 0, got %s", best.Secret)
	}
}

func TestFindCorruptedLineShare(t *testing.T) {
	// y = 3x with the x=2 share altered to 7.
	shares := []Share{sh(1, 3), sh(2, 7), sh(3, 9), sh(6, 18)}

	best, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if best.Score != 3 {
		t.Fatalf("expected score 3, got %d", best.Score)
	}
	if len(best.Mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(best.Mismatches))
	}
	m := best.Mismatches[0]
	if m.Share.X.Int64() != 2 || m.Kind != MismatchWrongValue || m.Expected.Int64() != 6 {
		t.Errorf("mismatch should identify x=2 expecting 6, got x=%s kind=%d expected=%v", m.Share.X, m.Kind, m.Expected)
	}
	if best.Secret.String() != "0" {
		t.Errorf("expected secret 0, got %s", best.Secret)
	}
}

func TestFindCorruptedQuadraticShare(t *testing.T) {
	// y = x² + 1 with the last share altered; the winning subset must be the
	// honest shares and its single mismatch must point at the altered x.
	shares := []Share{sh(1, 2), sh(2, 5), sh(3, 10), sh(4, 18)}

	best, err := Find(shares, 3, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if best.Score != 3 || len(best.Mismatches) != 1 {
		t.Fatalf("expected score 3 with 1 mismatch, got score=%d mismatches=%d", best.Score, len(best.Mismatches))
	}
	m := best.Mismatches[0]
	if m.Share.X.Int64() != 4 || m.Expected.Int64() != 17 {
		t.Errorf("mismatch should identify x=4 expecting 17, got x=%s expected=%v", m.Share.X, m.Expected)
	}
	if best.Secret.String() != "1" {
		t.Errorf("expected secret 1, got %s", best.Secret)
	}
}

func TestFindNonIntegerMismatch(t *testing.T) {
	// The subset through (2,7) and (6,18) has slope 11/4: predictions at
	// the other x values are not integers and must be flagged as
	// inconsistent rather than wrong-value.
	shares := []Share{sh(1, 3), sh(2, 7), sh(3, 9), sh(6, 18)}

	cand := score(shares, []int{1, 3}, 0)
	if cand == nil {
		t.Fatal("subset with distinct x should not be skipped")
	}
	if len(cand.Mismatches) != 2 {
		t.Fatalf("expected 2 mismatches, got %d", len(cand.Mismatches))
	}
	for _, m := range cand.Mismatches {
		if m.Kind != MismatchInconsistent {
			t.Errorf("x=%s: expected inconsistent mismatch, got kind %d", m.Share.X, m.Kind)
		}
		if m.Expected != nil {
			t.Errorf("x=%s: inconsistent mismatch must not carry an expected value", m.Share.X)
		}
	}
}

func TestFindSkipsDuplicateXSubsets(t *testing.T) {
	// Two shares claim x=1; any subset containing both defines no
	// polynomial and is skipped rather than aborting the search.
	shares := []Share{sh(1, 1), sh(1, 2), sh(2, 3)}

	best, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a candidate from the non-degenerate subsets")
	}
	if !reflect.DeepEqual(best.Indices, []int{0, 2}) {
		t.Errorf("expected subset {0,2}, got %v", best.Indices)
	}
	if best.Score != 2 {
		t.Errorf("expected score 2, got %d", best.Score)
	}
}

func TestFindInvalidK(t *testing.T) {
	shares := []Share{sh(1, 1), sh(2, 2)}
	for _, k := range []int{0, -1, 3} {
		best, err := Find(shares, k, Options{})
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		if best != nil {
			t.Errorf("k=%d: expected no candidate, got %v", k, best.Indices)
		}
	}
}

func TestFindTieBreakDeterminism(t *testing.T) {
	// No perfect fit exists; every subset scores 2, so the lexicographically
	// first subset must win on every run.
	shares := []Share{sh(1, 1), sh(2, 2), sh(3, 5), sh(4, 9)}

	first, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	second, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if !reflect.DeepEqual(first.Indices, second.Indices) {
		t.Errorf("winning subset differs between runs: %v vs %v", first.Indices, second.Indices)
	}
	if !reflect.DeepEqual(first.Indices, []int{0, 1}) {
		t.Errorf("expected lexicographically first subset {0,1}, got %v", first.Indices)
	}
	if len(first.Mismatches) != len(second.Mismatches) {
		t.Errorf("mismatch lists differ between runs")
	}
}

func TestFindParallelMatchesSequential(t *testing.T) {
	// With no perfect fit, the parallel search enumerates everything and
	// must agree with the sequential result exactly.
	shares := []Share{sh(1, 3), sh(2, 7), sh(3, 9), sh(5, 14), sh(6, 18)}

	seq, err := Find(shares, 2, Options{})
	if err != nil {
		t.Fatalf("sequential Find failed: %v", err)
	}
	par, err := Find(shares, 2, Options{Workers: 4})
	if err != nil {
		t.Fatalf("parallel Find failed: %v", err)
	}

	if !reflect.DeepEqual(seq.Indices, par.Indices) {
		t.Errorf("winning subsets differ: sequential %v, parallel %v", seq.Indices, par.Indices)
	}
	if seq.Score != par.Score {
		t.Errorf("scores differ: sequential %d, parallel %d", seq.Score, par.Score)
	}
	if seq.Secret.Cmp(par.Secret) != 0 {
		t.Errorf("secrets differ: sequential %s, parallel %s", seq.Secret, par.Secret)
	}
	if len(seq.Mismatches) != len(par.Mismatches) {
		t.Errorf("mismatch counts differ: sequential %d, parallel %d", len(seq.Mismatches), len(par.Mismatches))
	}
}

func TestFindParallelPerfectFit(t *testing.T) {
	shares := []Share{sh(1, 3), sh(2, 6), sh(3, 9), sh(6, 18)}

	best, err := Find(shares, 2, Options{Workers: 4})
	if err != nil {
		t.Fatalf("parallel Find failed: %v", err)
	}
	if best.Score != 4 || len(best.Mismatches) != 0 {
		t.Errorf("expected perfect fit, got score=%d mismatches=%d", best.Score, len(best.Mismatches))
	}
	if best.Secret.String() != "0" {
		t.Errorf("expected secret 0, got %s", best.Secret)
	}
}
