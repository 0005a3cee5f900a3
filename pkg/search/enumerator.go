package search

// enumerator yields the k-combinations of {0, ..., n-1} in lexicographic
// order. It advances an explicit index odometer instead of recursing, so a
// producer loop can hand combinations out one at a time.
type enumerator struct {
	n, k    int
	indices []int
	started bool
	done    bool
}

// newEnumerator requires 0 < k <= n.
func newEnumerator(n, k int) *enumerator {
	e := &enumerator{n: n, k: k, indices: make([]int, k)}
	for i := range e.indices {
		e.indices[i] = i
	}
	return e
}

// next returns the next combination, or false when exhausted. The returned
// slice is reused between calls and must be copied if retained.
func (e *enumerator) next() ([]int, bool) {
	if e.done {
		return nil, false
	}
	if !e.started {
		e.started = true
		return e.indices, true
	}

	// Find the rightmost index that can still move, bump it, and reset
	// everything to its right to the smallest valid run.
	i := e.k - 1
	for i >= 0 && e.indices[i] == i+e.n-e.k {
		i--
	}
	if i < 0 {
		e.done = true
		return nil, false
	}
	e.indices[i]++
	for j := i + 1; j < e.k; j++ {
		e.indices[j] = e.indices[j-1] + 1
	}
	return e.indices, true
}
