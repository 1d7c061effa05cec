// Package seq provides the ordered-sequence helpers the walk pipeline is
// built on: contiguous run grouping and monotonic boundary search.
package seq

// GroupRuns partitions s into maximal contiguous runs and maps each run
// through reduce, returning the results in order. Empty input yields nil.
//
// A run is extended greedily: s[i] joins the open run iff eq(first, s[i])
// holds, where first is the FIRST element of that run, not the most recent
// one. Calendar-day grouping depends on exactly this semantics, so it must
// not be tightened to a pairwise or adjacent check. Every run is non-empty
// and the runs concatenated reconstruct s.
func GroupRuns[T, R any](s []T, eq func(a, b T) bool, reduce func(lo, hi int, s []T) R) []R {
	var out []R
	lo := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || !eq(s[lo], s[i]) {
			out = append(out, reduce(lo, i, s))
			lo = i
		}
	}
	return out
}

// SearchBoundary returns the smallest index t in [0, n] for which pred(t) is
// true, assuming pred is monotonic: false below some threshold and true from
// it onward. By convention the virtual pred(-1) is false and pred(n) is true,
// so t == n means pred never fired. O(log n) evaluations of pred.
func SearchBoundary(n int, pred func(i int) bool) int {
	// Invariant: pred(lo-1) == false and pred(hi) == true.
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if pred(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// SearchStrings returns the boundary index of x in the ascending slice s:
// the first index holding a value >= x, or len(s) when none does.
func SearchStrings(s []string, x string) int {
	return SearchBoundary(len(s), func(i int) bool { return s[i] >= x })
}
