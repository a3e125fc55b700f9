package spline

// locate finds the segment containing x by scanning cyclically from the
// cursor: indices cursor, cursor+1, ..., N-1, 0, ..., cursor-1. Ascending
// query sequences therefore usually match on the first or second candidate.
//
// It reports the index i with xs[i] == x (exact) or xs[i] < x < xs[i+1].
// On a match the cursor moves to i. The number of candidates inspected is
// recorded in scanned. ok is false only when no candidate
// matches, which for a validated table means x is NaN.
func (sp *Spline[F]) locate(x F) (i int, exact, ok bool) {
	xs := sp.xs
	n := len(xs)
	for k := range n {
		i = sp.cursor + k
		if i >= n {
			i -= n
		}

		if xs[i] == x {
			// A run of equal x values resolves to its first sample.
			for i > 0 && xs[i-1] == x {
				i--
			}
			sp.cursor, sp.scanned = i, k+1
			return i, true, true
		}
		if i+1 < n && xs[i] < x && x < xs[i+1] {
			sp.cursor, sp.scanned = i, k+1
			return i, false, true
		}
	}
	sp.scanned = n
	return 0, false, false
}
