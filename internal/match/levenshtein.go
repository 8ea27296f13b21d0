// Package match suggests the closest known word for a misspelled one.
package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions turning one
// into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Keep a the shorter one, the rows are sized after it.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Closest returns the candidate nearest to word, provided it is at most
// maxDistance edits away. Ties go to the earlier candidate.
func Closest[S ~string](word string, candidates []S, maxDistance int) (S, bool) {
	var (
		best  S
		found bool
		dist  = maxDistance + 1
	)

	for _, c := range candidates {
		if d := Levenshtein(word, string(c)); d < dist {
			best, dist, found = c, d, true
		}
	}

	return best, found
}
