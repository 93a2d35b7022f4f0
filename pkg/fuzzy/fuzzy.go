package fuzzy

import "strings"

// LevenshteinDistance calculates the edit distance between two strings:
// how many single-character insertions, deletions, or substitutions are
// required to change one into the other.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalize(s1)
	s2 = normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// BestMatch returns the candidate closest to query, tolerating typos. The
// threshold scales with the query length so short names stay strict. Returns
// false when nothing comes close enough.
func BestMatch(query string, candidates []string) (string, bool) {
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	best := ""
	bestDistance := threshold + 1
	for _, candidate := range candidates {
		if normalize(candidate) == normalize(query) {
			return candidate, true
		}
		dist := LevenshteinDistance(query, candidate)
		if dist < bestDistance {
			best = candidate
			bestDistance = dist
		}
	}

	return best, best != ""
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalize lowercases and collapses whitespace
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
