// Package similarity scores how close two task names are, for fuzzy
// matching in task search and suggestions.
package similarity

import "strings"

// EditDistance returns the case-insensitive Levenshtein distance between
// a and b. It keeps a single rolling row, so auxiliary space is
// proportional to the shorter string.
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	// Iterate over the longer string, keep the row for the shorter one.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := row[0] // row[j-1] of the previous row
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}

	return row[len(rb)]
}

// Similarity returns a normalized score in [0,1]. Two identical strings
// score 1. Empty or absent input scores 0 even for two empty strings;
// callers rely on empty never ranking as a perfect match.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	longer, shorter := a, b
	if len([]rune(longer)) < len([]rune(shorter)) {
		longer, shorter = shorter, longer
	}

	longerLen := len([]rune(longer))
	return float64(longerLen-EditDistance(longer, shorter)) / float64(longerLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
