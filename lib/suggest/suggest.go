// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package suggest finds the closest known name to a mistyped one.
package suggest

// MaxDistance is the largest edit distance that still counts as a
// likely typo: transpositions, dropped characters, extra characters.
const MaxDistance = 3

// Closest returns the candidate with the smallest edit distance to
// unknown, or "" if none is within MaxDistance. Ties keep the earlier
// candidate.
func Closest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := MaxDistance + 1

	for _, candidate := range candidates {
		distance := Levenshtein(unknown, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}

	return bestName
}

// Levenshtein computes the Levenshtein edit distance between two strings:
// the minimum number of single-byte insertions, deletions, or
// substitutions needed to turn one into the other.
func Levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// One row of the distance matrix, over the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}

		previous = current
	}

	return previous[len(a)]
}
