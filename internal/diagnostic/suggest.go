package diagnostic

import "sort"

// maxSuggestionDistance is the edit-distance threshold below which a
// candidate is considered a plausible typo of the looked-up name.
const maxSuggestionDistance = 3

// maxSuggestions caps how many did-you-mean candidates are surfaced.
const maxSuggestions = 5

// Suggest returns up to maxSuggestions candidates within
// maxSuggestionDistance Damerau-Levenshtein edits of name, ordered by
// increasing distance (ties broken lexically).
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	var scoredCandidates []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := damerauLevenshtein(name, c)
		if d <= maxSuggestionDistance {
			scoredCandidates = append(scoredCandidates, scored{c, d})
		}
	}

	sort.Slice(scoredCandidates, func(i, j int) bool {
		if scoredCandidates[i].dist != scoredCandidates[j].dist {
			return scoredCandidates[i].dist < scoredCandidates[j].dist
		}
		return scoredCandidates[i].name < scoredCandidates[j].name
	})

	if len(scoredCandidates) > maxSuggestions {
		scoredCandidates = scoredCandidates[:maxSuggestions]
	}

	out := make([]string, len(scoredCandidates))
	for i, s := range scoredCandidates {
		out[i] = s.name
	}
	return out
}

// damerauLevenshtein computes the optimal string alignment distance between
// a and b: insertions, deletions, substitutions, and adjacent transpositions
// each cost 1.
func damerauLevenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	la, lb := len(ar), len(br)

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}

			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			sub := d[i-1][j-1] + cost
			best := min3(del, ins, sub)

			if i > 1 && j > 1 && ar[i-1] == br[j-2] && ar[i-2] == br[j-1] {
				if t := d[i-2][j-2] + cost; t < best {
					best = t
				}
			}

			d[i][j] = best
		}
	}

	return d[la][lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
