package dispatchers

import (
	"cmp"
	"slices"
	"strings"
)

// maxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" candidate.
const maxSuggestionDistance = 3

// levenshtein returns the case-insensitive edit distance between a and b,
// counted in runes.
func levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			sub := prev[j-1]
			if ra[i-1] != rb[j-1] {
				sub++
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FindSimilarCommands returns up to maxResults names within a small edit
// distance of input, closest first and then alphabetically. Exact matches
// are not suggestions.
func FindSimilarCommands(input string, names []string, maxResults int) []string {
	type candidate struct {
		name string
		dist int
	}

	var found []candidate
	for _, name := range names {
		if d := levenshtein(input, name); d > 0 && d <= maxSuggestionDistance {
			found = append(found, candidate{name, d})
		}
	}

	slices.SortFunc(found, func(x, y candidate) int {
		return cmp.Or(cmp.Compare(x.dist, y.dist), strings.Compare(x.name, y.name))
	})

	n := max(0, min(len(found), maxResults))
	out := make([]string, 0, n)
	for _, c := range found[:n] {
		out = append(out, c.name)
	}
	return out
}
