package vocab

import "sort"

// MaxSuggestions caps the number of "did you mean" candidates returned.
const MaxSuggestions = 3

// DefaultMaxDistance is the edit-distance bound for fuzzy matches.
const DefaultMaxDistance = 2

// Suggest returns up to MaxSuggestions candidates for an unknown word,
// ordered best first. The curated correction table wins outright; otherwise
// candidates within maxDist case-insensitive edits are ranked by distance,
// ties preserving candidate order.
func Suggest(word string, candidates []string, maxDist int) []string {
	if fix, ok := Correction(word); ok {
		return []string{fix}
	}
	key := Key(word)
	type scored struct {
		text string
		dist int
	}
	var matches []scored
	for _, cand := range candidates {
		d := editDistance(key, Key(cand), maxDist)
		if d <= 0 || d > maxDist {
			continue
		}
		matches = append(matches, scored{text: cand, dist: d})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out
}

// SuggestSamples ranks corrections for an unknown atom against the effective
// sample and bank vocabulary.
func (r *Registry) SuggestSamples(word string) []string {
	candidates := r.Samples()
	candidates = append(candidates, r.Banks()...)
	return Suggest(word, candidates, DefaultMaxDistance)
}

// SuggestFunctions ranks corrections for an unknown dot-call against the
// function glossary.
func (r *Registry) SuggestFunctions(word string) []string {
	return Suggest(word, r.FunctionNames(), DefaultMaxDistance)
}

// editDistance is the Levenshtein distance (unit-cost insert, delete,
// substitute) with an early exit once the bound is exceeded.
func editDistance(a, b string, bound int) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > bound {
		return bound + 1
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			m := prev[j-1] + cost
			if v := prev[j] + 1; v < m {
				m = v
			}
			if v := cur[j-1] + 1; v < m {
				m = v
			}
			cur[j] = m
			if m < rowMin {
				rowMin = m
			}
		}
		if rowMin > bound {
			return bound + 1
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
