package similarity

import "strings"

// Score computes the Jaccard similarity between the word sets of two names:
// the size of the intersection over the size of the union, after lowercasing
// and splitting on whitespace. Returns a value in [0,1]; 0 when both strings
// are empty.
func Score(query, candidate string) float64 {
	queryWords := wordSet(query)
	candidateWords := wordSet(candidate)

	union := make(map[string]struct{}, len(queryWords)+len(candidateWords))
	for w := range queryWords {
		union[w] = struct{}{}
	}
	for w := range candidateWords {
		union[w] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	intersection := 0
	for w := range queryWords {
		if _, ok := candidateWords[w]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(union))
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
