package brain

import (
	"sort"
	"strings"
)

// DefaultTopK is the number of chunks handed to the prompt assembler for
// one chat turn.
const DefaultTopK = 8

// Rank scores chunks against the query by lexical overlap and returns the
// topK best in descending score order. Query terms are whitespace-split,
// lowercased and must be longer than 3 characters; a chunk's score is the
// sum of case-insensitive substring occurrences of each term. When no terms
// qualify, or when even the best chunk scores zero, the first topK chunks
// are returned in their original order instead of an arbitrary ranking.
func Rank(query string, chunks []Chunk, topK int) []Chunk {
	if len(chunks) == 0 {
		return nil
	}

	head := func() []Chunk {
		n := min(topK, len(chunks))
		out := make([]Chunk, n)
		copy(out, chunks[:n])
		return out
	}

	terms := queryTerms(query)
	if len(terms) == 0 {
		return head()
	}

	scored := make([]Chunk, len(chunks))
	copy(scored, chunks)
	for i := range scored {
		text := strings.ToLower(scored[i].Text)
		score := 0
		for _, term := range terms {
			score += strings.Count(text, term)
		}
		scored[i].Score = score
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	if len(scored) > 0 && scored[0].Score == 0 {
		return head()
	}

	return scored
}

func queryTerms(query string) []string {
	var terms []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		if len(field) > 3 {
			terms = append(terms, field)
		}
	}
	return terms
}
