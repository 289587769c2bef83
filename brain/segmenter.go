package brain

import (
	"fmt"
	"regexp"
	"strings"
)

// chunkTokenBudget is the estimated token budget a chunk is packed under.
const chunkTokenBudget = 500

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// EstimateTokens approximates the token cost of a text at 4 characters
// per token, rounded up.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// Segment splits text into an ordered sequence of chunks. Paragraphs
// (separated by a blank line) are the atomic unit: consecutive paragraphs
// are packed into the current chunk while the running token estimate stays
// under the budget, and a single paragraph larger than the budget is still
// emitted as one oversized chunk. Chunk ids are "{sourceID}-chunk-{i}" with
// a 0-based index.
func Segment(text string, sourceID string) []Chunk {
	chunks := []Chunk{}
	current := ""

	seal := func() {
		if current == "" {
			return
		}
		chunks = append(chunks, Chunk{
			ID:         fmt.Sprintf("%s-chunk-%d", sourceID, len(chunks)),
			Text:       current,
			TokenCount: EstimateTokens(current),
		})
	}

	for _, para := range paragraphSplit.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if EstimateTokens(current+para) < chunkTokenBudget {
			if current == "" {
				current = para
			} else {
				current += "\n\n" + para
			}
		} else {
			seal()
			current = para
		}
	}
	seal()

	return chunks
}
