package brain

import (
	"fmt"
	"strings"
)

// DefaultSystemInstruction is the base persona used when the configuration
// does not supply one.
const DefaultSystemInstruction = `You are an intelligent virtual assistant that helps a company's customers.
Your knowledge base comes strictly from the documents provided in the context.
If the answer is not found in the provided context, kindly reply that you do not have that information and suggest contacting a human.
Keep a professional, friendly and concise tone.`

const noContextMarker = "No relevant context found for this query in the documents."

const instructionTemplate = `%s

--- RETRIEVAL INSTRUCTIONS (RAG) ---
Answer using ONLY the following "knowledge nodes" retrieved for this query.
If the information is not in these nodes, state that you do not have that specific information in your knowledge base.

RETRIEVED KNOWLEDGE BASE:
%s
--- END OF CONTEXT ---
`

// BuildInstruction assembles the grounded system instruction for a single
// turn: it ranks the candidate pool against the query, renders the winners
// as numbered knowledge-node blocks and wraps them in the retrieval
// template. The result is rebuilt from scratch every turn since both the
// query and the ready document set vary.
func BuildInstruction(query string, pool []Chunk, baseInstruction string) string {
	nodes := Rank(query, pool, DefaultTopK)

	blocks := make([]string, 0, len(nodes))
	for i, node := range nodes {
		blocks = append(blocks, fmt.Sprintf("[NODE %d]:\n%s", i+1, node.Text))
	}

	context := strings.Join(blocks, "\n\n")
	if context == "" {
		context = noContextMarker
	}

	return fmt.Sprintf(instructionTemplate, baseInstruction, context)
}
