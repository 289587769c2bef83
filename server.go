package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gamma-omg/bizbot-brain/brain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type chatSession interface {
	Send(ctx context.Context, text string) error
	Messages() []brain.Message
}

type knowledgeStore interface {
	ReadyChunks() []brain.Chunk
	Documents() []brain.Document
	ExportJSON() ([]byte, error)
}

// NewBrainServer exposes the knowledge base and chat session as MCP tools.
func NewBrainServer(store knowledgeStore, session chatSession) *server.MCPServer {
	srv := server.NewMCPServer("BizBot Brain", "1.0.0", server.WithToolCapabilities(false))

	search := mcp.NewTool("search_knowledge",
		mcp.WithDescription("Searches the processed knowledge base and returns the most relevant chunks"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		))
	srv.AddTool(search, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var sb strings.Builder
		for _, c := range brain.Rank(q, store.ReadyChunks(), brain.DefaultTopK) {
			raw, err := json.Marshal(struct {
				ID    string `json:"id"`
				Score int    `json:"score"`
				Text  string `json:"text"`
			}{
				ID:    c.ID,
				Score: c.Score,
				Text:  c.Text,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sb.WriteString(string(raw))
			sb.WriteString("\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	})

	ask := mcp.NewTool("ask",
		mcp.WithDescription("Asks the assistant a question grounded in the processed documents"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("User question"),
		))
	srv.AddTool(ask, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := session.Send(ctx, q); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		msgs := session.Messages()
		return mcp.NewToolResultText(msgs[len(msgs)-1].Text), nil
	})

	list := mcp.NewTool("list_documents",
		mcp.WithDescription("Lists uploaded documents with their processing status"))
	srv.AddTool(list, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		for _, doc := range store.Documents() {
			raw, err := json.Marshal(struct {
				ID     string `json:"id"`
				Name   string `json:"name"`
				Status string `json:"status"`
				Chunks int    `json:"chunks"`
			}{
				ID:     doc.ID,
				Name:   doc.Name,
				Status: string(doc.Status),
				Chunks: len(doc.Chunks),
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sb.WriteString(string(raw))
			sb.WriteString("\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	})

	export := mcp.NewTool("export_knowledge",
		mcp.WithDescription("Exports all processed documents and their chunks as a JSON snapshot"))
	srv.AddTool(export, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := store.ExportJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %s", err)), nil
		}

		return mcp.NewToolResultText(string(raw)), nil
	})

	return srv
}
