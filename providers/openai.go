package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultTemperature = 0.3

// OpenAIAdapter calls the OpenAI chat completions API. The credential is a
// hard precondition: a blank key fails before any network traffic.
type OpenAIAdapter struct {
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string
}

func (a *OpenAIAdapter) Call(ctx context.Context, req Request) (string, error) {
	if req.APIKey == "" {
		return "", credentialMissing(OpenAI)
	}

	client := newClient(req.APIKey, a.BaseURL, nil)
	return chatComplete(ctx, client, OpenAI, req)
}

// newClient builds a short-lived client for a single call, keyed entirely by
// the supplied credential. No client state survives between turns.
func newClient(apiKey, baseURL string, transport http.RoundTripper) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if transport != nil {
		cfg.HTTPClient = &http.Client{Transport: transport}
	}
	return openai.NewClientWithConfig(cfg)
}

func chatComplete(ctx context.Context, client *openai.Client, p Provider, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemInstruction,
	})
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserText,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", backendError(p, normalizeChatError(err))
	}
	if len(resp.Choices) == 0 {
		return "", backendError(p, "response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// normalizeChatError extracts the best available human-readable message from
// a failed completion call: the error envelope's message if present, else a
// truncated raw-body excerpt, else a generic status-code message.
func normalizeChatError(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("request failed with status %d", apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if body := truncate(string(reqErr.Body), 200); body != "" {
			return fmt.Sprintf("(%d) %s", reqErr.HTTPStatusCode, body)
		}
		return fmt.Sprintf("request failed with status %d", reqErr.HTTPStatusCode)
	}

	return err.Error()
}
