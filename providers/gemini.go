package providers

import (
	"context"
	"os"

	"google.golang.org/genai"
)

// GeminiAdapter calls the Gemini API. Unlike the other adapters a blank
// caller credential is valid: it falls back to the configured default key,
// then to the GEMINI_API_KEY environment variable. A fresh client is built
// per call so a key change always takes effect.
type GeminiAdapter struct {
	DefaultKey string
}

func (a *GeminiAdapter) Call(ctx context.Context, req Request) (string, error) {
	key := a.resolveKey(req.APIKey)
	if key == "" {
		return "", credentialMissing(Gemini)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", backendError(Gemini, err.Error())
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.UserText, genai.RoleUser))

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](defaultTemperature),
	})
	if err != nil {
		return "", backendError(Gemini, err.Error())
	}

	return resp.Text(), nil
}

func (a *GeminiAdapter) resolveKey(callerKey string) string {
	if callerKey != "" {
		return callerKey
	}
	if a.DefaultKey != "" {
		return a.DefaultKey
	}
	return os.Getenv("GEMINI_API_KEY")
}
