package providers

import (
	"context"
	"net/http"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterAdapter calls the OpenRouter chat completions API, which speaks
// the OpenAI wire convention under its own base URL. Like the OpenAI
// adapter it refuses to call out without a credential.
type OpenRouterAdapter struct {
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string

	// Referer and Title are OpenRouter's optional app attribution headers.
	Referer string
	Title   string
}

func (a *OpenRouterAdapter) Call(ctx context.Context, req Request) (string, error) {
	if req.APIKey == "" {
		return "", credentialMissing(OpenRouter)
	}

	base := a.BaseURL
	if base == "" {
		base = openRouterBaseURL
	}

	client := newClient(req.APIKey, base, &attributionTransport{
		referer: a.Referer,
		title:   a.Title,
	})
	return chatComplete(ctx, client, OpenRouter, req)
}

// attributionTransport adds the attribution headers to every request.
type attributionTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	clone := r.Clone(r.Context())
	if t.referer != "" {
		clone.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		clone.Header.Set("X-Title", t.title)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
