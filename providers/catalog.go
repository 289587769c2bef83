package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Model is one entry of the OpenRouter model catalog.
type Model struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ContextLength int      `json:"context_length,omitempty"`
	Pricing       *Pricing `json:"pricing,omitempty"`
}

type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Catalog fetches the externally hosted OpenRouter model list.
type Catalog struct {
	BaseURL string
	Client  *http.Client
}

// FetchModels performs an authenticated read of the model list and returns
// it sorted by display name ascending. A missing credential fails before
// any network call; remote failures carry the best available message from
// the response body.
func (c *Catalog) FetchModels(ctx context.Context, apiKey string) ([]Model, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &Error{
			Kind:     KindCredentialMissing,
			Provider: OpenRouter,
			Message:  "API key required to load the model catalog",
		}
	}

	base := c.BaseURL
	if base == "" {
		base = openRouterBaseURL
	}
	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/models", nil)
	if err != nil {
		return nil, catalogError(OpenRouter, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, catalogError(OpenRouter, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, catalogError(OpenRouter, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, catalogError(OpenRouter,
			fmt.Sprintf("error %d: %s", resp.StatusCode, errorMessage(body, resp.StatusCode)))
	}

	var out struct {
		Data []Model `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, catalogError(OpenRouter, "malformed catalog response: "+err.Error())
	}

	sort.SliceStable(out.Data, func(i, j int) bool {
		return out.Data[i].Name < out.Data[j].Name
	})
	return out.Data, nil
}

// errorMessage digs the best human-readable message out of an error body:
// the error envelope's message field, else a top-level message, else a
// truncated raw excerpt, else the bare status.
func errorMessage(body []byte, status int) string {
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if excerpt := truncate(strings.TrimSpace(string(body)), 100); excerpt != "" {
		return excerpt
	}
	return fmt.Sprintf("request failed with status %d", status)
}
