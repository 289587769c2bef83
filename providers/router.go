package providers

import (
	"context"
	"fmt"
	"log/slog"
)

// RouterConfig configures a Router.
type RouterConfig struct {
	Log *slog.Logger

	// OpenRouterReferer and OpenRouterTitle are the optional app
	// attribution headers sent to OpenRouter.
	OpenRouterReferer string
	OpenRouterTitle   string
}

// Router dispatches a request to the adapter for the selected provider and
// converts any failure into a textual result. Callers always get text back,
// never an error: a failed turn reads as an error message in the chat. The
// router performs no retries and no model validation; a bad model id simply
// surfaces as an adapter-reported error.
type Router struct {
	log      *slog.Logger
	adapters map[Provider]Adapter
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		log: cfg.Log,
		adapters: map[Provider]Adapter{
			Gemini: &GeminiAdapter{},
			OpenAI: &OpenAIAdapter{},
			OpenRouter: &OpenRouterAdapter{
				Referer: cfg.OpenRouterReferer,
				Title:   cfg.OpenRouterTitle,
			},
		},
	}
}

// Send routes one turn to the provider's adapter.
func (r *Router) Send(ctx context.Context, provider Provider, req Request) string {
	adapter, ok := r.adapters[provider]
	if !ok {
		return fmt.Sprintf("Provider %s is not supported.", provider)
	}

	text, err := adapter.Call(ctx, req)
	if err != nil {
		r.log.Error("provider call failed",
			"provider", provider, "model", req.Model, "err", err)
		return fmt.Sprintf("Error connecting to %s: %s", provider.Label(), err)
	}

	return text
}
