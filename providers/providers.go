// Package providers routes chat requests to one of several interchangeable
// language-model backends and normalizes their failures.
package providers

import (
	"context"
	"strings"
)

// Provider identifies a backend language-model service.
type Provider string

const (
	Gemini     Provider = "gemini"
	OpenAI     Provider = "openai"
	OpenRouter Provider = "openrouter"
)

// Label returns the display name used in greetings and error messages.
func (p Provider) Label() string {
	switch p {
	case Gemini:
		return "Google Gemini"
	case OpenAI:
		return "OpenAI"
	case OpenRouter:
		return "OpenRouter"
	default:
		return string(p)
	}
}

// Role values for conversation turns. Adapters map these onto whatever role
// vocabulary their wire protocol expects.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior message of the conversation.
type Turn struct {
	Role string
	Text string
}

// Request is the normalized shape shared by all adapters: a system
// instruction, the ordered prior turns and the new user text.
type Request struct {
	Model             string
	UserText          string
	SystemInstruction string
	History           []Turn
	APIKey            string
}

// Adapter translates a normalized request into one provider-specific wire
// call. One synchronous request per turn, no streaming.
type Adapter interface {
	Call(ctx context.Context, req Request) (string, error)
}

// Credentials maps a provider to its opaque secret. A missing or blank
// entry is a valid value: the Gemini adapter falls back to the process
// default, the other adapters refuse to call out.
type Credentials map[Provider]string

func (c Credentials) Get(p Provider) string {
	return strings.TrimSpace(c[p])
}
