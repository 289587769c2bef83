package brain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gamma-omg/bizbot-brain/providers"
	"github.com/google/uuid"
)

// Message is one entry of a session's append-only log.
type Message struct {
	ID        string
	Role      string
	Text      string
	Timestamp time.Time
}

// Responder produces the assistant reply for one turn. Satisfied by
// providers.Router.
type Responder interface {
	Send(ctx context.Context, provider providers.Provider, req providers.Request) string
}

// SessionConfig configures a chat session.
type SessionConfig struct {
	Store           *Store
	Responder       Responder
	Provider        providers.Provider
	Model           string
	Credentials     providers.Credentials
	BaseInstruction string
}

// Session holds the ordered message history of one chat. The log is
// append-only; the only other mutation is a reset back to a single
// greeting, triggered explicitly or by a provider/model change. At most one
// send is in flight at a time, concurrent calls are rejected rather than
// queued.
type Session struct {
	store           *Store
	responder       Responder
	creds           providers.Credentials
	baseInstruction string

	mu       sync.Mutex
	provider providers.Provider
	model    string
	inFlight bool
	messages []Message
}

func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		store:           cfg.Store,
		responder:       cfg.Responder,
		creds:           cfg.Credentials,
		baseInstruction: cfg.BaseInstruction,
		provider:        cfg.Provider,
		model:           cfg.Model,
	}
	if s.baseInstruction == "" {
		s.baseInstruction = DefaultSystemInstruction
	}
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
	return s
}

// Reset truncates the log to a single synthetic greeting.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Configure switches the active provider and model and resets the log.
func (s *Session) Configure(provider providers.Provider, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = provider
	s.model = model
	s.reset()
}

// reset must be called with the session lock held.
func (s *Session) reset() {
	s.inFlight = false
	s.messages = []Message{{
		ID:   uuid.NewString(),
		Role: providers.RoleAssistant,
		Text: fmt.Sprintf("Hello! I am your virtual assistant powered by %s. I have analyzed your documents and I am ready to answer.",
			s.provider.Label()),
		Timestamp: time.Now(),
	}}
}

// Send appends the user message, asks the active provider for a grounded
// reply and appends it as the assistant message. Whitespace-only input and
// sends while another is still in flight are rejected with a sentinel the
// caller can treat as a no-op. The reply is always text: provider failures
// arrive as error messages, never as a raised failure.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}

	history := make([]providers.Turn, 0, len(s.messages))
	for _, m := range s.messages {
		history = append(history, providers.Turn{Role: m.Role, Text: m.Text})
	}

	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      providers.RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	})
	s.inFlight = true
	provider, model := s.provider, s.model
	s.mu.Unlock()

	instruction := BuildInstruction(text, s.store.ReadyChunks(), s.baseInstruction)
	reply := s.responder.Send(ctx, provider, providers.Request{
		Model:             model,
		UserText:          text,
		SystemInstruction: instruction,
		History:           history,
		APIKey:            s.creds.Get(provider),
	})

	s.mu.Lock()
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      providers.RoleAssistant,
		Text:      reply,
		Timestamp: time.Now(),
	})
	s.inFlight = false
	s.mu.Unlock()

	return nil
}

// Messages returns a copy of the log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
