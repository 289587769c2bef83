package providers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAdapter struct {
	text  string
	err   error
	calls int
}

func (a *stubAdapter) Call(_ context.Context, _ Request) (string, error) {
	a.calls++
	return a.text, a.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Router_Send_ReturnsAdapterText(t *testing.T) {
	stub := &stubAdapter{text: "hello"}
	router := &Router{log: testLogger(), adapters: map[Provider]Adapter{OpenAI: stub}}

	out := router.Send(context.Background(), OpenAI, Request{Model: "gpt-4o-mini"})

	assert.Equal(t, "hello", out)
	assert.Equal(t, 1, stub.calls)
}

func Test_Router_Send_ConvertsErrorToText(t *testing.T) {
	stub := &stubAdapter{err: backendError(OpenAI, "boom")}
	router := &Router{log: testLogger(), adapters: map[Provider]Adapter{OpenAI: stub}}

	out := router.Send(context.Background(), OpenAI, Request{})

	assert.Equal(t, "Error connecting to OpenAI: boom", out)
}

func Test_Router_Send_NeverRetries(t *testing.T) {
	stub := &stubAdapter{err: backendError(Gemini, "transient")}
	router := &Router{log: testLogger(), adapters: map[Provider]Adapter{Gemini: stub}}

	_ = router.Send(context.Background(), Gemini, Request{})

	assert.Equal(t, 1, stub.calls)
}

func Test_Router_Send_UnknownProvider(t *testing.T) {
	router := NewRouter(RouterConfig{Log: testLogger()})

	out := router.Send(context.Background(), Provider("mystery"), Request{})

	assert.Equal(t, "Provider mystery is not supported.", out)
}

func Test_NewRouter_RegistersAllProviders(t *testing.T) {
	router := NewRouter(RouterConfig{Log: testLogger()})

	for _, p := range []Provider{Gemini, OpenAI, OpenRouter} {
		assert.Contains(t, router.adapters, p)
	}
}
