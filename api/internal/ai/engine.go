// Package ai answers free-text questions through a remote text-completion
// provider and reduces the reply to a single word.
package ai

import (
	"context"
	"fmt"
	"time"

	"bfhl/api/internal/config"
)

// Engine is one provider binding. Ask returns the raw text of the reply;
// unparsable replies come back as "" with a nil error.
type Engine interface {
	Name() string
	GetModel() string
	Ask(ctx context.Context, question string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(p config.Provider) (Engine, error) {
	var eng Engine
	switch p {
	case config.ProviderOpenAI:
		eng = e.OpenAI
	case config.ProviderGemini:
		eng = e.Gemini
	default:
		return nil, fmt.Errorf("unknown ai provider %q; use 'gemini' or 'openai'", p)
	}
	if eng == nil {
		return nil, fmt.Errorf("ai provider %q has no engine", p)
	}
	return eng, nil
}

// Gateway is bound to one engine for the lifetime of the process.
type Gateway struct {
	engine  Engine
	timeout time.Duration
}

func NewGateway(engine Engine, timeout time.Duration) *Gateway {
	return &Gateway{engine: engine, timeout: timeout}
}

func (g *Gateway) Engine() Engine { return g.engine }

// Ask sends question to the engine and returns the first word of the reply,
// possibly "". The call is bounded by the gateway timeout.
func (g *Gateway) Ask(ctx context.Context, question string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	text, err := g.engine.Ask(ctx, question)
	if err != nil {
		return "", err
	}
	return FirstWord(text), nil
}
