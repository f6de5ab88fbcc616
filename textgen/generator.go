// Package textgen dispatches layout prompts to a text generation provider.
// Exactly one provider serves a call; switching or retrying across providers
// is the caller's policy, never this package's.
package textgen

import (
	"context"
	"errors"
	"fmt"
)

// Provider identifiers reported on generation results.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	// ErrMissingAPIKey marks a generator invoked without credentials.
	ErrMissingAPIKey = errors.New("api key is required")
	// ErrEmptyCompletion marks a provider response without usable text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Generator produces layout text from a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// Error wraps a provider failure with the provider identifier so callers can
// report which backend failed without parsing message text.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: text generation: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(provider string, err error) error {
	return &Error{Provider: provider, Err: err}
}
