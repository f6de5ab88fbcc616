package imagegen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"layoutgen/domain"
)

// CascadeOptions configures a Cascade. Sources run in slice order; the
// curated terminal is appended implicitly and is not listed here.
type CascadeOptions struct {
	Sources []Source
	Logger  *zerolog.Logger
	// Now feeds the curated terminal's rotation.
	Now func() time.Time
}

// Cascade tries sources in order and falls through to a curated catalog.
// Source failures are absorbed and logged, never surfaced to callers.
type Cascade struct {
	sources  []Source
	terminal *CuratedSource
	logger   zerolog.Logger
}

// NewCascade builds a cascade over the given sources. The curated terminal
// is always constructed, so Resolve is total even with no sources at all.
func NewCascade(opts CascadeOptions) *Cascade {
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	terminal := NewCuratedSource(CuratedOptions{Now: opts.Now, Logger: &logger})
	return &Cascade{
		sources:  opts.Sources,
		terminal: terminal,
		logger:   logger.With().Str("component", "image_cascade").Logger(),
	}
}

// Resolve walks the cascade and returns the first usable candidate. It never
// fails: when every source errors or returns an empty reference, the curated
// terminal answers from its embedded catalog.
func (c *Cascade) Resolve(ctx context.Context, prompt string, prefs domain.PreferenceSet) Candidate {
	for _, src := range c.sources {
		candidate, err := src.Resolve(ctx, prompt, prefs)
		if err != nil {
			if errors.Is(err, ErrSourceUnavailable) {
				c.logger.Debug().Str("source", src.Name()).Msg("image source not configured, skipping")
			} else {
				c.logger.Warn().Err(err).Str("source", src.Name()).Msg("image source failed, trying next")
			}
			continue
		}
		if candidate.Reference == "" {
			c.logger.Warn().Str("source", src.Name()).Msg("image source returned empty reference, trying next")
			continue
		}
		return candidate
	}
	candidate, _ := c.terminal.Resolve(ctx, prompt, prefs)
	return candidate
}

// Config gathers the knobs shared by the stock network sources.
type Config struct {
	HTTPClient       *http.Client
	Logger           *zerolog.Logger
	HuggingFaceToken string
	OpenAIAPIKey     string
}

// DefaultSources builds the stock source order: the free generator first,
// then hosted inference, then search, then the paid generator. Callers pass
// the result to NewCascade, reordered or filtered as they see fit.
func DefaultSources(cfg Config) []Source {
	return []Source{
		NewPollinationsSource(PollinationsOptions{HTTPClient: cfg.HTTPClient, Logger: cfg.Logger}),
		NewHuggingFaceSource(HuggingFaceOptions{Token: cfg.HuggingFaceToken, HTTPClient: cfg.HTTPClient, Logger: cfg.Logger}),
		NewLexicaSource(LexicaOptions{HTTPClient: cfg.HTTPClient, Logger: cfg.Logger}),
		NewDallESource(DallEOptions{APIKey: cfg.OpenAIAPIKey, HTTPClient: cfg.HTTPClient, Logger: cfg.Logger}),
	}
}
