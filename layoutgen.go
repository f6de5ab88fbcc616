// Package layoutgen turns interior design preferences into a set of layout
// ideas, each paired with an image reference. One text provider writes the
// layouts; a cascade of image sources illustrates them, falling back to a
// curated catalog so every layout ships with a picture.
package layoutgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"layoutgen/domain"
	"layoutgen/imagegen"
	"layoutgen/internal/prompt"
	"layoutgen/textgen"
)

const (
	// DefaultLayoutCount is used when Options leaves LayoutCount unset.
	DefaultLayoutCount = 3
	// MaxLayoutCount caps a single generation request.
	MaxLayoutCount = 5

	// titleRuneLimit bounds titles lifted from layout descriptions.
	titleRuneLimit = 80
)

var (
	// ErrNoLayouts reports a completion that parsed to zero layouts.
	ErrNoLayouts = errors.New("completion contained no layouts")
	// ErrNoGenerator reports a pipeline built without a text generator.
	ErrNoGenerator = errors.New("no text generator configured")
)

// Options tunes a Pipeline. The zero value is usable: three layouts, uuid
// ids, wall-clock timestamps, silent logging.
type Options struct {
	// LayoutCount is clamped to 1..MaxLayoutCount; zero means the default.
	LayoutCount int
	Logger      *zerolog.Logger
	// Now stamps results; tests pin it.
	Now func() time.Time
	// NewID mints result ids; tests pin it.
	NewID func() string
}

// Pipeline is the generation entry point. It is stateless after construction
// and safe for concurrent Generate calls.
type Pipeline struct {
	text   textgen.Generator
	images *imagegen.Cascade
	count  int
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

// New assembles a pipeline around one text generator and an image cascade.
// A nil cascade gets the curated-only default, so images still resolve; a
// nil generator is reported by Generate, keeping construction infallible.
func New(text textgen.Generator, images *imagegen.Cascade, opts Options) *Pipeline {
	count := opts.LayoutCount
	if count <= 0 {
		count = DefaultLayoutCount
	}
	if count > MaxLayoutCount {
		count = MaxLayoutCount
	}

	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	if images == nil {
		images = imagegen.NewCascade(imagegen.CascadeOptions{Logger: &logger, Now: opts.Now})
	}

	return &Pipeline{
		text:   text,
		images: images,
		count:  count,
		logger: logger.With().Str("component", "layout_pipeline").Logger(),
		now:    now,
		newID:  newID,
	}
}

// Generate produces up to LayoutCount layout ideas for the given preferences.
// Text provider failures abort the request; image failures never do, because
// the cascade bottoms out in the curated catalog.
func (p *Pipeline) Generate(ctx context.Context, prefs domain.PreferenceSet) ([]domain.GenerationResult, error) {
	if p.text == nil {
		return nil, ErrNoGenerator
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	layoutPrompt := prompt.BuildLayoutPrompt(prefs, p.count)
	completion, err := p.text.Generate(ctx, layoutPrompt)
	if err != nil {
		p.logger.Error().Err(err).Str("provider", p.text.Provider()).Msg("text generation failed")
		return nil, err
	}

	layouts := prompt.ParseLayouts(completion)
	if len(layouts) == 0 {
		return nil, ErrNoLayouts
	}
	if len(layouts) > p.count {
		layouts = layouts[:p.count]
	}

	images := make([]imagegen.Candidate, len(layouts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxLayoutCount)
	for i, description := range layouts {
		i, description := i, description
		g.Go(func() error {
			imagePrompt := prompt.BuildImagePrompt(description, prefs)
			images[i] = p.images.Resolve(gctx, imagePrompt, prefs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]domain.GenerationResult, len(layouts))
	for i, description := range layouts {
		results[i] = domain.GenerationResult{
			ID:                p.newID(),
			Title:             deriveTitle(description, prefs, i+1),
			Description:       description,
			ImageReference:    images[i].Reference,
			SourcePreferences: prefs,
			GeneratedAt:       p.now(),
			ProviderUsed:      p.text.Provider(),
		}
	}

	p.logger.Info().
		Int("layouts", len(results)).
		Str("provider", p.text.Provider()).
		Msg("layout generation complete")
	return results, nil
}

// deriveTitle lifts a short title from the description's first line, clamped
// to titleRuneLimit runes. Descriptions whose every line vanishes under
// trimming get a synthesized "<Style> <Room> Layout N" fallback.
func deriveTitle(description string, prefs domain.PreferenceSet, ordinal int) string {
	for _, line := range strings.Split(description, "\n") {
		line = strings.Trim(line, "*#->_ \t")
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > titleRuneLimit {
			runes := []rune(line)
			line = strings.TrimSpace(string(runes[:titleRuneLimit]))
		}
		return line
	}
	base := fmt.Sprintf("%s %s layout %d", prefs.DesignStyle, prefs.RoomType, ordinal)
	return cases.Title(language.Und).String(strings.ToLower(base))
}
