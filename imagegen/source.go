// Package imagegen resolves layout descriptions into displayable image
// references. Sources are tried in order until one produces a usable
// candidate; a curated catalog sits at the end of every cascade so
// resolution itself never fails.
package imagegen

import (
	"context"
	"errors"

	"layoutgen/domain"
)

// Source name constants, reported as the Origin of resolved candidates.
const (
	SourcePollinations = "pollinations"
	SourceHuggingFace  = "huggingface"
	SourceLexica       = "lexica"
	SourceDallE        = "dalle"
	SourceCurated      = "curated"
)

// ErrSourceUnavailable marks a source that cannot serve at all, typically
// because it was built without credentials. The cascade skips it quietly
// instead of logging a failure.
var ErrSourceUnavailable = errors.New("image source unavailable")

// Candidate is an image reference produced by a source. Reference is either
// an https URL or a base64 data URI; Origin names the source that made it.
type Candidate struct {
	Reference string `json:"reference"`
	Origin    string `json:"origin"`
}

// Source produces an image candidate for a layout. The prompt carries the
// rendered image description; prefs carry the raw room and style inputs for
// sources that select rather than generate.
type Source interface {
	Resolve(ctx context.Context, prompt string, prefs domain.PreferenceSet) (Candidate, error)
	Name() string
}
