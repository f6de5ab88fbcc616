package imagegen

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"layoutgen/domain"
	"layoutgen/internal/curated"
)

// CuratedOptions configures a CuratedSource. Now pins the rotation over
// multi-photo cells; nil means wall-clock time.
type CuratedOptions struct {
	Now    func() time.Time
	Logger *zerolog.Logger
}

// CuratedSource answers from an embedded photo catalog keyed by canonical
// room and style. It performs no I/O and never fails, which is what lets the
// cascade promise a candidate for every layout.
type CuratedSource struct {
	catalog *curated.Catalog
	logger  zerolog.Logger
}

var _ Source = (*CuratedSource)(nil)

// NewCuratedSource builds the terminal source.
func NewCuratedSource(opts CuratedOptions) *CuratedSource {
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &CuratedSource{
		catalog: curated.New(curated.Options{Now: opts.Now}),
		logger:  logger.With().Str("source", SourceCurated).Logger(),
	}
}

// Name implements Source.
func (s *CuratedSource) Name() string { return SourceCurated }

// Resolve implements Source. The prompt is ignored; selection runs on the
// normalized preference pair alone.
func (s *CuratedSource) Resolve(_ context.Context, _ string, prefs domain.PreferenceSet) (Candidate, error) {
	room := domain.NormalizeRoom(prefs.RoomType)
	style := domain.NormalizeStyle(prefs.DesignStyle)
	ref := s.catalog.Lookup(room, style)
	s.logger.Debug().Str("room", string(room)).Str("style", string(style)).Msg("curated image selected")
	return Candidate{Reference: ref, Origin: SourceCurated}, nil
}
