package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"layoutgen/domain"
)

const (
	defaultPollinationsBaseURL = "https://image.pollinations.ai/prompt"
	defaultPollinationsModel   = "flux"
	defaultImageSize           = 1024

	defaultSourceTimeout = 60 * time.Second

	drainLimit = 8 << 20
)

// PollinationsOptions configures a PollinationsSource.
type PollinationsOptions struct {
	BaseURL    string
	Model      string
	Width      int
	Height     int
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zerolog.Logger
}

func (o *PollinationsOptions) normalize() {
	if o.BaseURL == "" {
		o.BaseURL = defaultPollinationsBaseURL
	}
	if o.Model == "" {
		o.Model = defaultPollinationsModel
	}
	if o.Width <= 0 {
		o.Width = defaultImageSize
	}
	if o.Height <= 0 {
		o.Height = defaultImageSize
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultSourceTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Logger == nil {
		discard := zerolog.New(io.Discard)
		o.Logger = &discard
	}
}

// PollinationsSource generates images through the keyless pollinations.ai
// endpoint. The image lives at the request URL itself, so a successful
// probe makes the URL the candidate reference.
type PollinationsSource struct {
	baseURL string
	model   string
	width   int
	height  int
	client  *http.Client
	logger  zerolog.Logger
}

var _ Source = (*PollinationsSource)(nil)

// NewPollinationsSource builds the free-tier generator source.
func NewPollinationsSource(opts PollinationsOptions) *PollinationsSource {
	opts.normalize()
	return &PollinationsSource{
		baseURL: opts.BaseURL,
		model:   opts.Model,
		width:   opts.Width,
		height:  opts.Height,
		client:  opts.HTTPClient,
		logger:  opts.Logger.With().Str("source", SourcePollinations).Logger(),
	}
}

// Name implements Source.
func (s *PollinationsSource) Name() string { return SourcePollinations }

// Resolve implements Source. It issues the generation request to confirm the
// endpoint can serve the prompt, then hands back the stable URL.
func (s *PollinationsSource) Resolve(ctx context.Context, prompt string, _ domain.PreferenceSet) (Candidate, error) {
	endpoint := fmt.Sprintf("%s/%s?width=%d&height=%d&model=%s&enhance=true",
		s.baseURL, url.PathEscape(prompt), s.width, s.height, url.QueryEscape(s.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Candidate{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit)); err != nil {
		return Candidate{}, fmt.Errorf("read image: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Candidate{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	s.logger.Debug().Str("url", endpoint).Msg("pollinations image ready")
	return Candidate{Reference: endpoint, Origin: SourcePollinations}, nil
}
