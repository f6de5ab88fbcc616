package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"layoutgen/domain"
)

const (
	defaultLexicaBaseURL = "https://lexica.art/api/v1"
	defaultLexicaTimeout = 15 * time.Second
)

// LexicaOptions configures a LexicaSource.
type LexicaOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zerolog.Logger
}

func (o *LexicaOptions) normalize() {
	if o.BaseURL == "" {
		o.BaseURL = defaultLexicaBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultLexicaTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Logger == nil {
		discard := zerolog.New(io.Discard)
		o.Logger = &discard
	}
}

// LexicaSource searches an existing image index instead of generating. It is
// keyless and fast, which makes it a cheap step between generators.
type LexicaSource struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

var _ Source = (*LexicaSource)(nil)

// NewLexicaSource builds the search-backed source.
func NewLexicaSource(opts LexicaOptions) *LexicaSource {
	opts.normalize()
	return &LexicaSource{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.HTTPClient,
		logger:  opts.Logger.With().Str("source", SourceLexica).Logger(),
	}
}

// Name implements Source.
func (s *LexicaSource) Name() string { return SourceLexica }

type lexicaResponse struct {
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

// Resolve implements Source.
func (s *LexicaSource) Resolve(ctx context.Context, prompt string, _ domain.PreferenceSet) (Candidate, error) {
	endpoint := s.baseURL + "/search?q=" + url.QueryEscape(prompt)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Candidate{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Candidate{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errorSnippet(resp.Body))
	}

	var decoded lexicaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Candidate{}, fmt.Errorf("decode response: %w", err)
	}
	for _, img := range decoded.Images {
		if img.Src != "" {
			s.logger.Debug().Str("url", img.Src).Msg("lexica match found")
			return Candidate{Reference: img.Src, Origin: SourceLexica}, nil
		}
	}
	return Candidate{}, errors.New("no matching images")
}
