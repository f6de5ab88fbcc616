package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"layoutgen/domain"
)

const (
	defaultDallEBaseURL = "https://api.openai.com/v1"
	defaultDallEModel   = "dall-e-3"
	defaultDallESize    = "1024x1024"
	defaultDallEQuality = "standard"
)

// DallEOptions configures a DallESource.
type DallEOptions struct {
	APIKey     string
	Model      string
	Size       string
	Quality    string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zerolog.Logger
}

func (o *DallEOptions) normalize() {
	if o.Model == "" {
		o.Model = defaultDallEModel
	}
	if o.Size == "" {
		o.Size = defaultDallESize
	}
	if o.Quality == "" {
		o.Quality = defaultDallEQuality
	}
	if o.BaseURL == "" {
		o.BaseURL = defaultDallEBaseURL
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

// DallESource generates images through the OpenAI images API. It sits late
// in the cascade because every call costs money.
type DallESource struct {
	apiKey  string
	model   string
	size    string
	quality string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

var _ Source = (*DallESource)(nil)

// NewDallESource builds the paid generator source.
func NewDallESource(opts DallEOptions) *DallESource {
	opts.normalize()
	return &DallESource{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		size:    opts.Size,
		quality: opts.Quality,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.HTTPClient,
		logger:  opts.Logger.With().Str("source", SourceDallE).Logger(),
	}
}

// Name implements Source.
func (s *DallESource) Name() string { return SourceDallE }

type dalleRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type dalleResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Resolve implements Source.
func (s *DallESource) Resolve(ctx context.Context, prompt string, _ domain.PreferenceSet) (Candidate, error) {
	if s.apiKey == "" {
		return Candidate{}, fmt.Errorf("%w: openai api key not set", ErrSourceUnavailable)
	}

	payload := dalleRequest{Model: s.model, Prompt: prompt, N: 1, Size: s.size, Quality: s.quality}
	body, err := json.Marshal(payload)
	if err != nil {
		return Candidate{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return Candidate{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Candidate{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errorSnippet(resp.Body))
	}

	var decoded dalleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Candidate{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Data) == 0 || decoded.Data[0].URL == "" {
		return Candidate{}, errors.New("response carried no image url")
	}

	s.logger.Debug().Str("model", s.model).Msg("dalle image generated")
	return Candidate{Reference: decoded.Data[0].URL, Origin: SourceDallE}, nil
}
