package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"

	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 1500

	errBodyLimit = 32 << 10
)

// GeminiOptions configures a GeminiGenerator. Zero values fall back to
// sensible defaults; only APIKey has no default.
type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	Logger      *zerolog.Logger
}

func (o *GeminiOptions) normalize() {
	if o.Model == "" {
		o.Model = defaultGeminiModel
	}
	if o.BaseURL == "" {
		o.BaseURL = defaultGeminiBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.Temperature <= 0 {
		o.Temperature = defaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	if o.Logger == nil {
		discard := zerolog.New(io.Discard)
		o.Logger = &discard
	}
}

// GeminiGenerator calls the Google Generative Language API.
type GeminiGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	client      *http.Client
	temperature float64
	maxTokens   int
	logger      zerolog.Logger
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGemini builds a Gemini-backed generator. A missing API key is not an
// error here; Generate reports ErrMissingAPIKey instead, so construction
// stays infallible.
func NewGemini(opts GeminiOptions) *GeminiGenerator {
	opts.normalize()
	return &GeminiGenerator{
		apiKey:      opts.APIKey,
		model:       opts.Model,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		client:      opts.HTTPClient,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      opts.Logger.With().Str("provider", ProviderGemini).Logger(),
	}
}

// Provider implements Generator.
func (g *GeminiGenerator) Provider() string { return ProviderGemini }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", wrapErr(ProviderGemini, ErrMissingAPIKey)
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", wrapErr(ProviderGemini, fmt.Errorf("encode request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", wrapErr(ProviderGemini, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", wrapErr(ProviderGemini, fmt.Errorf("call api: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeGeminiError(resp)
		g.logger.Warn().Int("status", resp.StatusCode).Err(apiErr).Msg("gemini request failed")
		return "", wrapErr(ProviderGemini, apiErr)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", wrapErr(ProviderGemini, fmt.Errorf("decode response: %w", err))
	}

	text := joinGeminiParts(decoded)
	if strings.TrimSpace(text) == "" {
		return "", wrapErr(ProviderGemini, ErrEmptyCompletion)
	}
	g.logger.Debug().Str("model", g.model).Int("chars", len(text)).Msg("gemini completion received")
	return text, nil
}

func joinGeminiParts(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func decodeGeminiError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	if err != nil {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, envelope.Error.Message)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
