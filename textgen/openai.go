package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4"

	// layoutSystemPrompt primes the chat model before the user prompt.
	layoutSystemPrompt = "You are an expert interior designer specializing in home layout planning."
)

// OpenAIOptions configures an OpenAIGenerator.
type OpenAIOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	Logger      *zerolog.Logger
}

func (o *OpenAIOptions) normalize() {
	if o.Model == "" {
		o.Model = defaultOpenAIModel
	}
	if o.BaseURL == "" {
		o.BaseURL = defaultOpenAIBaseURL
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

// OpenAIGenerator calls the OpenAI chat completions API.
type OpenAIGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	client      *http.Client
	temperature float64
	maxTokens   int
	logger      zerolog.Logger
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAI builds an OpenAI-backed generator.
func NewOpenAI(opts OpenAIOptions) *OpenAIGenerator {
	opts.normalize()
	return &OpenAIGenerator{
		apiKey:      opts.APIKey,
		model:       opts.Model,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		client:      opts.HTTPClient,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      opts.Logger.With().Str("provider", ProviderOpenAI).Logger(),
	}
}

// Provider implements Generator.
func (g *OpenAIGenerator) Provider() string { return ProviderOpenAI }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", wrapErr(ProviderOpenAI, ErrMissingAPIKey)
	}

	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: layoutSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", wrapErr(ProviderOpenAI, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", wrapErr(ProviderOpenAI, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", wrapErr(ProviderOpenAI, fmt.Errorf("call api: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeOpenAIError(resp)
		g.logger.Warn().Int("status", resp.StatusCode).Err(apiErr).Msg("openai request failed")
		return "", wrapErr(ProviderOpenAI, apiErr)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", wrapErr(ProviderOpenAI, fmt.Errorf("decode response: %w", err))
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return "", wrapErr(ProviderOpenAI, ErrEmptyCompletion)
	}

	text := decoded.Choices[0].Message.Content
	g.logger.Debug().Str("model", g.model).Int("chars", len(text)).Msg("openai completion received")
	return text, nil
}

func decodeOpenAIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	if err != nil {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, envelope.Error.Message)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
