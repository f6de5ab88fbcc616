package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"layoutgen/domain"
)

const (
	defaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models"

	defaultHFRetryInterval = 3 * time.Second
	defaultHFMaxRetries    = 2

	errSnippetLimit = 32 << 10
)

// defaultHFModels is the inference ladder, strongest checkpoint first. A
// permanent failure on one model moves the source down the ladder.
var defaultHFModels = []string{
	"stabilityai/stable-diffusion-xl-base-1.0",
	"runwayml/stable-diffusion-v1-5",
	"stabilityai/stable-diffusion-2-1",
	"CompVis/stable-diffusion-v1-4",
}

// errModelLoading marks the hosted model cold-start response. It is the only
// retryable failure; everything else moves on immediately.
var errModelLoading = errors.New("model is loading")

// HuggingFaceOptions configures a HuggingFaceSource.
type HuggingFaceOptions struct {
	Token      string
	Models     []string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	// RetryInterval spaces retries while a model warms up.
	RetryInterval time.Duration
	MaxRetries    uint64
	Logger        *zerolog.Logger
}

func (o *HuggingFaceOptions) normalize() {
	if len(o.Models) == 0 {
		o.Models = defaultHFModels
	}
	if o.BaseURL == "" {
		o.BaseURL = defaultHuggingFaceBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultSourceTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = defaultHFRetryInterval
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = defaultHFMaxRetries
	}
	if o.Logger == nil {
		discard := zerolog.New(io.Discard)
		o.Logger = &discard
	}
}

// HuggingFaceSource runs text-to-image inference against hosted models and
// inlines the produced image as a base64 data URI, so the candidate stays
// usable without any follow-up fetch.
type HuggingFaceSource struct {
	token         string
	models        []string
	baseURL       string
	client        *http.Client
	retryInterval time.Duration
	maxRetries    uint64
	logger        zerolog.Logger
}

var _ Source = (*HuggingFaceSource)(nil)

// NewHuggingFaceSource builds the hosted inference source.
func NewHuggingFaceSource(opts HuggingFaceOptions) *HuggingFaceSource {
	opts.normalize()
	return &HuggingFaceSource{
		token:         opts.Token,
		models:        opts.Models,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		client:        opts.HTTPClient,
		retryInterval: opts.RetryInterval,
		maxRetries:    opts.MaxRetries,
		logger:        opts.Logger.With().Str("source", SourceHuggingFace).Logger(),
	}
}

// Name implements Source.
func (s *HuggingFaceSource) Name() string { return SourceHuggingFace }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// Resolve implements Source. Without a token the source reports itself
// unavailable rather than burning a cascade slot on guaranteed 401s.
func (s *HuggingFaceSource) Resolve(ctx context.Context, prompt string, _ domain.PreferenceSet) (Candidate, error) {
	if s.token == "" {
		return Candidate{}, fmt.Errorf("%w: hugging face token not set", ErrSourceUnavailable)
	}

	var lastErr error
	for _, model := range s.models {
		candidate, err := s.generate(ctx, model, prompt)
		if err == nil {
			return candidate, nil
		}
		lastErr = err
		s.logger.Debug().Err(err).Str("model", model).Msg("hugging face model failed, trying next")
	}
	return Candidate{}, fmt.Errorf("all models failed: %w", lastErr)
}

func (s *HuggingFaceSource) generate(ctx context.Context, model, prompt string) (Candidate, error) {
	var candidate Candidate
	operation := func() error {
		c, err := s.requestOnce(ctx, model, prompt)
		if err != nil {
			if errors.Is(err, errModelLoading) {
				return err
			}
			return backoff.Permanent(err)
		}
		candidate = c
		return nil
	}
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return Candidate{}, err
	}
	return candidate, nil
}

func (s *HuggingFaceSource) requestOnce(ctx context.Context, model, prompt string) (Candidate, error) {
	payload := hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{NumInferenceSteps: 25, GuidanceScale: 7.5},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Candidate{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return Candidate{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errSnippetLimit))
		return Candidate{}, errModelLoading
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Candidate{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errorSnippet(resp.Body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, drainLimit))
	if err != nil {
		return Candidate{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return Candidate{}, errors.New("empty image body")
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/jpeg"
	}
	return Candidate{Reference: dataURI(mime, data), Origin: SourceHuggingFace}, nil
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func errorSnippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, errSnippetLimit))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
