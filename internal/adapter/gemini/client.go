package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"travel-risk-orchestrator/internal/domain"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	serviceName           = "gemini"
	generationTemperature = 0.2
	maxOutputTokens       = 2048
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	ResponseSchema   map[string]any   `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Client sends generation requests to a generative-language endpoint. The
// model is opaque: this client carries the transport concerns (timeout via
// the HTTP client, rate limiting, circuit breaking) and nothing else.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient constructs a client for the endpoint and model name. endpoint is
// the full generateContent URL without the key query parameter.
func NewClient(endpoint, apiKey, model string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 1),
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        serviceName,
			MaxRequests: 2,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger,
	}
}

// Generate sends the instruction plus structured input and returns the raw
// model text. Missing or empty candidate text is a fatal error.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.LLMResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parts := []part{{Text: req.Instruction}}
	if req.Input != nil {
		inputJSON, err := json.Marshal(req.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal prompt input: %w", err)
		}
		parts = append(parts, part{Text: string(inputJSON)})
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     generationTemperature,
			MaxOutputTokens: maxOutputTokens,
		},
		ResponseSchema: req.ResponseSchema,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.NetworkError{
				Service:    serviceName,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(raw)),
			}
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	var parsed generateResponse
	if err := json.Unmarshal(result.([]byte), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	text := candidateText(parsed)
	if text == "" {
		return nil, &domain.EmptyModelResponseError{}
	}

	modelVersion := parsed.ModelVersion
	if modelVersion == "" {
		modelVersion = c.model
	}

	c.logger.Debug("generation_completed",
		slog.String("model", modelVersion),
		slog.Int64("duration_ms", time.Since(started).Milliseconds()),
		slog.Int("text_len", len(text)))

	return &domain.LLMResponse{Text: text, ModelVersion: modelVersion}, nil
}

// Version returns the configured model name.
func (c *Client) Version() string { return c.model }

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

var _ domain.LLMClient = (*Client)(nil)
