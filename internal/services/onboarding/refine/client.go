// Package refine rewrites free-text bios through a remote text generation
// endpoint.
package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
	platformotel "github.com/louisbranch/inpact/internal/platform/otel"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultURL is the generateContent endpoint of the default model.
const DefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash-lite:generateContent"

// Fixed generation parameters. The raw text is the whole prompt.
const (
	Temperature     = 0.7
	MaxOutputTokens = 2048
)

const maxResponseBytes = 1 << 20

// ErrNoCandidate indicates the endpoint answered without refined text.
var ErrNoCandidate = apperrors.New(apperrors.CodeRefineFailed, "refinement returned no candidate")

// StatusError reports a non-2xx response from the generation endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("refine request status %d: %s", e.StatusCode, e.Body)
}

// Config configures the generation endpoint and HTTP behavior.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// Client calls the generation endpoint.
type Client struct {
	cfg    Config
	tracer trace.Tracer
}

// NewClient builds a refinement client.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	return &Client{cfg: cfg, tracer: platformotel.Tracer("refine")}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Refine returns the rewritten text. Empty or whitespace-only text is
// returned unchanged without a request. On every error the returned string is
// the original text, so callers can keep it as-is.
func (c *Client) Refine(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctx, span := c.tracer.Start(ctx, "refine.Refine", trace.WithAttributes(
		attribute.Int("refine.input_bytes", len(text)),
	))
	defer span.End()

	refined, err := c.refine(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return text, err
	}
	return refined, nil
}

func (c *Client) refine(ctx context.Context, text string) (string, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return "", err
	}
	requestBody, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{Temperature: Temperature, MaxOutputTokens: MaxOutputTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal refine request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build refine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refine request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read refine response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 4096 {
			snippet = snippet[:4096]
		}
		return "", &StatusError{StatusCode: res.StatusCode, Body: snippet}
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("refine response is not valid json")
	}
	refined := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if refined == "" {
		return "", ErrNoCandidate
	}
	return refined, nil
}

func (c *Client) endpoint() (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(c.cfg.URL))
	if err != nil {
		return "", fmt.Errorf("parse refine url: %w", err)
	}
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		query := parsed.Query()
		query.Set("key", key)
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

// IsTransportFailure reports whether err happened before a usable response
// arrived. Upstream status failures and empty candidates are not transport
// failures: the proxy answers those with the original text.
func IsTransportFailure(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return false
	}
	return !errors.Is(err, ErrNoCandidate)
}
