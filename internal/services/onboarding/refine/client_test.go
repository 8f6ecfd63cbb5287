package refine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestRefineEmptyTextIssuesNoRequest(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request: %v", req.URL)
		return nil, nil
	})}})

	for _, text := range []string{"", "   \n\t"} {
		got, err := client.Refine(context.Background(), text)
		if err != nil {
			t.Fatalf("Refine(%q): %v", text, err)
		}
		if got != text {
			t.Fatalf("Refine(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestRefineSendsFixedPayload(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	var capturedURL string
	client := NewClient(Config{
		URL:    "https://gen.example.com/v1/models/m:generateContent",
		APIKey: "secret",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			capturedURL = req.URL.String()
			if req.Method != http.MethodPost {
				t.Fatalf("method = %s, want POST", req.Method)
			}
			if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			return response(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"A polished bio."}]}}]}`), nil
		})},
	})

	got, err := client.Refine(context.Background(), "i make videos")
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if got != "A polished bio." {
		t.Fatalf("Refine() = %q", got)
	}
	if !strings.Contains(capturedURL, "key=secret") {
		t.Fatalf("url = %q, want api key", capturedURL)
	}
	contents := captured["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if text := parts[0].(map[string]any)["text"]; text != "i make videos" {
		t.Fatalf("prompt = %v, want raw text", text)
	}
	config := captured["generationConfig"].(map[string]any)
	if config["temperature"] != 0.7 || config["maxOutputTokens"] != float64(2048) {
		t.Fatalf("generationConfig = %v", config)
	}
}

func TestRefineFailuresKeepOriginalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reply     func(*http.Request) (*http.Response, error)
		transport bool
	}{
		{name: "transport", reply: func(*http.Request) (*http.Response, error) { return nil, errors.New("connection reset") }, transport: true},
		{name: "malformed", reply: func(*http.Request) (*http.Response, error) { return response(http.StatusOK, "<html>"), nil }, transport: true},
		{name: "status", reply: func(*http.Request) (*http.Response, error) {
			return response(http.StatusTooManyRequests, `{"error":{}}`), nil
		}},
		{name: "no candidate", reply: func(*http.Request) (*http.Response, error) { return response(http.StatusOK, `{"candidates":[]}`), nil }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := NewClient(Config{HTTPClient: &http.Client{Transport: roundTripFunc(tc.reply)}})
			got, err := client.Refine(context.Background(), "original")
			if err == nil {
				t.Fatal("expected error")
			}
			if got != "original" {
				t.Fatalf("Refine() = %q, want original text", got)
			}
			if IsTransportFailure(err) != tc.transport {
				t.Fatalf("IsTransportFailure() = %v, want %v", IsTransportFailure(err), tc.transport)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewClient(Config{})
	if client.cfg.URL != DefaultURL {
		t.Fatalf("url = %q, want default", client.cfg.URL)
	}
	if client.cfg.HTTPClient == nil {
		t.Fatal("expected non-nil HTTP client")
	}
	if IsTransportFailure(nil) {
		t.Fatal("nil error is not a transport failure")
	}
}
