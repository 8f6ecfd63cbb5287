package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/inpact/internal/services/onboarding/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
)

type stubLookup struct{}

func (stubLookup) LookupURL(context.Context, string) (youtube.Channel, error) {
	return youtube.Channel{ID: "UC1", Title: "Ada Codes", SubscriberCount: "1200"}, nil
}

type upperRefiner struct{}

func (upperRefiner) Refine(_ context.Context, text string) (string, error) {
	return strings.ToUpper(text), nil
}

func connectClient(t *testing.T, deps Dependencies) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- New(deps).serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want *mcp.TextContent", res.Content[0])
	}
	return text.Text
}

func TestServerListsOnboardingTools(t *testing.T) {
	t.Parallel()

	session := connectClient(t, Dependencies{})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	got := map[string]bool{}
	for _, tool := range res.Tools {
		got[tool.Name] = true
	}
	for _, name := range []string{"youtube_channel_lookup", "refine_bio", "validate_creator_step"} {
		if !got[name] {
			t.Fatalf("tool %q not registered: %v", name, got)
		}
	}
}

func TestServerCallsTools(t *testing.T) {
	t.Parallel()

	session := connectClient(t, Dependencies{YouTube: stubLookup{}, Refiner: upperRefiner{}})

	res := callTool(t, session, "youtube_channel_lookup", map[string]any{"url": "https://www.youtube.com/@ada"})
	if res.IsError {
		t.Fatalf("lookup IsError = true: %s", resultText(t, res))
	}
	body := resultText(t, res)
	if got := gjson.Get(body, "channel_id").String(); got != "UC1" {
		t.Fatalf("channel_id = %q, want %q", got, "UC1")
	}

	res = callTool(t, session, "refine_bio", map[string]any{"text": "hello"})
	body = resultText(t, res)
	if got := gjson.Get(body, "refined").String(); got != "HELLO" {
		t.Fatalf("refined = %q, want %q", got, "HELLO")
	}
	if !gjson.Get(body, "changed").Bool() {
		t.Fatal("changed = false, want true")
	}

	res = callTool(t, session, "validate_creator_step", map[string]any{"step": "platforms"})
	body = resultText(t, res)
	if gjson.Get(body, "valid").Bool() {
		t.Fatal("valid = true, want false")
	}
	if got := gjson.Get(body, "errors.platforms").String(); got != "Select at least one platform." {
		t.Fatalf("errors.platforms = %q", got)
	}
}

func TestServerReportsToolErrors(t *testing.T) {
	t.Parallel()

	session := connectClient(t, Dependencies{})
	res := callTool(t, session, "youtube_channel_lookup", map[string]any{"url": "https://www.youtube.com/@ada"})
	if !res.IsError {
		t.Fatal("IsError = false, want true without a lookup client")
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{Transport: "websocket"}, Dependencies{})
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("Run() error = %v, want not supported", err)
	}
}

func TestServeWithoutServer(t *testing.T) {
	t.Parallel()

	var s *Server
	if err := s.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}
}
