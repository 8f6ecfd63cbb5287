package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/inpact/internal/platform/branding"
	"github.com/louisbranch/inpact/internal/platform/timeouts"
	"github.com/louisbranch/inpact/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverVersion = "0.1.0"

// Transport kinds.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects the transport.
type Config struct {
	Transport string
	HTTPAddr  string
}

// Dependencies carries the clients behind the tools. A nil client makes its
// tool return an error.
type Dependencies struct {
	YouTube domain.ChannelLookup
	Refiner domain.Refiner
}

// Server wraps the MCP server with its registered tools.
type Server struct {
	mcpServer *mcp.Server
}

// New registers every onboarding tool.
func New(deps Dependencies) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName(), Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.ChannelLookupTool(), domain.ChannelLookupHandler(deps.YouTube))
	mcp.AddTool(mcpServer, domain.RefineBioTool(), domain.RefineBioHandler(deps.Refiner))
	mcp.AddTool(mcpServer, domain.ValidateCreatorStepTool(), domain.ValidateCreatorStepHandler())
	return &Server{mcpServer: mcpServer}
}

func serverName() string {
	return strings.ToLower(branding.AppName) + "-onboarding"
}

// Run serves the tools on the configured transport until ctx ends.
func Run(ctx context.Context, cfg Config, deps Dependencies) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server := New(deps)
	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Handler exposes the server over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcpServer }, nil)
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = "localhost:8081"
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("mcp: listening addr=%s", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP http: %w", err)
	}
}
