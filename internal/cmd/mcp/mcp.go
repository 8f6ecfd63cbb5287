// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/inpact/internal/platform/cmd"
	mcpservice "github.com/louisbranch/inpact/internal/services/mcp/service"
	onboardingapp "github.com/louisbranch/inpact/internal/services/onboarding/app"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr  string `env:"INPACT_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"INPACT_MCP_TRANSPORT" envDefault:"stdio"`

	YouTubeAPIKey  string `env:"INPACT_YOUTUBE_API_KEY"`
	YouTubeBaseURL string `env:"INPACT_YOUTUBE_BASE_URL"`
	RefineAPIKey   string `env:"INPACT_GEMINI_API_KEY"`
	RefineURL      string `env:"INPACT_GEMINI_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
		fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dependencies builds the tool clients from cfg.
func (c Config) Dependencies() mcpservice.Dependencies {
	clients := onboardingapp.ClientConfig{
		YouTubeAPIKey:  c.YouTubeAPIKey,
		YouTubeBaseURL: c.YouTubeBaseURL,
		RefineAPIKey:   c.RefineAPIKey,
		RefineURL:      c.RefineURL,
	}
	return mcpservice.Dependencies{
		YouTube: onboardingapp.NewYouTube(clients),
		Refiner: onboardingapp.NewRefiner(clients),
	}
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{Transport: cfg.Transport, HTTPAddr: cfg.HTTPAddr}, cfg.Dependencies())
	})
}
