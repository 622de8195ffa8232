// Command liftlog-mcp serves the LiftLog MCP tools over stdio, backed by a
// remote LiftLog server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/liftlog/internal/apiclient"
	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "optional config file with a client section")
	serverURL := flag.String("server", "", "LiftLog server URL (default client.base_url)")
	apiKey := flag.String("api-key", "", "API key for the server (default auth.api_key)")
	flag.Parse()

	// stdout carries the protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *serverURL == "" {
		*serverURL = cfg.Client.BaseURL
	}
	if *apiKey == "" {
		*apiKey = cfg.Auth.APIKey
	}
	fallback, err := builder.FallbackByName(cfg.Client.Fallback, log)
	if err != nil {
		log.Error("invalid fallback policy", "error", err)
		os.Exit(1)
	}

	if *serverURL == "" || *apiKey == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -server <URL> -api-key <key>\n")
		os.Exit(1)
	}

	client := apiclient.New(strings.TrimRight(*serverURL, "/"))
	sess, err := client.Login(context.Background(), *apiKey)
	if err != nil {
		log.Error("login failed", "error", err)
		os.Exit(1)
	}
	log.Info("logged in", "user", sess.User.Login, "server", *serverURL)

	s := mcp.New(mcp.Fixed(mcp.WithFallback(client, fallback)), cfg.Estimate.Policy(), Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server stopped", "error", err)
		os.Exit(1)
	}
}
