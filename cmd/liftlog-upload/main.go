package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/claude/liftlog/internal/apiclient"
	"github.com/claude/liftlog/internal/builder"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "optional config file with a client section")
	serverURL := flag.String("server", "", "LiftLog server URL, e.g. https://liftlog.tail1234.ts.net (default client.base_url)")
	apiKey := flag.String("api-key", "", "API key for the server (default auth.api_key)")
	path := flag.String("path", "", "directory of YAML plans and Alpha Progression CSV exports")
	dryRun := flag.Bool("dry-run", false, "parse and validate but don't send to server")
	stateDir := flag.String("state-dir", "", "state directory (default ~/.liftlog-upload)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlog-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

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

	if *path == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-upload -server <URL> -api-key <key> -path <dir> [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if info, err := os.Stat(*path); err != nil || !info.IsDir() {
		log.Error("import directory not found", "path", *path)
		os.Exit(1)
	}

	if *stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		*stateDir = filepath.Join(home, ".liftlog-upload")
	}
	state, err := upload.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var persister builder.Persister
	if *dryRun {
		log.Info("DRY RUN mode: files will be parsed and validated but not sent")
	} else {
		if *serverURL == "" || *apiKey == "" {
			fmt.Fprintf(os.Stderr, "Error: -server and -api-key are required (or use -dry-run)\n")
			os.Exit(1)
		}
		client := apiclient.New(strings.TrimRight(*serverURL, "/"))
		sess, err := client.Login(ctx, *apiKey)
		if err != nil {
			log.Error("login failed", "error", err)
			os.Exit(1)
		}
		log.Info("logged in", "user", sess.User.Login)
		persister = client
	}

	stats, err := upload.New(persister, state, *path, *dryRun, log).Run(ctx)
	printStats(stats)
	if err != nil {
		log.Error("upload failed", "error", err)
		os.Exit(1)
	}
	log.Info("upload complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files imported:   %d\n", stats.FilesImported)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Workouts sent:    %d\n", stats.WorkoutsSent)
	fmt.Printf("  Invalid workouts: %d\n", stats.WorkoutsInvalid)
	fmt.Println()
}
