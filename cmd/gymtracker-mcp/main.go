package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/gymtracker/internal/config"
	"github.com/claude/gymtracker/internal/logging"
	gymmcp "github.com/claude/gymtracker/internal/mcp"
	"github.com/claude/gymtracker/internal/storage"
	"github.com/claude/gymtracker/internal/tracker"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("url", "", "gymtracker server URL for remote mode (e.g. http://gymtracker.tail1234.ts.net)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtracker-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds gymmcp.DataSource
	if *serverURL != "" {
		ds = gymmcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "url", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		var closeLog func() error
		log, closeLog = logging.Setup(cfg.Log, os.Stderr)
		defer closeLog()

		ctx := context.Background()
		db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Initialize(ctx, log); err != nil {
			log.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		ds = tracker.New(db, log)
		log.Info("local mode", "driver", cfg.Database.Driver)
	}

	if err := server.ServeStdio(gymmcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
