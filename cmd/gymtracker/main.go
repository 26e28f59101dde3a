package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/gymtracker/internal/config"
	"github.com/claude/gymtracker/internal/logging"
	gymmcp "github.com/claude/gymtracker/internal/mcp"
	"github.com/claude/gymtracker/internal/metrics"
	"github.com/claude/gymtracker/internal/server"
	"github.com/claude/gymtracker/internal/storage"
	"github.com/claude/gymtracker/internal/tracker"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := logging.Setup(cfg.Log, os.Stdout)
	defer closeLog()
	log.Info("gymtracker starting", "version", Version, "driver", cfg.Database.Driver)

	dsn := cfg.Database.DSN()
	if *migrateOnly {
		if err := storage.RunMigrations(cfg.Database.Driver, dsn); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database, migrate and seed
	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database.Driver, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Initialize(ctx, log); err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	log.Info("database ready")

	svc := tracker.New(db, log)
	reg := metrics.NewRegistry()
	srv := server.New(svc, log, server.WithMetrics(metrics.NewManager("gymtracker", "server", reg), reg))
	srv.Handle("/mcp", mcpserver.NewStreamableHTTPServer(gymmcp.New(svc, Version, log)))

	// Start server: tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
