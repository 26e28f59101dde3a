package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/gymtracker/internal/report"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymtracker-simulate", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	scenarios := report.DemoScenarios()
	failures, err := report.Run(os.Stdout, scenarios)
	if err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	if failures > 0 {
		log.Error("unexpected verdicts", "failed", failures, "total", len(scenarios))
		os.Exit(1)
	}
	log.Info("all scenarios passed", "total", len(scenarios))
}
