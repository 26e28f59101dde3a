// Package logging builds the process slog.Logger from the log config section.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/claude/gymtracker/internal/config"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup returns a logger writing to console and, when cfg.File is set, to a
// size-rotated file as well. The returned func closes the file.
func Setup(cfg config.LogConfig, console io.Writer) (*slog.Logger, func() error) {
	out := console
	closeFn := func() error { return nil }

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		out = teeWriter{console, file}
		closeFn = file.Close
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h), closeFn
}

// teeWriter writes to every writer even when one fails.
type teeWriter []io.Writer

func (t teeWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range t {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
