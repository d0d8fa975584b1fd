// Command spark serializes HTTP/1.x message heads described as JSON
// manifests and writes them to stdout, a file, a TCP peer or a NATS subject.
//
//	echo '{"kind":"request","path":"/","version":"1.1"}' | spark -dial localhost:8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	return f, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.level()
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := openInput(cfg.In)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}
	defer in.Close()

	err = run(ctx, cfg, in, os.Stdout, logger)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return
	}
	if err != nil {
		logger.Error("spark failed", "err", err)
		in.Close()
		stop()
		os.Exit(1)
	}
}
