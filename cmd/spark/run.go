package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/spark/pkg/spark"
	"github.com/yourusername/spark/pkg/spark/http1"
	"github.com/yourusername/spark/pkg/spark/manifest"
	"github.com/yourusername/spark/pkg/spark/sink"
)

// output is where serialized heads go. flush is called after every head in
// pipe mode and once at the end; close releases the destination.
type output struct {
	w     io.Writer
	flush func(context.Context) error
	close func() error
}

func openOutput(ctx context.Context, cfg *Config, stdout io.Writer) (*output, error) {
	timeout := time.Duration(cfg.DialTimeout)

	switch {
	case cfg.NATSURL != "":
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("spark"), nats.Timeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS.io: %w", err)
		}
		p, err := sink.NewPublisher(nc, cfg.Subject)
		if err != nil {
			nc.Close()
			return nil, err
		}
		return &output{
			w:     p,
			flush: p.Flush,
			close: func() error {
				if err := nc.Drain(); err != nil {
					return fmt.Errorf("failed to drain NATS.io connection: %w", err)
				}
				return nil
			},
		}, nil

	case cfg.Dial != "":
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", cfg.Dial)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", cfg.Dial, err)
		}
		return buffered(conn, conn.Close), nil

	case cfg.Out != "" && cfg.Out != "-":
		f, err := os.Create(cfg.Out)
		if err != nil {
			return nil, fmt.Errorf("failed to create output: %w", err)
		}
		return buffered(f, f.Close), nil

	default:
		return buffered(stdout, func() error { return nil }), nil
	}
}

func buffered(w io.Writer, closeFn func() error) *output {
	bw := bufio.NewWriter(w)
	return &output{
		w:     bw,
		flush: func(context.Context) error { return bw.Flush() },
		close: closeFn,
	}
}

// run serializes every manifest read from in to the configured output. When
// ctx is cancelled, in is closed if it is an io.Closer, so a read blocked on
// it returns and run can stop.
func run(ctx context.Context, cfg *Config, in io.Reader, stdout io.Writer, logger *slog.Logger) error {
	metrics := spark.NewMetrics(spark.DefaultBufferPool())
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics, collectors.NewGoCollector())

	out, err := openOutput(ctx, cfg, stdout)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			_ = out.close()
			return fmt.Errorf("failed to listen on %s: %w", cfg.MetricsAddr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		logger.Info("serving metrics", "addr", ln.Addr().String())

		g.Go(func() error {
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-gctx.Done():
			case <-done:
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if c, ok := in.(io.Closer); ok {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				if err := c.Close(); err != nil {
					logger.Debug("failed to close input", "err", err)
				}
			case <-done:
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(done)
		err := serialize(gctx, cfg, in, out, metrics, logger)
		if fErr := out.flush(gctx); fErr != nil && err == nil {
			err = fErr
		}
		if cErr := out.close(); cErr != nil && err == nil {
			err = cErr
		}
		return err
	})

	return g.Wait()
}

func serialize(ctx context.Context, cfg *Config, in io.Reader, out *output, metrics *spark.Metrics, logger *slog.Logger) error {
	dec := manifest.NewDecoder(in)
	var total int64
	var count, failed int

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		m, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A cancelled run closes in, which surfaces here as a read error.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// The stream cannot be resynchronized after a syntax error.
			return fmt.Errorf("manifest %d: %w", i, err)
		}
		if cfg.RequestID {
			m.RequestID = true
		}

		n, err := writeMessage(m, cfg.Atomic, out.w)
		metrics.Observe(n, err)
		total += n
		if err != nil {
			failed++
			logger.Error("failed to serialize message", "index", i, "kind", string(m.Kind), "bytes", n, "err", err)
			if !cfg.Pipe || errors.Is(err, http1.ErrIO) {
				return fmt.Errorf("manifest %d: %w", i, err)
			}
			continue
		}
		count++
		logger.Debug("serialized message", "index", i, "kind", string(m.Kind), "bytes", n)

		if cfg.Pipe {
			if err := out.flush(ctx); err != nil {
				return err
			}
		}
	}

	logger.Info("done", "messages", count, "failed", failed, "bytes", total)
	return nil
}

func writeMessage(m *manifest.Message, atomic bool, w io.Writer) (int64, error) {
	wt, err := m.Compile()
	if err != nil {
		return 0, err
	}
	if atomic {
		return spark.WriteAtomic(w, wt)
	}
	return wt.WriteTo(w)
}
