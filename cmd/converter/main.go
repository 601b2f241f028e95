// Command converter consumes SANDRE Hydrometrie bulletins from Kafka,
// re-encodes them to the configured schema version and publishes the result.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sandre-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/sandre-etl/internal/adapter/kafka"
	"github.com/couchcryptid/sandre-etl/internal/config"
	"github.com/couchcryptid/sandre-etl/internal/observability"
	"github.com/couchcryptid/sandre-etl/internal/pipeline"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	c := codec.New(codec.WithLogger(logger), codec.WithIndent(cfg.Indent))
	logger.Info("bulletin conversion configured",
		"target_version", cfg.TargetVersion.String(),
		"strip_namespace", cfg.StripNamespace,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(c, cfg.TargetVersion, logger, metrics,
		pipeline.WithStripNamespace(cfg.StripNamespace))

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, c, cfg.TargetVersion, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before the shutdown timeout")
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
