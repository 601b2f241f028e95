package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

// MaxBulletinSize bounds the request body accepted by /convert.
const MaxBulletinSize = 32 << 20

// Converter re-encodes a bulletin to a schema version. *codec.Codec
// implements it.
type Converter interface {
	Convert(data []byte, v sandre.Version) ([]byte, *domain.Document, error)
}

// Server exposes health, readiness, metrics and on-demand conversion.
type Server struct {
	httpServer *http.Server
	converter  Converter
	target     sandre.Version
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// POST /convert routes. Conversions default to the target version.
func NewServer(addr string, ready sharedobs.ReadinessChecker, conv Converter, target sandre.Version, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		converter: conv,
		target:    target,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /convert", s.handleConvert)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleConvert converts the request body. Query parameters:
//
//	version   target schema version ("1.1" or "2")
//	strip_ns  "true" removes SANDRE namespace declarations first
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	target := s.target
	if v := r.URL.Query().Get("version"); v != "" {
		parsed, err := sandre.ParseVersion(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		target = parsed
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBulletinSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if strip, _ := strconv.ParseBool(r.URL.Query().Get("strip_ns")); strip {
		if data, err = codec.StripNamespace(data); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	out, doc, err := s.converter.Convert(data, target)
	if err != nil {
		s.logger.Info("conversion rejected", "error", err, "kind", sandre.Kind(err))
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("X-Sandre-Source-Version", doc.Scenario.Version.String())
	w.Header().Set("X-Sandre-Target-Version", target.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.logger.Warn("write conversion response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck // best-effort error response
		"error": err.Error(),
		"kind":  sandre.Kind(err),
	})
}
