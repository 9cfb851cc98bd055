// Package server provides the HTTP upload transport for the converter:
// an upload form, the conversion endpoint, a Markdown preview, and
// health/metrics endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alnah/go-docx2jats/internal/config"
	"github.com/alnah/go-docx2jats/internal/pipeline"
)

// shutdownTimeout bounds graceful drain on shutdown.
const shutdownTimeout = 10 * time.Second

// Converter is the conversion service surface the transport depends on.
type Converter interface {
	ConvertDocx(ctx context.Context, docxPath string) (string, error)
	ConvertMarkdown(ctx context.Context, markdown string) (string, error)
	ConvertDocxToJATS(ctx context.Context, docxPath string) (string, error)
	EngineVersion(ctx context.Context) (string, error)
}

// Server wires handlers, metrics and logging around a Converter.
type Server struct {
	svc            Converter
	preview        *pipeline.PreviewRenderer
	logger         *slog.Logger
	metrics        *Metrics
	maxUploadBytes int64
	httpServer     *http.Server
}

// New constructs a Server. The registry receives the conversion metrics and
// backs the /metrics endpoint.
func New(cfg config.ServerConfig, svc Converter, logger *slog.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = config.DefaultMaxUploadBytes
	}

	s := &Server{
		svc:            svc,
		preview:        pipeline.NewPreviewRenderer(),
		logger:         logger,
		metrics:        NewMetrics(reg),
		maxUploadBytes: maxUpload,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("POST /preview", s.handlePreview)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withRequestLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe serves until ctx is canceled, then drains gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(sctx); err != nil {
			return err
		}
		return <-errCh
	}
}

// withRequestLogging logs method, path, status and duration per request.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info("HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", r.RemoteAddr))
	})
}

// statusWriter captures status codes for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
