// Package api serves goodfirst reports over HTTP.
//
// Routes:
//
//	POST /v1/report   manifest body -> {"dependencies":[...]} (?format=markdown for Markdown)
//	GET  /healthz     liveness
//
// Every response carries an X-Request-ID header.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/pipeline"
	"github.com/matzehuels/goodfirst/pkg/report"
)

// MaxManifestSize is the largest accepted request body.
const MaxManifestSize = 1 << 20

const shutdownTimeout = 10 * time.Second

// Runner produces a report from manifest content.
// *pipeline.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, manifest []byte) ([]pipeline.Enriched, error)
}

// Server exposes a Runner over HTTP.
type Server struct {
	runner Runner
	logger *log.Logger
}

// New creates a Server. A nil logger uses log.Default.
func New(runner Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed handler with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	r.Post("/v1/report", s.handleReport)

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil || f == report.FormatTable {
			writeError(w, http.StatusBadRequest, gferr.New(gferr.ErrCodeInvalidFormat, "format must be json or markdown"))
			return
		}
		format = f
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxManifestSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, gferr.New(gferr.ErrCodeInvalidInput, "manifest exceeds %d bytes", MaxManifestSize))
			return
		}
		writeError(w, http.StatusBadRequest, gferr.Wrap(gferr.ErrCodeInvalidInput, err, "read body"))
		return
	}

	entries, err := s.runner.Run(r.Context(), body)
	if err != nil {
		if gferr.IsManifestError(err) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.logger.Error("report failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, gferr.Wrap(gferr.ErrCodeInternal, err, "report failed"))
		return
	}

	if format == report.FormatMarkdown {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_ = report.RenderMarkdown(w, entries)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = report.RenderJSON(w, entries)
}

type errorBody struct {
	Code    gferr.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := gferr.GetCode(err)
	if code == "" {
		code = gferr.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Message: gferr.UserMessage(err)})
}
