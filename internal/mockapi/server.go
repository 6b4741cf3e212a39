// Package mockapi serves Connections puzzles from fixture files over HTTP,
// using the same URL shape as the real puzzle API. It is used for offline
// play and development.
package mockapi

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
)

// PuzzlePath is the route prefix shared with the real API.
const PuzzlePath = "/svc/connections/v2/"

// DefaultFixture is served when no date-specific file exists.
const DefaultFixture = "default.json"

//go:embed fixtures/default.json
var embedded embed.FS

// Options configures the fixture server.
type Options struct {
	Addr       string
	Fixtures   fs.FS // directory of YYYY-MM-DD.json files; nil uses the built-in puzzle
	FailStatus int   // if non-zero, every puzzle request answers with this status
	Logger     *log.Logger
}

// Server is the mock puzzle API.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// New creates a server. It does not listen until Run is called.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           Handler(opts),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: opts.Logger,
	}
}

// Handler builds the router. Exposed for httptest.
func Handler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	fixtures := opts.Fixtures
	if fixtures == nil {
		sub, err := fs.Sub(embedded, "fixtures")
		if err != nil {
			panic(fmt.Sprintf("mockapi: embedded fixtures: %v", err))
		}
		fixtures = sub
	}

	h := &puzzleHandler{fixtures: fixtures, failStatus: opts.FailStatus, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get(PuzzlePath+"{file}", h.serve)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Run listens on the configured address until the server is shut down.
func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("mockapi: listening on %s: %w", s.srv.Addr, err)
	}
	s.logger.Info("Serving puzzles", "addr", ln.Addr().String())

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting up to ten seconds for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

type puzzleHandler struct {
	fixtures   fs.FS
	failStatus int
	logger     *log.Logger
}

func (h *puzzleHandler) serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	date, ok := strings.CutSuffix(name, ".json")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := core.ParseDate(date); err != nil {
		http.Error(w, "bad date", http.StatusBadRequest)
		return
	}

	if h.failStatus != 0 {
		http.Error(w, http.StatusText(h.failStatus), h.failStatus)
		return
	}

	data, err := fs.ReadFile(h.fixtures, name)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = fs.ReadFile(h.fixtures, DefaultFixture)
	}
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("Reading fixture failed", "file", name, "err", err)
		http.Error(w, "fixture unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Debug("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
