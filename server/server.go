// Package server renders poster frames of the background over HTTP, the
// static fallback for pages that cannot run the animated canvas.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"netfield/raster"
	"netfield/theme"
)

// Request limits
const (
	MaxWidth     = 3840
	MaxHeight    = 2160
	MaxFrames    = 600
	DefaultFrame = 60
)

// Server serves rendered backgrounds
type Server struct {
	logger *log.Logger
	router chi.Router
}

// New builds the router
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{logger: logger.With("component", "server")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/background.png", s.handleBackground)
	r.Get("/palette/{theme}", s.handlePalette)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"id", middleware.GetReqID(r.Context()), "took", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleBackground renders ?w=&h=&theme=&seed=&frames= as PNG
func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	frames, err := raster.Render(opts, s.logger)
	if err != nil {
		s.logger.Error("render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, frames[len(frames)-1]); err != nil {
		s.logger.Error("encode failed", "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// paletteResponse is the JSON form of a palette
type paletteResponse struct {
	Theme      string `json:"theme"`
	Background string `json:"background"`
	Particle   string `json:"particle"`
	Line       string `json:"line"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	t, err := theme.Parse(chi.URLParam(r, "theme"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	p := theme.PaletteFor(t)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(paletteResponse{
		Theme:      t.String(),
		Background: theme.Hex(p.Background),
		Particle:   theme.Hex(p.Particle),
		Line:       theme.Hex(p.Line),
	})
}

// parseOptions reads and validates the render query
func parseOptions(r *http.Request) (raster.Options, error) {
	q := r.URL.Query()
	opts := raster.Options{
		Width:  1400,
		Height: 900,
		Frames: DefaultFrame,
		Seed:   1,
	}

	var err error
	if opts.Width, err = intParam(q.Get("w"), opts.Width, 1, MaxWidth); err != nil {
		return opts, fmt.Errorf("w: %w", err)
	}
	if opts.Height, err = intParam(q.Get("h"), opts.Height, 1, MaxHeight); err != nil {
		return opts, fmt.Errorf("h: %w", err)
	}
	if opts.Frames, err = intParam(q.Get("frames"), opts.Frames, 1, MaxFrames); err != nil {
		return opts, fmt.Errorf("frames: %w", err)
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("seed: %w", err)
		}
		opts.Seed = seed
	}
	if v := q.Get("theme"); v != "" {
		t, err := theme.Parse(v)
		if err != nil {
			return opts, err
		}
		opts.Theme = t
	}
	return opts, nil
}

func intParam(v string, def, lo, hi int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}
