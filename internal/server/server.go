// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// MaxRequestBodySize bounds a query request body.
const MaxRequestBodySize = 64 << 10

// Messages returned in "error" envelopes.
const (
	NoJSONMessage    = "The model did not return a valid JSON response."
	BadJSONMessage   = "Failed to decode the JSON response from the model."
	shutdownDeadline = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8000".
	Addr string
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64
	Burst     int
	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
	Logger      *zap.Logger
}

// Server is the demo query service.
type Server struct {
	cfg      Config
	answerer Answerer
	logger   *zap.Logger
	router   *http.ServeMux
	limiter  *RateLimiter
	server   *http.Server
}

// New creates a Server that answers questions with answerer.
func New(cfg Config, answerer Answerer) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		answerer: answerer,
		logger:   logger,
		router:   http.NewServeMux(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}

	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// =============================================================================
// ROUTES
// =============================================================================

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("POST /api/query", s.handleQuery)
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware(),
		LoggingMiddleware(s.logger),
		CORSMiddleware(s.cfg.CORSOrigins),
	}
	if s.limiter != nil {
		middlewares = append(middlewares, RateLimitMiddleware(s.limiter, s.logger))
	}
	return Chain(middlewares...)(s.router)
}

// =============================================================================
// HANDLERS
// =============================================================================

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Question *string `json:"question"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Status": "API is running"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, "request body must be a JSON object")
		return
	}
	if req.Question == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: question")
		return
	}

	output, err := s.answerer.Answer(r.Context(), *req.Question)
	if err != nil {
		s.logger.Error("answer failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	candidate, ok := ExtractJSON(output)
	if !ok {
		s.logger.Warn("no JSON in model output", zap.String("request_id", RequestID(r.Context())))
		writeJSON(w, http.StatusOK, errorEnvelope{Type: "error", Data: NoJSONMessage})
		return
	}

	body, err := compact(candidate)
	if err != nil {
		s.logger.Warn("invalid JSON in model output",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, errorEnvelope{Type: "error", Data: BadJSONMessage, RawOutput: output})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type errorEnvelope struct {
	Type      string `json:"type"`
	Data      string `json:"data"`
	RawOutput string `json:"raw_output,omitempty"`
}

// =============================================================================
// SERVER LIFECYCLE
// =============================================================================

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown. It returns nil after a clean shutdown,
// including when Shutdown ran first.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server started", zap.String("addr", ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
