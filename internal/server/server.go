// Package server exposes the triage engine over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FrenchMajesty/ticket-triage/internal/retry"
	"github.com/FrenchMajesty/ticket-triage/pkg/triage"
	"github.com/FrenchMajesty/ticket-triage/pkg/types"
)

const requestIDHeader = "X-Request-ID"

// Analyzer is the subset of triage.Analyzer the server needs
type Analyzer interface {
	Analyze(ctx context.Context, text string, opts triage.Options) (*types.Result, error)
}

// Config holds server configuration
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxRetries applies the caller-side retry policy to remote analyses. Zero disables it.
	MaxRetries int
	Logger     *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 90 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Server is the HTTP front end for an Analyzer
type Server struct {
	router   *gin.Engine
	analyzer Analyzer
	cfg      Config
	logger   *slog.Logger
}

// AnalyzeRequest is the body of POST /v1/analyze
type AnalyzeRequest struct {
	Ticket   string `json:"ticket"`
	Strategy string `json:"strategy"`
	Model    string `json:"model"`
}

// New creates a Server with its routes registered
func New(cfg Config, analyzer Analyzer) *Server {
	cfg.applyDefaults()

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:   router,
		analyzer: analyzer,
		cfg:      cfg,
		logger:   cfg.Logger.With("component", "server"),
	}
	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())

	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/v1")
	{
		v1.POST("/analyze", s.analyze)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Middleware

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Handlers

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	strategy, err := types.ParseStrategy(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := triage.Options{
		Strategy: strategy,
		APIKey:   bearerToken(c.GetHeader("Authorization")),
		Model:    strings.TrimSpace(req.Model),
	}

	result, err := s.run(c.Request.Context(), req.Ticket, opts)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Warn("analysis failed", "request_id", c.GetString("request_id"), "strategy", strategy, "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) run(ctx context.Context, ticket string, opts triage.Options) (*types.Result, error) {
	if opts.Strategy != types.StrategyRemote || s.cfg.MaxRetries <= 0 {
		return s.analyzer.Analyze(ctx, ticket, opts)
	}

	return retry.Do(ctx, retry.Options{
		Config:       retry.DefaultConfig(s.cfg.MaxRetries),
		ErrorChecker: triage.Retryable,
		Logger:       s.logger,
		Name:         "remote analysis",
	}, func(attempt int) (*types.Result, error) {
		return s.analyzer.Analyze(ctx, ticket, opts)
	})
}

// statusFor maps an analysis error to an HTTP status
func statusFor(err error) int {
	var (
		transportErr *types.TransportError
		parseErr     *types.ParseError
	)
	switch {
	case errors.Is(err, types.ErrEmptyTicket):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.As(err, &transportErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
