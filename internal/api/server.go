// Package api exposes the prompt pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	apimw "github.com/promptseerr/promptseerr/internal/api/middleware"
	"github.com/promptseerr/promptseerr/internal/api/ratelimit"
	"github.com/promptseerr/promptseerr/internal/config"
)

// PromptHandler runs one media request.
type PromptHandler interface {
	HandleMediaRequest(ctx context.Context, prompt string) (string, error)
}

// Server handles HTTP requests for the prompt API.
type Server struct {
	echo     *echo.Echo
	handler  PromptHandler
	limiter  *ratelimit.IPLimiter
	provider string
	cfg      config.ServerConfig
	logger   zerolog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg config.ServerConfig, handler PromptHandler, provider string, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		handler:  handler,
		limiter:  ratelimit.NewIPLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		provider: provider,
		cfg:      cfg,
		logger:   logger.With().Str("component", "api").Logger(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(apimw.SecurityHeaders())

	bodyLimit := s.cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "64K"
	}
	s.echo.Use(middleware.BodyLimit(bodyLimit))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.logger.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = s.logger.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("requestId", v.RequestID).
				Str("remoteIp", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	api.GET("/health", s.healthCheck)
	api.POST("/prompt", s.postPrompt, s.limiter.Middleware())
}

// Start begins serving on address. It blocks until the server stops.
func (s *Server) Start(ctx context.Context, address string) error {
	s.logger.Info().Str("address", address).Str("provider", s.provider).Msg("starting HTTP server")
	s.limiter.StartCleanup(ctx, ratelimit.DefaultCleanupInterval, ratelimit.DefaultIdleTTL)
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets the server be mounted or driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
