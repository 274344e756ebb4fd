package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/promptseerr/promptseerr/internal/apperr"
)

// PromptRequest is the body of POST /api/prompt.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// MessageResponse carries the user-facing reply or error message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Provider: s.provider})
}

func (s *Server) postPrompt(c echo.Context) error {
	var req PromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid request body"})
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return c.JSON(http.StatusBadRequest, MessageResponse{Message: "Prompt is required"})
	}

	msg, err := s.handler.HandleMediaRequest(c.Request().Context(), prompt)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func (s *Server) errorResponse(c echo.Context, err error) error {
	status, message := apperr.Describe(err)

	s.logger.Error().
		Err(err).
		Str("kind", string(apperr.KindOf(err))).
		Bool("retryable", apperr.IsRetryable(err)).
		Int("status", status).
		Msg("Prompt failed")

	if wait := apperr.RetryAfter(err); wait > 0 && status == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
	return c.JSON(status, MessageResponse{Message: message})
}
