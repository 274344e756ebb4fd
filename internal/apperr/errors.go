// Package apperr defines the typed errors surfaced by the request pipeline
// and the single place where they are turned into a user-facing message and
// an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

// Kind categorizes a pipeline error.
type Kind string

const (
	KindIntentParse            Kind = "intent_parse"
	KindExternalService        Kind = "external_service"
	KindTimeout                Kind = "timeout"
	KindInvalidSelection       Kind = "invalid_selection"
	KindInvalidBackendResponse Kind = "invalid_backend_response"
	KindLLMCall                Kind = "llm_call"
)

// Class refines an external-service failure by response status.
type Class string

const (
	ClassNone        Class = ""
	ClassRateLimited Class = "rate_limited"
	ClassServerError Class = "server_error"
	ClassClientError Class = "client_error"
)

// Error is a categorized pipeline error.
type Error struct {
	Kind       Kind
	Class      Class
	Service    string        // backend or provider name, when applicable
	StatusCode int           // HTTP status from the backend, 0 if none
	RetryAfter time.Duration // hint from a rate-limited response
	Retryable  bool
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Service != "" {
		msg = e.Service + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind so that errors.Is(err, ErrTimeout) works for any
// timeout regardless of service or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrIntentParse            = &Error{Kind: KindIntentParse, Message: "could not parse intent"}
	ErrExternalService        = &Error{Kind: KindExternalService, Message: "external service error"}
	ErrTimeout                = &Error{Kind: KindTimeout, Message: "timed out"}
	ErrInvalidSelection       = &Error{Kind: KindInvalidSelection, Message: "invalid selection"}
	ErrInvalidBackendResponse = &Error{Kind: KindInvalidBackendResponse, Message: "invalid backend response"}
	ErrLLMCall                = &Error{Kind: KindLLMCall, Message: "language model call failed"}
)

// NewIntentParseError reports model output that does not match the request shape.
func NewIntentParseError(message string, cause error) *Error {
	return &Error{Kind: KindIntentParse, Message: message, Cause: cause}
}

// NewInvalidSelectionError reports a selection the candidate list cannot satisfy.
func NewInvalidSelectionError(message string, cause error) *Error {
	return &Error{Kind: KindInvalidSelection, Message: message, Cause: cause}
}

// NewInvalidBackendResponseError reports a successful call with an unusable body.
func NewInvalidBackendResponseError(service, message string) *Error {
	return &Error{Kind: KindInvalidBackendResponse, Service: service, Message: message}
}

// NewTimeoutError reports a transport-level timeout against service.
func NewTimeoutError(service string, cause error) *Error {
	return &Error{
		Kind:      KindTimeout,
		Service:   service,
		Message:   "request timed out",
		Retryable: true,
		Cause:     cause,
	}
}

// NewLLMCallError reports a provider or transport failure behind the gateway.
func NewLLMCallError(provider string, cause error) *Error {
	return &Error{Kind: KindLLMCall, Service: provider, Message: "call failed", Cause: cause}
}

// NewExternalServiceError classifies a non-success HTTP response.
// retryAfter is only kept for rate-limited responses.
func NewExternalServiceError(service string, statusCode int, retryAfter time.Duration, cause error) *Error {
	e := &Error{
		Kind:       KindExternalService,
		Service:    service,
		StatusCode: statusCode,
		Message:    "request failed",
		Cause:      cause,
	}
	switch {
	case statusCode == 429:
		e.Class = ClassRateLimited
		e.Retryable = true
		e.RetryAfter = retryAfter
		e.Message = "rate limited"
	case statusCode >= 500:
		e.Class = ClassServerError
		e.Retryable = true
		e.Message = "server error"
	case statusCode >= 400:
		e.Class = ClassClientError
		e.Message = "client error"
	}
	return e
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether the classification marks err as retryable.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// RetryAfter returns the rate-limit hint carried by err, if any.
func RetryAfter(err error) time.Duration {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}

func IsIntentParse(err error) bool      { return errors.Is(err, ErrIntentParse) }
func IsExternalService(err error) bool  { return errors.Is(err, ErrExternalService) }
func IsTimeout(err error) bool          { return errors.Is(err, ErrTimeout) }
func IsInvalidSelection(err error) bool { return errors.Is(err, ErrInvalidSelection) }
func IsLLMCall(err error) bool          { return errors.Is(err, ErrLLMCall) }

func IsInvalidBackendResponse(err error) bool {
	return errors.Is(err, ErrInvalidBackendResponse)
}
