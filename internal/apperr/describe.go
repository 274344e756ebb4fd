package apperr

import (
	"errors"
	"net/http"
)

const (
	MessageNotUnderstood = "Could not understand request"
	MessageFailed        = "Server failed to process prompt"
)

// Describe converts any pipeline error into the status and message returned
// to the user. It is called once, at the boundary.
func Describe(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, MessageFailed
	}

	switch e.Kind {
	case KindIntentParse:
		return http.StatusUnprocessableEntity, MessageNotUnderstood
	case KindTimeout:
		return http.StatusGatewayTimeout, MessageFailed
	case KindExternalService:
		if e.Class == ClassRateLimited {
			return http.StatusServiceUnavailable, MessageFailed
		}
		return http.StatusBadGateway, MessageFailed
	case KindInvalidBackendResponse, KindLLMCall:
		return http.StatusBadGateway, MessageFailed
	default:
		return http.StatusInternalServerError, MessageFailed
	}
}
