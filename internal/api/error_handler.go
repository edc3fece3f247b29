package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/appservers/customer-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
	Server  string              `json:"server"`
	Detail  string              `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the failure taxonomy to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent envelope: {success:false, error, details?, server}.
//
// Outside production, unclassified errors additionally carry the underlying
// message as a diagnostic detail.
func NewHTTPErrorHandler(log zerolog.Logger, serverName, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := classify(err, log, c, env)
		resp.Server = serverName
		_ = c.JSON(code, resp)
	}
}

func classify(err error, log zerolog.Logger, c echo.Context, env string) (int, errorResponse) {
	// Field-level failures carry the full violation list.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "invalid input data", Details: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, errorResponse{Error: "email is already registered"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, errorResponse{Error: "invalid resource id"}
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: "database connection error"}
	}

	// Echo's own errors: bind failures (malformed payloads), router 404s, etc.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusBadRequest {
			msg = "malformed request body"
		}
		return he.Code, errorResponse{Error: msg}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	resp := errorResponse{Error: "internal server error"}
	if env != "production" {
		resp.Detail = err.Error()
	}
	return http.StatusInternalServerError, resp
}
