// Copyright (c) 2026 Authcore. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. It
// guarantees the two error body shapes of the public contract:
//
//   - Field-attributed failures render as {"<field>": ["<reason>", ...]}
//     so a form can place each message next to the offending input.
//   - Everything else renders as {"error": "<message>"}.
//
// Success bodies are written verbatim; handlers own their payload shape.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phamduc/authcore/internal/platform/apperr"
	"github.com/phamduc/authcore/internal/platform/ctxkey"
)

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload written verbatim.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Created writes a 201 Created response with the payload written verbatim.
func Created(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusCreated, payload)
}

// Error converts any Go error into a standardized JSON API error response.
//
// # Security
//
// Non-AppError failures are logged server-side with full detail and surfaced
// to the caller only as a generic 500 body. Causes, hashes, and stack traces
// never reach the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	if len(appError.Details) > 0 {
		JSON(writer, appError.HTTPStatus, fieldErrorBody(appError.Details))
		return
	}

	JSON(writer, appError.HTTPStatus, map[string]string{"error": appError.Message})
}

// fieldErrorBody groups field errors into the field -> [messages] body shape.
func fieldErrorBody(details []apperr.FieldError) map[string][]string {
	body := make(map[string][]string, len(details))
	for _, detail := range details {
		body[detail.Field] = append(body[detail.Field], detail.Message)
	}
	return body
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
