package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apperrors "mentor-ai/backend/internal/errors"
)

// This file contains the response envelopes shared by every JSON route and
// the helpers that write them, plus the server-sent-event helpers used by the
// streaming routes.

// SuccessResponse wraps every successful JSON payload.
type SuccessResponse struct {
	Success   bool      `json:"success" example:"true"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool      `json:"success" example:"false"`
	Error     string    `json:"error" example:"validation failed: messages must not be empty"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse is the data of operations that return no resource.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// sseDone terminates every event stream.
const sseDone = "[DONE]"

// respondWithError maps the sentinel errors to HTTP status codes. Provider,
// validation and configuration messages are passed to the client; anything
// else is reported generically.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConfiguration):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrProvider):
		statusCode = http.StatusBadGateway
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Success: false, Error: message, Timestamp: time.Now().UTC()})
}

// respondWithData writes payload inside the success envelope.
func respondWithData(w http.ResponseWriter, code int, payload any) {
	respondWithJSON(w, code, SuccessResponse{Success: true, Data: payload, Timestamp: time.Now().UTC()})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// writeStreamEvent writes data as one `data:` event. A write error means the
// client has gone away.
func writeStreamEvent(w http.ResponseWriter, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}
	return writeStreamLine(w, string(jsonData))
}

// writeStreamDone writes the terminal `data: [DONE]` event.
func writeStreamDone(w http.ResponseWriter) error {
	return writeStreamLine(w, sseDone)
}

func writeStreamLine(w http.ResponseWriter, payload string) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
