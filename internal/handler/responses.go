package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    any `json:"data"`
}

var responseBuffers = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := responseBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		responseBuffers.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error onto a status code and user message
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// serviceErrors maps domain errors to a status and a message users can act on.
// Order matters when an error wraps more than one sentinel.
var serviceErrors = []struct {
	target  error
	status  int
	message string
}{
	{domain.ErrRecipeNotFound, http.StatusNotFound, ErrMsgRecipeNotFoundError},
	{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
	{domain.ErrSaveNotFound, http.StatusNotFound, ErrMsgSaveNotFoundError},
	{domain.ErrProfessionNotFound, http.StatusNotFound, ErrMsgProfessionNotFound},
	{domain.ErrRecipeLocked, http.StatusConflict, ErrMsgRecipeLockedError},
	{domain.ErrCraftInProgress, http.StatusConflict, ErrMsgCraftInProgressError},
	{domain.ErrNotEligible, http.StatusUnprocessableEntity, ErrMsgNotEligibleError},
	{domain.ErrInsufficientQuantity, http.StatusUnprocessableEntity, ErrMsgInsufficientItemsError},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidRequestError},
	{domain.ErrInvalidRecipe, http.StatusBadRequest, ErrMsgInvalidRequestError},
}

func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
