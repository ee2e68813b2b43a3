package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/sports-fixtures/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "sports-fixtures"

	unavailableMessage = "Failed to load fixtures. Please try again later."
	internalMessage    = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Message replaces the raw error text in the top-level message when set.
	Message string
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
	Message:    internalMessage,
}

// errorMappings is checked in order; the first sentinel matched wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{
		target: usecase.ErrInvalidInput,
		mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		target: usecase.ErrNotFound,
		mapped: mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		target: usecase.ErrDependencyUnavailable,
		mapped: mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Message:    unavailableMessage,
		},
	},
}

func (m mappedError) body(detail string) *googleErrorBody {
	message := m.Message
	if message == "" {
		message = detail
	}
	return &googleErrorBody{
		Code:    m.HTTPStatus,
		Message: message,
		Status:  m.Status,
		Errors: []googleErrorItem{
			{Domain: errorDomain, Reason: m.Reason, Message: detail},
		},
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error:      mapped.body(err.Error()),
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, internalError.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error:      internalError.body(internalMessage),
	})
}

func mapError(err error) mappedError {
	for _, item := range errorMappings {
		if errors.Is(err, item.target) {
			return item.mapped
		}
	}
	return internalError
}
