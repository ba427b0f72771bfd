package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/store"
)

// ErrorBuilder helps construct structured errors with context.
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]any
	requestID string
}

// NewError creates a new error builder.
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (eb *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error.
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// Build creates the final WheelError.
func (eb *ErrorBuilder) Build() WheelError {
	return WheelError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler provides centralized error handling with logging.
type ErrorHandler struct {
	logger *log.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *log.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError maps a domain error to its HTTP status and structured body.
// DomainError and ValidationError become 400s, a missing session a 404;
// everything else is an internal error.
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	status := http.StatusInternalServerError
	errType := ErrTypeInternal

	var domainErr *prize.DomainError
	var validationErr *prize.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		errType = ErrTypeValidation
	case errors.As(err, &domainErr):
		status = http.StatusBadRequest
		errType = ErrTypeDomain
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		errType = ErrTypeNotFound
	}

	wheelErr := NewError(errType, err.Error()).
		WithRequestID(requestID).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, wheelErr, status)
	eh.writeErrorResponse(w, status, wheelErr)
}

// logError logs the error with appropriate level and context.
func (eh *ErrorHandler) logError(r *http.Request, wheelErr WheelError, status int) {
	category := GetErrorCategory(wheelErr.Type)

	logLevel := "ERROR"
	if status < 500 {
		logLevel = "WARN"
	}

	eh.logger.Printf(
		"error_occurred level=%s type=%s category=%s status=%d request_id=%s path=%s message=%q",
		logLevel, wheelErr.Type, category, status, wheelErr.RequestID, r.URL.Path, wheelErr.Message,
	)
}

// writeErrorResponse writes the error response as JSON.
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, wheelErr WheelError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set("X-Error-Type", wheelErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(wheelErr.Type)))
	w.WriteHeader(status)

	if err := writeJSONError(w, wheelErr); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// RecoveryHandler provides panic recovery with structured error logging.
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				requestID := middleware.GetReqID(r.Context())

				eh.logger.Printf(
					"panic_recovered request_id=%s path=%s method=%s panic=%v",
					requestID, r.URL.Path, r.Method, rvr,
				)

				wheelErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, wheelErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
