package api

import (
	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/store"
	"github.com/michael-h-patrianna/prizewheel-go/internal/wheel"
)

// WheelError represents a structured error response with context.
type WheelError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface.
func (e WheelError) Error() string {
	return e.Message
}

// Error types with proper categorization.
const (
	// Input validation errors
	ErrTypeInvalidSeed = "invalid_seed"
	ErrTypeValidation  = "validation_error"
	ErrTypeDomain      = "domain_error"

	// Resource errors
	ErrTypeNotFound = "session_not_found"

	// System errors
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryDomain     ErrorCategory = "domain"
	CategoryResource   ErrorCategory = "resource"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type.
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidSeed, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeDomain:
		return CategoryDomain
	case ErrTypeNotFound:
		return CategoryResource
	default:
		return CategorySystem
	}
}

// SessionRequest asks for a new prize session. Seed is optional; when
// supplied it makes the round reproducible. A fractional seed is floored,
// a non-finite one rejected.
type SessionRequest struct {
	Count int      `json:"count"`
	Seed  *float64 `json:"seed,omitempty"`
}

// SessionResponse carries a built session plus its derived segment mapping.
type SessionResponse struct {
	Session       *prize.Session  `json:"session"`
	Segments      []wheel.Segment `json:"segments"`
	EngineVersion string          `json:"engine_version"`
}

// ReplayRequest rebuilds a past round from its count and seed without
// storing a new record.
type ReplayRequest struct {
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
}

// SessionsResponse is a paginated listing of stored sessions.
type SessionsResponse struct {
	store.SessionsList
	EngineVersion string `json:"engine_version"`
}

// SegmentsResponse is the wedge mapping for one stored session.
type SegmentsResponse struct {
	SessionID     string          `json:"session_id"`
	Segments      []wheel.Segment `json:"segments"`
	EngineVersion string          `json:"engine_version"`
}

// SpinPlanRequest asks for the rotation path that lands a given winning
// segment. Seed is optional; when supplied the extra-turns and overshoot
// draws are reproducible.
type SpinPlanRequest struct {
	SegmentCount    int      `json:"segment_count"`
	WinningIndex    int      `json:"winning_index"`
	CurrentRotation float64  `json:"current_rotation"`
	Seed            *float64 `json:"seed,omitempty"`
}

// SpinPlanResponse carries the computed plan and the segment the target
// angle maps back to, which must equal the requested winning index.
type SpinPlanResponse struct {
	Plan          wheel.Plan `json:"plan"`
	LandingIndex  int        `json:"landing_index"`
	Seed          int64      `json:"seed"`
	EngineVersion string     `json:"engine_version"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engine_version"`
	PoolSize      int    `json:"pool_size"`
	Database      bool   `json:"database"`
	Timestamp     string `json:"timestamp"`
}
