package store

import (
	"errors"
	"time"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
)

// ErrNotFound is returned when a session id has no stored record.
var ErrNotFound = errors.New("store: session not found")

// DB persists prize sessions so any round can be replayed from its seed.
// Individual spin events are deliberately not recorded.
type DB interface {
	Close() error
	Migrate() error
	SaveSession(sess *prize.Session) error
	GetSession(id string) (*StoredSession, error)
	ListSessions(query SessionsQuery) (*SessionsList, error)
}

// StoredSession is a session plus its persistence metadata.
type StoredSession struct {
	prize.Session
	CreatedAt time.Time `json:"created_at"`
}

// SessionsQuery represents query parameters for listing sessions.
type SessionsQuery struct {
	Source  string `json:"source,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// SessionsList represents a paginated sessions response.
type SessionsList struct {
	Sessions   []StoredSession `json:"sessions"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
}
