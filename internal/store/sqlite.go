package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// every statement on the same database when path is ":memory:".
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			source TEXT NOT NULL,
			winning_index INTEGER NOT NULL,
			prize_count INTEGER NOT NULL,
			prizes_json TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_source ON sessions(source, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_seed ON sessions(seed)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveSession persists one session, assigning a UUID if the session has no
// id yet. The session is re-validated first so a broken record can never be
// written and later replayed.
func (s *SQLiteDB) SaveSession(sess *prize.Session) error {
	if sess == nil {
		return fmt.Errorf("cannot save nil session")
	}
	if err := prize.ValidateSet(sess.Prizes); err != nil {
		return fmt.Errorf("refusing to save invalid session: %w", err)
	}
	if err := prize.ValidateWinningIndex(len(sess.Prizes), sess.WinningIndex); err != nil {
		return fmt.Errorf("refusing to save invalid session: %w", err)
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	prizesJSON, err := json.Marshal(sess.Prizes)
	if err != nil {
		return fmt.Errorf("failed to marshal prizes: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO sessions (id, seed, source, winning_index, prize_count, prizes_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Seed, sess.Source, sess.WinningIndex, len(sess.Prizes), string(prizesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a stored session by id.
func (s *SQLiteDB) GetSession(id string) (*StoredSession, error) {
	var (
		stored     StoredSession
		prizesJSON string
	)
	err := s.db.QueryRow(
		`SELECT id, seed, source, winning_index, prizes_json, created_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&stored.ID, &stored.Seed, &stored.Source, &stored.WinningIndex, &prizesJSON, &stored.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(prizesJSON), &stored.Prizes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prizes: %w", err)
	}
	return &stored, nil
}

// ListSessions returns a page of stored sessions, newest first.
func (s *SQLiteDB) ListSessions(query SessionsQuery) (*SessionsList, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 || query.PerPage > 100 {
		query.PerPage = 25
	}

	where := ""
	args := []any{}
	if query.Source != "" {
		where = " WHERE source = ?"
		args = append(args, query.Source)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	offset := (query.Page - 1) * query.PerPage
	rows, err := s.db.Query(
		`SELECT id, seed, source, winning_index, prizes_json, created_at
		 FROM sessions`+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, query.PerPage, offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []StoredSession{}
	for rows.Next() {
		var (
			stored     StoredSession
			prizesJSON string
		)
		if err := rows.Scan(&stored.ID, &stored.Seed, &stored.Source, &stored.WinningIndex, &prizesJSON, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(prizesJSON), &stored.Prizes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prizes: %w", err)
		}
		sessions = append(sessions, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	totalPages := (total + query.PerPage - 1) / query.PerPage

	return &SessionsList{
		Sessions:   sessions,
		TotalCount: total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}
