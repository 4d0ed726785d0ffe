// Package storage provides SQLite-based persistence for simulator sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one recorded simulator run.
type Session struct {
	ID             string
	Frontend       string // "tui", "window" or "ssh"
	User           string
	RefreshRate    int
	StartedAt      time.Time
	EndedAt        time.Time
	MaxSpeed       int
	ExceedEpisodes int
	Ignores        int
	GatePassed     bool
	Ticks          int
}

// Duration returns how long the session lasted.
func (s Session) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// FrontendStats aggregates the sessions of one frontend.
type FrontendStats struct {
	Frontend       string
	Sessions       int
	MaxSpeed       int
	ExceedEpisodes int
	LastStarted    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			frontend TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			refresh_rate INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			max_speed INTEGER NOT NULL DEFAULT 0,
			exceed_episodes INTEGER NOT NULL DEFAULT 0,
			ignores INTEGER NOT NULL DEFAULT 0,
			gate_passed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_frontend ON sessions(frontend);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a session. A random ID is assigned when sess.ID is
// empty. Returns the ID of the stored record.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Frontend == "" {
		return "", errors.New("storage: session frontend is required")
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, frontend, username, refresh_rate, started_at, ended_at,
		  max_speed, exceed_episodes, ignores, gate_passed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Frontend,
		sess.User,
		sess.RefreshRate,
		sess.StartedAt.UnixMilli(),
		sess.EndedAt.UnixMilli(),
		sess.MaxSpeed,
		sess.ExceedEpisodes,
		sess.Ignores,
		sess.GatePassed,
		sess.Ticks,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

const sessionColumns = `id, frontend, username, refresh_rate, started_at, ended_at,
	max_speed, exceed_episodes, ignores, gate_passed, ticks`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (Session, error) {
	var (
		sess           Session
		started, ended int64
		gatePassed     int
	)
	err := r.Scan(
		&sess.ID,
		&sess.Frontend,
		&sess.User,
		&sess.RefreshRate,
		&started,
		&ended,
		&sess.MaxSpeed,
		&sess.ExceedEpisodes,
		&sess.Ignores,
		&gatePassed,
		&sess.Ticks,
	)
	if err != nil {
		return Session{}, err
	}
	sess.StartedAt = time.UnixMilli(started)
	sess.EndedAt = time.UnixMilli(ended)
	sess.GatePassed = gatePassed != 0
	return sess, nil
}

// SessionByID retrieves a session. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first. An empty
// frontend matches every frontend.
func (s *Store) RecentSessions(frontend string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR frontend = ?
		 ORDER BY started_at DESC
		 LIMIT ?`,
		frontend, frontend, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Stats retrieves aggregated statistics per frontend.
func (s *Store) Stats() (map[string]*FrontendStats, error) {
	rows, err := s.db.Query(
		`SELECT frontend, COUNT(*), MAX(max_speed), SUM(exceed_episodes), MAX(started_at)
		 FROM sessions
		 GROUP BY frontend`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*FrontendStats)
	for rows.Next() {
		var fs FrontendStats
		var last int64
		if err := rows.Scan(&fs.Frontend, &fs.Sessions, &fs.MaxSpeed, &fs.ExceedEpisodes, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		fs.LastStarted = time.UnixMilli(last)
		stats[fs.Frontend] = &fs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes every session of a frontend, or all sessions when
// frontend is empty. Returns the number of deleted records.
func (s *Store) ClearSessions(frontend string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE ? = '' OR frontend = ?`, frontend, frontend)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}
