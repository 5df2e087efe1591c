package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store manages the SQLite database: the kv table and match history.
type Store struct {
	db *sqlx.DB
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID         int64  `db:"id" json:"id"`
	Player     string `db:"player" json:"player,omitempty"`
	Difficulty string `db:"difficulty" json:"difficulty"`
	LeftScore  int    `db:"left_score" json:"left"`
	RightScore int    `db:"right_score" json:"right"`
	Winner     string `db:"winner" json:"winner"`
	DurationMS int64  `db:"duration_ms" json:"durationMs"`
	PlayedAt   int64  `db:"played_at" json:"playedAt"` // unix milliseconds
}

// PlayedTime returns PlayedAt as a time.Time.
func (r MatchRecord) PlayedTime() time.Time {
	return time.UnixMilli(r.PlayedAt)
}

// Duration returns the match length.
func (r MatchRecord) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// MatchStats aggregates match history.
type MatchStats struct {
	Played     int   `db:"played" json:"played"`
	Wins       int   `db:"wins" json:"wins"`
	Losses     int   `db:"losses" json:"losses"`
	BestMargin int   `db:"best_margin" json:"bestMargin"`
	LastPlayed int64 `db:"last_played" json:"lastPlayed"`
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

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

// migrate applies the embedded migrations.
// The migrate instance is not closed: closing it would close s.db.
func (s *Store) migrate() error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("cannot load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("cannot create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get implements KV.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}
	return value, nil
}

// Set implements KV.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	return nil
}

// SaveMatch records a finished match and returns its ID.
// A zero PlayedAt is replaced with the current time.
func (s *Store) SaveMatch(ctx context.Context, rec MatchRecord) (int64, error) {
	if rec.PlayedAt == 0 {
		rec.PlayedAt = time.Now().UnixMilli()
	}

	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO matches (player, difficulty, left_score, right_score, winner, duration_ms, played_at)
		 VALUES (:player, :difficulty, :left_score, :right_score, :winner, :duration_ms, :played_at)`,
		rec,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// MatchFilter narrows history queries. Empty fields match everything except
// Player: the local player is the empty name.
type MatchFilter struct {
	Player     string
	Difficulty string
}

// RecentMatches returns the player's most recent matches, newest first.
func (s *Store) RecentMatches(ctx context.Context, player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []MatchRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, player, difficulty, left_score, right_score, winner, duration_ms, played_at
		 FROM matches
		 WHERE player = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return records, nil
}

// Stats aggregates a player's match history, optionally for a single
// difficulty.
func (s *Store) Stats(ctx context.Context, f MatchFilter) (MatchStats, error) {
	query := `SELECT COUNT(*) AS played,
	                 COALESCE(SUM(CASE WHEN winner = 'left' THEN 1 ELSE 0 END), 0) AS wins,
	                 COALESCE(SUM(CASE WHEN winner = 'right' THEN 1 ELSE 0 END), 0) AS losses,
	                 COALESCE(MAX(left_score - right_score), 0) AS best_margin,
	                 COALESCE(MAX(played_at), 0) AS last_played
	          FROM matches
	          WHERE player = ?`
	args := []any{f.Player}
	if f.Difficulty != "" {
		query += " AND difficulty = ?"
		args = append(args, f.Difficulty)
	}

	var stats MatchStats
	if err := s.db.GetContext(ctx, &stats, query, args...); err != nil {
		return MatchStats{}, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	return stats, nil
}

// ClearMatches deletes all match history.
func (s *Store) ClearMatches(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

var _ KV = (*Store)(nil)
