// Package store provides storage backends for CurioGate settings.
//
// This file implements the SQLite-backed store, the default for a single
// device.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/curiogate/curiogate/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// GetChildProfile returns the stored child profile.
func (s *SQLiteStore) GetChildProfile() (models.ChildProfile, error) {
	var p models.ChildProfile
	var age sql.NullInt64
	err := s.db.QueryRow(`SELECT age, gender FROM child_profile WHERE id = 1`).Scan(&age, &p.Gender)
	if err != nil {
		slog.Error("SQLiteStore GetChildProfile failed", "error", err)
		return models.ChildProfile{}, fmt.Errorf("failed to read child profile: %w", err)
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

// UpdateChildProfile stores the child profile.
func (s *SQLiteStore) UpdateChildProfile(p models.ChildProfile) error {
	var age sql.NullInt64
	if p.Age != nil {
		age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	_, err := s.db.Exec(`UPDATE child_profile SET age = ?, gender = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, age, p.Gender)
	if err != nil {
		slog.Error("SQLiteStore UpdateChildProfile failed", "error", err)
		return fmt.Errorf("failed to update child profile: %w", err)
	}
	slog.Debug("SQLiteStore UpdateChildProfile succeeded", "age_set", p.Age != nil)
	return nil
}

// GetSelectedInterests returns the ordered interest labels.
func (s *SQLiteStore) GetSelectedInterests() ([]string, error) {
	rows, err := s.db.Query(`SELECT label FROM interests ORDER BY position`)
	if err != nil {
		slog.Error("SQLiteStore GetSelectedInterests query failed", "error", err)
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			slog.Error("SQLiteStore GetSelectedInterests scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interest rows: %w", err)
	}
	return labels, nil
}

// UpdateInterests replaces the ordered interest list.
func (s *SQLiteStore) UpdateInterests(labels []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin interest update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM interests`); err != nil {
		slog.Error("SQLiteStore UpdateInterests delete failed", "error", err)
		return fmt.Errorf("failed to clear interests: %w", err)
	}
	for i, label := range labels {
		if _, err := tx.Exec(`INSERT INTO interests (position, label) VALUES (?, ?)`, i, label); err != nil {
			slog.Error("SQLiteStore UpdateInterests insert failed", "error", err, "label", label)
			return fmt.Errorf("failed to insert interest %q: %w", label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interest update: %w", err)
	}
	slog.Debug("SQLiteStore UpdateInterests succeeded", "count", len(labels))
	return nil
}

// SetPin hashes and stores the parent PIN.
func (s *SQLiteStore) SetPin(pin string) error {
	hash, err := hashPin(pin)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE child_profile SET pin_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, hash); err != nil {
		slog.Error("SQLiteStore SetPin failed", "error", err)
		return fmt.Errorf("failed to store PIN: %w", err)
	}
	return nil
}

// VerifyPin checks a PIN against the stored hash.
func (s *SQLiteStore) VerifyPin(pin string) (bool, error) {
	var hash string
	if err := s.db.QueryRow(`SELECT pin_hash FROM child_profile WHERE id = 1`).Scan(&hash); err != nil {
		slog.Error("SQLiteStore VerifyPin failed", "error", err)
		return false, fmt.Errorf("failed to read PIN hash: %w", err)
	}
	return checkPin(pin, hash), nil
}

// LogEmergencyUnlock records a PIN-authorized bypass.
func (s *SQLiteStore) LogEmergencyUnlock(reason string) error {
	if _, err := s.db.Exec(`INSERT INTO emergency_unlocks (reason) VALUES (?)`, reason); err != nil {
		slog.Error("SQLiteStore LogEmergencyUnlock failed", "error", err)
		return fmt.Errorf("failed to log emergency unlock: %w", err)
	}
	slog.Info("SQLiteStore LogEmergencyUnlock recorded", "reason_set", reason != "")
	return nil
}

// GetEmergencyUnlockCount returns the number of recorded bypasses.
func (s *SQLiteStore) GetEmergencyUnlockCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM emergency_unlocks`).Scan(&count); err != nil {
		slog.Error("SQLiteStore GetEmergencyUnlockCount failed", "error", err)
		return 0, fmt.Errorf("failed to count emergency unlocks: %w", err)
	}
	return count, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
