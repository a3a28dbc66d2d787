// Package store provides storage backends for CurioGate settings.
//
// This file implements the Postgres-backed store for deployments that share
// settings across devices.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/curiogate/curiogate/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore implements Store on a Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// GetChildProfile returns the stored child profile.
func (s *PostgresStore) GetChildProfile() (models.ChildProfile, error) {
	var p models.ChildProfile
	var age sql.NullInt64
	err := s.db.QueryRow(`SELECT age, gender FROM child_profile WHERE id = 1`).Scan(&age, &p.Gender)
	if err != nil {
		slog.Error("PostgresStore GetChildProfile failed", "error", err)
		return models.ChildProfile{}, fmt.Errorf("failed to read child profile: %w", err)
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

// UpdateChildProfile stores the child profile.
func (s *PostgresStore) UpdateChildProfile(p models.ChildProfile) error {
	var age sql.NullInt64
	if p.Age != nil {
		age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	_, err := s.db.Exec(`UPDATE child_profile SET age = $1, gender = $2, updated_at = NOW() WHERE id = 1`, age, p.Gender)
	if err != nil {
		slog.Error("PostgresStore UpdateChildProfile failed", "error", err)
		return fmt.Errorf("failed to update child profile: %w", err)
	}
	return nil
}

// GetSelectedInterests returns the ordered interest labels.
func (s *PostgresStore) GetSelectedInterests() ([]string, error) {
	rows, err := s.db.Query(`SELECT label FROM interests ORDER BY position`)
	if err != nil {
		slog.Error("PostgresStore GetSelectedInterests query failed", "error", err)
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
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
func (s *PostgresStore) UpdateInterests(labels []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin interest update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM interests`); err != nil {
		return fmt.Errorf("failed to clear interests: %w", err)
	}
	for i, label := range labels {
		if _, err := tx.Exec(`INSERT INTO interests (position, label) VALUES ($1, $2)`, i, label); err != nil {
			return fmt.Errorf("failed to insert interest %q: %w", label, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interest update: %w", err)
	}
	return nil
}

// SetPin hashes and stores the parent PIN.
func (s *PostgresStore) SetPin(pin string) error {
	hash, err := hashPin(pin)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE child_profile SET pin_hash = $1, updated_at = NOW() WHERE id = 1`, hash); err != nil {
		slog.Error("PostgresStore SetPin failed", "error", err)
		return fmt.Errorf("failed to store PIN: %w", err)
	}
	return nil
}

// VerifyPin checks a PIN against the stored hash.
func (s *PostgresStore) VerifyPin(pin string) (bool, error) {
	var hash string
	if err := s.db.QueryRow(`SELECT pin_hash FROM child_profile WHERE id = 1`).Scan(&hash); err != nil {
		slog.Error("PostgresStore VerifyPin failed", "error", err)
		return false, fmt.Errorf("failed to read PIN hash: %w", err)
	}
	return checkPin(pin, hash), nil
}

// LogEmergencyUnlock records a PIN-authorized bypass.
func (s *PostgresStore) LogEmergencyUnlock(reason string) error {
	if _, err := s.db.Exec(`INSERT INTO emergency_unlocks (reason) VALUES ($1)`, reason); err != nil {
		slog.Error("PostgresStore LogEmergencyUnlock failed", "error", err)
		return fmt.Errorf("failed to log emergency unlock: %w", err)
	}
	return nil
}

// GetEmergencyUnlockCount returns the number of recorded bypasses.
func (s *PostgresStore) GetEmergencyUnlockCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM emergency_unlocks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count emergency unlocks: %w", err)
	}
	return count, nil
}

// Close releases the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
