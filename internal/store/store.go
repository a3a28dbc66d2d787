// Package store provides storage backends for CurioGate settings.
//
// It holds the child profile, the ordered interest list, the parent PIN, and
// the emergency unlock log. Conversation state is never stored here; it is
// session-scoped by design.
package store

import "github.com/curiogate/curiogate/internal/models"

// Store is the settings collaborator contract. All operations are synchronous
// and individually fallible; callers that personalize prompts treat failures
// as neutral defaults rather than crashing a turn.
type Store interface {
	GetChildProfile() (models.ChildProfile, error)
	UpdateChildProfile(p models.ChildProfile) error
	GetSelectedInterests() ([]string, error)
	UpdateInterests(labels []string) error
	SetPin(pin string) error
	VerifyPin(pin string) (bool, error)
	LogEmergencyUnlock(reason string) error
	GetEmergencyUnlockCount() (int, error)
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	// DSN is the database connection string: a file path for SQLite, a
	// connection URL for Postgres.
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}
