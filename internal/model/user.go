package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	// Block records that user blocks the other user. The intent is
	// symmetric but storage keeps a single directed edge.
	Block(ctx context.Context, userID, blockedID uuid.UUID) error
	// SetStatus flips the administrative account gates.
	SetStatus(ctx context.Context, id uuid.UUID, disabled, banned bool) error
	// ReplaceCredential swaps the whole credential record. Partial
	// updates of salt/position/hash are never valid.
	ReplaceCredential(ctx context.Context, id uuid.UUID, cred Credential) error
	TouchLastSeen(ctx context.Context, id uuid.UUID, when time.Time) error
}

// Credential is one user's stored authentication material: a random
// salt, the position it was spliced into the original plaintext, and a
// one-way hash of the salted string. The plaintext is never stored and
// cannot be reconstructed from the record.
type Credential struct {
	Salt         string
	SaltPos      int
	PasswordHash string
}

// User represents a stored user together with its credential record
// and account-status flags.
type User struct {
	ID         uuid.UUID
	ScreenName string
	Email      string
	Phone      string
	Admin      bool
	Disabled   bool
	Banned     bool
	Blocked    []uuid.UUID
	Credential Credential
	JoinDate   time.Time
	LastSeen   time.Time
}
