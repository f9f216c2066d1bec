package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/violethawk/server/internal/auth"
	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
)

// User handles profile reads and the administrative and blocking
// operations that change account relations out-of-band.
type User struct {
	users  model.UserStore
	logger *logger.Logger
}

// NewUser creates the user service.
func NewUser(users model.UserStore, logger *logger.Logger) *User {
	return &User{users: users, logger: logger}
}

// Profile is the externally visible slice of a user record. Credential
// material never leaves the service layer.
type Profile struct {
	ID         uuid.UUID
	ScreenName string
	Admin      bool
	JoinDate   string
}

// GetProfile returns the public profile for a user.
func (s *User) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return Profile{
		ID:         user.ID,
		ScreenName: user.ScreenName,
		Admin:      user.Admin,
		JoinDate:   user.JoinDate.Format("2006-01-02"),
	}, nil
}

// Block records that the principal blocks another user.
func (s *User) Block(ctx context.Context, principal *model.Principal, blockedID uuid.UUID) error {
	if principal == nil {
		return fmt.Errorf("%w: authentication required to block users", model.ErrUnauthorized)
	}
	if principal.ID == blockedID {
		return fmt.Errorf("%w: cannot block yourself", model.ErrMalformedInput)
	}

	if _, err := s.users.GetByID(ctx, blockedID); err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := s.users.Block(ctx, principal.ID, blockedID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}

	s.logger.Info("User service: user blocked", "user_id", principal.ID, "blocked_id", blockedID)

	return nil
}

// SetStatus flips the disabled/banned gates on an account. Moderators
// only.
func (s *User) SetStatus(ctx context.Context, principal *model.Principal, targetID uuid.UUID, disabled, banned bool) error {
	if !auth.CanModerate(principal) {
		return fmt.Errorf("%w: administrator access required", model.ErrForbidden)
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := s.users.SetStatus(ctx, targetID, disabled, banned); err != nil {
		return fmt.Errorf("failed to set account status: %w", err)
	}

	s.logger.Info("User service: account status changed",
		"admin", principal.ID,
		"target", targetID,
		"disabled", disabled,
		"banned", banned)

	return nil
}
