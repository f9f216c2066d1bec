package model

import (
	"errors"
	"fmt"
)

// Core error taxonomy. Services wrap these with context via fmt.Errorf
// and %w; the handler layer maps them onto HTTP status codes.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrAccountDisabled  = errors.New("account disabled")
	ErrAccountBanned    = errors.New("account banned")
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("already exists")
	ErrMalformedInput   = errors.New("malformed input")
	ErrDataIntegrity    = errors.New("data integrity violation")
	ErrVoteConflict     = errors.New("concurrent vote conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Token validation failures. All of them unwrap to ErrUnauthorized so
// callers can gate on a single sentinel while still distinguishing the
// failure mode.
var (
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("%w: invalid token signature", ErrUnauthorized)
	ErrTokenMalformed = fmt.Errorf("%w: malformed token claims", ErrUnauthorized)
)
