package model

import "github.com/google/uuid"

// Principal is the resolved identity for a single request. It is
// constructed fresh from the user record on every request and never
// cached or mutated by the core; status changes happen out-of-band.
type Principal struct {
	ID         uuid.UUID
	ScreenName string
	Admin      bool
	Blocked    []uuid.UUID
	// BindingIP is the network address the access token was issued to.
	// It is carried through for audit context but not checked against
	// the current request's address.
	BindingIP string
}

// HasBlocked reports whether the principal has blocked the given user.
func (p *Principal) HasBlocked(id uuid.UUID) bool {
	for _, b := range p.Blocked {
		if b == id {
			return true
		}
	}
	return false
}
