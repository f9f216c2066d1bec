package auth

import "github.com/violethawk/server/internal/model"

// The guard signals denial as a false result, never an error, so the
// calling layer chooses the user-facing status.

// CanRead reports whether the principal (nil for guests) may read the
// resource: public resources are open to all, private ones to their
// owner and administrators.
func CanRead(p *model.Principal, res model.Resource) bool {
	if res.ResourcePublic() {
		return true
	}
	if p == nil {
		return false
	}
	return p.Admin || res.ResourceOwner() == p.ID
}

// CanWrite reports whether the principal may mutate the resource.
// Guests can never write.
func CanWrite(p *model.Principal, res model.Resource) bool {
	if p == nil {
		return false
	}
	return p.Admin || res.ResourceOwner() == p.ID
}

// CanModerate reports whether the principal may bypass ownership for
// administrative operations such as forced deletion.
func CanModerate(p *model.Principal) bool {
	return p != nil && p.Admin
}
