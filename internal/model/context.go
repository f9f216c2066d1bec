package model

import "context"

// ContextManager stores and retrieves the resolved principal on a
// request context. A nil principal with ok=true means the request was
// resolved as a guest.
type ContextManager interface {
	SetPrincipal(ctx context.Context, p *Principal) context.Context
	GetPrincipal(ctx context.Context) (*Principal, bool)
}
