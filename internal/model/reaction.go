package model

import (
	"context"

	"github.com/google/uuid"
)

// ReactionState is the relationship between a principal and a reactable
// target. Exactly one state holds at any time.
type ReactionState string

const (
	ReactionNone     ReactionState = "NONE"
	ReactionLiked    ReactionState = "LIKED"
	ReactionDisliked ReactionState = "DISLIKED"
)

// VoteAction is a reaction request from a principal.
type VoteAction string

const (
	ActionUpvote   VoteAction = "upvote"
	ActionDownvote VoteAction = "downvote"
)

// TargetKind identifies which entity a reaction attaches to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// ReactionTransition describes one atomic edge rewrite plus cached
// score adjustment. From is the state observed before the transition;
// the store must re-check it under the pair lock and fail with
// ErrVoteConflict if a concurrent vote changed it.
type ReactionTransition struct {
	PrincipalID uuid.UUID
	Kind        TargetKind
	TargetID    uuid.UUID
	From        ReactionState
	To          ReactionState
	ScoreDelta  int
}

// VoteResult reports the target's new cached score and the principal's
// new reaction state after a vote.
type VoteResult struct {
	Score int64
	State ReactionState
}

// ReactionStore defines the relationship-edge operations the vote
// engine depends on. ApplyTransition must mutate the edge set and the
// cached score in a single transaction: partial application is an
// invariant violation.
type ReactionStore interface {
	// GetReaction resolves the current state from existing edges.
	// Returns ErrDataIntegrity when both a LIKES and a DISLIKES edge
	// exist for the same pair.
	GetReaction(ctx context.Context, principalID uuid.UUID, kind TargetKind, targetID uuid.UUID) (ReactionState, error)
	// ApplyTransition atomically rewrites the edges to match t.To and
	// applies t.ScoreDelta to the target's cached score, returning the
	// new score.
	ApplyTransition(ctx context.Context, t ReactionTransition) (int64, error)
}
