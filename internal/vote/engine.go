// Package vote implements the reaction state machine between a
// principal and a reactable target.
package vote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
)

type transition struct {
	next  model.ReactionState
	delta int
}

// transitions is total over the 3x2 input space. Repeating an action
// toggles the reaction off; switching direction costs a double delta
// because the old edge is removed and the opposite one created.
var transitions = map[model.ReactionState]map[model.VoteAction]transition{
	model.ReactionNone: {
		model.ActionUpvote:   {next: model.ReactionLiked, delta: +1},
		model.ActionDownvote: {next: model.ReactionDisliked, delta: -1},
	},
	model.ReactionLiked: {
		model.ActionUpvote:   {next: model.ReactionNone, delta: -1},
		model.ActionDownvote: {next: model.ReactionDisliked, delta: -2},
	},
	model.ReactionDisliked: {
		model.ActionUpvote:   {next: model.ReactionLiked, delta: +2},
		model.ActionDownvote: {next: model.ReactionNone, delta: +1},
	},
}

// Transition resolves the new state and score delta for one action.
// It is a pure lookup; errors never drive control flow here.
func Transition(current model.ReactionState, action model.VoteAction) (model.ReactionState, int) {
	t := transitions[current][action]
	return t.next, t.delta
}

// Engine applies vote actions: it resolves the pair's current reaction
// state, computes the transition and hands the store one atomic edge
// rewrite plus score delta.
type Engine struct {
	reactions   model.ReactionStore
	allowGuests bool
	logger      *logger.Logger
}

// NewEngine creates a vote engine. allowGuests controls whether
// unauthenticated principals may vote; a guest vote adjusts the score
// without recording a reaction edge.
func NewEngine(reactions model.ReactionStore, allowGuests bool, logger *logger.Logger) *Engine {
	return &Engine{reactions: reactions, allowGuests: allowGuests, logger: logger}
}

// Vote applies one action from the principal (nil for guests) to the
// target and returns the target's new score together with the
// principal's new reaction state.
func (e *Engine) Vote(ctx context.Context, principal *model.Principal, kind model.TargetKind, targetID uuid.UUID, action model.VoteAction) (model.VoteResult, error) {
	if action != model.ActionUpvote && action != model.ActionDownvote {
		return model.VoteResult{}, fmt.Errorf("%w: unknown vote action %q", model.ErrMalformedInput, action)
	}

	if principal == nil {
		if !e.allowGuests {
			return model.VoteResult{}, fmt.Errorf("%w: authentication required to vote", model.ErrUnauthorized)
		}
		return e.guestVote(ctx, kind, targetID, action)
	}

	current, err := e.reactions.GetReaction(ctx, principal.ID, kind, targetID)
	if err != nil {
		return model.VoteResult{}, fmt.Errorf("failed to resolve current reaction: %w", err)
	}

	next, delta := Transition(current, action)
	score, err := e.reactions.ApplyTransition(ctx, model.ReactionTransition{
		PrincipalID: principal.ID,
		Kind:        kind,
		TargetID:    targetID,
		From:        current,
		To:          next,
		ScoreDelta:  delta,
	})
	if err != nil {
		return model.VoteResult{}, fmt.Errorf("failed to apply vote transition: %w", err)
	}

	e.logger.Debug("vote applied",
		"principal", principal.ID,
		"target", targetID,
		"kind", kind,
		"from", current,
		"to", next,
		"delta", delta)

	return model.VoteResult{Score: score, State: next}, nil
}

// guestVote adjusts the score as a fresh NONE transition without
// creating an edge: anonymous votes carry no per-pair state, so every
// guest vote counts like a first vote.
func (e *Engine) guestVote(ctx context.Context, kind model.TargetKind, targetID uuid.UUID, action model.VoteAction) (model.VoteResult, error) {
	next, delta := Transition(model.ReactionNone, action)
	score, err := e.reactions.ApplyTransition(ctx, model.ReactionTransition{
		PrincipalID: uuid.Nil,
		Kind:        kind,
		TargetID:    targetID,
		From:        model.ReactionNone,
		To:          next,
		ScoreDelta:  delta,
	})
	if err != nil {
		return model.VoteResult{}, fmt.Errorf("failed to apply guest vote: %w", err)
	}
	return model.VoteResult{Score: score, State: model.ReactionNone}, nil
}
