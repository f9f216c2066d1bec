package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/vote"
)

// Vote exposes the upvote and downvote endpoints for posts and
// comments.
type Vote struct {
	engine         *vote.Engine
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewVote creates the vote handler.
func NewVote(engine *vote.Engine, contextManager model.ContextManager, logger *logger.Logger) *Vote {
	return &Vote{
		engine:         engine,
		contextManager: contextManager,
		logger:         logger,
	}
}

type voteResponse struct {
	Score int64  `json:"score"`
	State string `json:"state"`
}

func (h *Vote) vote(w http.ResponseWriter, r *http.Request, kind model.TargetKind, action model.VoteAction) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	principal, _ := h.contextManager.GetPrincipal(r.Context())

	result, err := h.engine.Vote(r.Context(), principal, kind, targetID, action)
	if err != nil {
		if errors.Is(err, model.ErrDataIntegrity) {
			// Corrupt edge state needs an operator, not a client retry.
			h.logger.Error("conflicting reaction edges for target",
				"kind", kind,
				"target", targetID,
				"error", err.Error())
		} else {
			h.logger.Debug("vote rejected",
				"kind", kind,
				"target", targetID,
				"action", action,
				"error", err.Error())
		}
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{Score: result.Score, State: string(result.State)})
}

// UpvotePost handles POST /api/posts/{id}/upvote.
func (h *Vote) UpvotePost(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.TargetPost, model.ActionUpvote)
}

// DownvotePost handles POST /api/posts/{id}/downvote.
func (h *Vote) DownvotePost(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.TargetPost, model.ActionDownvote)
}

// UpvoteComment handles POST /api/comments/{id}/upvote.
func (h *Vote) UpvoteComment(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.TargetComment, model.ActionUpvote)
}

// DownvoteComment handles POST /api/comments/{id}/downvote.
func (h *Vote) DownvoteComment(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, model.TargetComment, model.ActionDownvote)
}
