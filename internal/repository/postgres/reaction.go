package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/violethawk/server/internal/model"
)

var _ model.ReactionStore = (*ReactionRepository)(nil)

type ReactionRepository struct {
	db *Connection
}

func NewReactionRepository(db *Connection) *ReactionRepository {
	return &ReactionRepository{
		db: db,
	}
}

func scoreTable(kind model.TargetKind) (string, error) {
	switch kind {
	case model.TargetPost:
		return "posts", nil
	case model.TargetComment:
		return "comments", nil
	default:
		return "", fmt.Errorf("%w: unknown target kind %q", model.ErrMalformedInput, kind)
	}
}

func stateFromEdges(kinds []string) (model.ReactionState, error) {
	switch len(kinds) {
	case 0:
		return model.ReactionNone, nil
	case 1:
		if kinds[0] == "LIKES" {
			return model.ReactionLiked, nil
		}
		return model.ReactionDisliked, nil
	default:
		return "", fmt.Errorf("%w: both LIKES and DISLIKES edges present", model.ErrDataIntegrity)
	}
}

func edgeKind(state model.ReactionState) string {
	if state == model.ReactionLiked {
		return "LIKES"
	}
	return "DISLIKES"
}

func (r *ReactionRepository) GetReaction(ctx context.Context, principalID uuid.UUID, kind model.TargetKind, targetID uuid.UUID) (model.ReactionState, error) {
	query := `SELECT kind FROM reactions WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`

	rows, err := r.db.Query(ctx, query, principalID, string(kind), targetID)
	if err != nil {
		return "", fmt.Errorf("failed to get reaction: %w", storeErr(err))
	}
	defer rows.Close()

	kinds, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("failed to collect reaction edges: %w", storeErr(err))
	}

	return stateFromEdges(kinds)
}

// ApplyTransition rewrites the principal's reaction edges and moves the
// target's cached score in one transaction. The edge rows for the pair
// are locked and the observed state re-checked against t.From, so a
// concurrent vote on the same pair surfaces as ErrVoteConflict instead
// of a double-applied delta.
func (r *ReactionRepository) ApplyTransition(ctx context.Context, t model.ReactionTransition) (int64, error) {
	table, err := scoreTable(t.Kind)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer tx.Rollback(ctx)

	// A nil principal is a score-only transition: guests move the
	// counter but never own an edge.
	if t.PrincipalID != uuid.Nil {
		rows, err := tx.Query(ctx,
			`SELECT kind FROM reactions WHERE user_id = $1 AND target_kind = $2 AND target_id = $3 FOR UPDATE`,
			t.PrincipalID, string(t.Kind), t.TargetID)
		if err != nil {
			return 0, fmt.Errorf("failed to lock reaction edges: %w", storeErr(err))
		}
		kinds, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return 0, fmt.Errorf("failed to collect reaction edges: %w", storeErr(err))
		}

		current, err := stateFromEdges(kinds)
		if err != nil {
			return 0, err
		}
		if current != t.From {
			return 0, fmt.Errorf("%w: state changed from %s to %s", model.ErrVoteConflict, t.From, current)
		}

		if current != t.To {
			if current != model.ReactionNone {
				_, err = tx.Exec(ctx,
					`DELETE FROM reactions WHERE user_id = $1 AND target_kind = $2 AND target_id = $3`,
					t.PrincipalID, string(t.Kind), t.TargetID)
				if err != nil {
					return 0, fmt.Errorf("failed to delete reaction edge: %w", storeErr(err))
				}
			}
			if t.To != model.ReactionNone {
				_, err = tx.Exec(ctx,
					`INSERT INTO reactions (user_id, target_kind, target_id, kind) VALUES ($1, $2, $3, $4)`,
					t.PrincipalID, string(t.Kind), t.TargetID, edgeKind(t.To))
				if err != nil {
					// Two first votes on the same pair race on the unique
					// constraint rather than on locked rows.
					if isUniqueViolation(err) {
						return 0, fmt.Errorf("%w: concurrent vote on same target", model.ErrVoteConflict)
					}
					return 0, fmt.Errorf("failed to insert reaction edge: %w", storeErr(err))
				}
			}
		}
	}

	var score int64
	query := fmt.Sprintf(`UPDATE %s SET votes = votes + $2 WHERE id = $1 RETURNING votes`, table)
	err = tx.QueryRow(ctx, query, t.TargetID, t.ScoreDelta).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s %s", model.ErrNotFound, t.Kind, t.TargetID)
		}
		return 0, fmt.Errorf("failed to update cached score: %w", storeErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", storeErr(err))
	}

	return score, nil
}
