package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/violethawk/server/internal/model"
)

var _ model.CommentStore = (*CommentRepository)(nil)

type CommentRepository struct {
	db *Connection
}

func NewCommentRepository(db *Connection) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

const commentColumns = `c.id, c.post_id, c.content, c.owner_id, c.votes, c.created_date, c.modified_date`

func scanComment(row pgx.Row) (model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Content, &comment.Owner, &comment.Votes,
		&comment.CreatedDate, &comment.ModifiedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, model.ErrNotFound
		}
		return model.Comment{}, storeErr(err)
	}
	return comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO comments (id, post_id, content, owner_id, votes, created_date, modified_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		comment.ID, comment.PostID, comment.Content, comment.Owner, comment.Votes,
		comment.CreatedDate, comment.ModifiedDate,
	)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", storeErr(err))
	}

	return comment, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments c WHERE c.id = $1`
	return scanComment(r.db.QueryRow(ctx, query, id))
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments c WHERE c.post_id = $1 ORDER BY c.created_date ASC LIMIT $2`

	rows, err := r.db.Query(ctx, query, postID, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
