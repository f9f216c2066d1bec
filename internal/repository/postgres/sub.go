package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/violethawk/server/internal/model"
)

var _ model.SubStore = (*SubRepository)(nil)

type SubRepository struct {
	db *Connection
}

func NewSubRepository(db *Connection) *SubRepository {
	return &SubRepository{
		db: db,
	}
}

func scanSub(row pgx.Row) (model.Sub, error) {
	var sub model.Sub
	err := row.Scan(&sub.ID, &sub.Title, &sub.Description, &sub.Owner, &sub.CreatedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sub{}, model.ErrNotFound
		}
		return model.Sub{}, storeErr(err)
	}
	return sub, nil
}

func (r *SubRepository) Create(ctx context.Context, sub model.Sub) (model.Sub, error) {
	query := `INSERT INTO subs (id, title, description, owner_id, created_date)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, sub.ID, sub.Title, sub.Description, sub.Owner, sub.CreatedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Sub{}, fmt.Errorf("%w: sub with title %q", model.ErrDuplicate, sub.Title)
		}
		return model.Sub{}, fmt.Errorf("failed to create sub: %w", storeErr(err))
	}

	return sub, nil
}

func (r *SubRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Sub, error) {
	query := `SELECT s.id, s.title, s.description, s.owner_id, s.created_date FROM subs s WHERE s.id = $1`
	return scanSub(r.db.QueryRow(ctx, query, id))
}

func (r *SubRepository) GetByTitle(ctx context.Context, title string) (model.Sub, error) {
	query := `SELECT s.id, s.title, s.description, s.owner_id, s.created_date FROM subs s WHERE s.title = $1`
	return scanSub(r.db.QueryRow(ctx, query, title))
}
