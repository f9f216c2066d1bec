package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/violethawk/server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

const postColumns = `p.id, p.title, p.content, p.creator_id, p.modifier_id, p.owner_id, p.sub_id,
			  p.published, p.votes, p.files, p.tags, p.keywords, p.created_date, p.modified_date, p.published_date`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Creator, &post.Modifier, &post.Owner, &post.SubID,
		&post.Published, &post.Votes, &post.Files, &post.Tags, &post.Keywords,
		&post.CreatedDate, &post.ModifiedDate, &post.PublishedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, storeErr(err)
	}
	return post, nil
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, title, content, creator_id, modifier_id, owner_id, sub_id, published, votes, files, tags, keywords, created_date, modified_date, published_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Content, post.Creator, post.Modifier, post.Owner, post.SubID,
		post.Published, post.Votes, post.Files, post.Tags, post.Keywords,
		post.CreatedDate, post.ModifiedDate, post.PublishedDate,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", storeErr(err))
	}

	return post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`
	return scanPost(r.db.QueryRow(ctx, query, id))
}

func (r *PostRepository) List(ctx context.Context, limit int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p ORDER BY p.created_date DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostRepository) ListBySub(ctx context.Context, subID uuid.UUID, limit int) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.sub_id = $1 ORDER BY p.created_date DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, subID, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	// Votes is deliberately absent: the cached score only moves through
	// reaction transitions.
	query := `UPDATE posts
			  SET title = $2, content = $3, modifier_id = $4, published = $5,
			      tags = $6, keywords = $7, modified_date = $8, published_date = $9
			  WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Content, post.Modifier, post.Published,
		post.Tags, post.Keywords, post.ModifiedDate, post.PublishedDate,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.Post{}, model.ErrNotFound
	}

	return r.GetByID(ctx, post.ID)
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
