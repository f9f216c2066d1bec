package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resource exposes the ownership and visibility attributes the
// authorization guard decides on.
type Resource interface {
	ResourceOwner() uuid.UUID
	ResourcePublic() bool
}

// Post is a reactable content entity carrying a cached vote score.
// Votes is a reduction of the reaction edges and is only ever written
// through ReactionStore.ApplyTransition.
type Post struct {
	ID            uuid.UUID
	Title         string
	Content       string
	Creator       uuid.UUID
	Modifier      uuid.UUID
	Owner         uuid.UUID
	SubID         *uuid.UUID
	Published     bool
	Votes         int64
	Files         []string
	Tags          []string
	Keywords      []string
	CreatedDate   time.Time
	ModifiedDate  time.Time
	PublishedDate *time.Time
}

func (p Post) ResourceOwner() uuid.UUID { return p.Owner }
func (p Post) ResourcePublic() bool     { return p.Published }

// Comment is a reactable reply attached to a post.
type Comment struct {
	ID           uuid.UUID
	PostID       uuid.UUID
	Content      string
	Owner        uuid.UUID
	Votes        int64
	CreatedDate  time.Time
	ModifiedDate time.Time
}

func (c Comment) ResourceOwner() uuid.UUID { return c.Owner }

// Comments inherit visibility from their post; the stored entity itself
// is always readable once the post is.
func (c Comment) ResourcePublic() bool { return true }

// Sub is a sub-forum grouping posts.
type Sub struct {
	ID          uuid.UUID
	Title       string
	Description string
	Owner       uuid.UUID
	CreatedDate time.Time
}

func (s Sub) ResourceOwner() uuid.UUID { return s.Owner }
func (s Sub) ResourcePublic() bool     { return true }

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	ListBySub(ctx context.Context, subID uuid.UUID, limit int) ([]Post, error)
	List(ctx context.Context, limit int) ([]Post, error)
	Update(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Create(ctx context.Context, comment Comment) (Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubStore defines persistence operations for subs.
type SubStore interface {
	Create(ctx context.Context, sub Sub) (Sub, error)
	GetByID(ctx context.Context, id uuid.UUID) (Sub, error)
	GetByTitle(ctx context.Context, title string) (Sub, error)
}
