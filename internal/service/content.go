package service

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"

	"github.com/violethawk/server/internal/auth"
	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
)

// Content handles posts, comments and subs. All access decisions go
// through the authorization guard; votes are not handled here.
type Content struct {
	posts    model.PostStore
	comments model.CommentStore
	subs     model.SubStore
	storage  model.Storage
	clock    model.Clock
	logger   *logger.Logger
}

// NewContent creates the content service.
func NewContent(
	posts model.PostStore,
	comments model.CommentStore,
	subs model.SubStore,
	storage model.Storage,
	clock model.Clock,
	logger *logger.Logger,
) *Content {
	return &Content{
		posts:    posts,
		comments: comments,
		subs:     subs,
		storage:  storage,
		clock:    clock,
		logger:   logger,
	}
}

// Attachment is a file to store alongside a post.
type Attachment struct {
	Name   string
	Reader io.Reader
}

// CreatePostParams contains the post creation fields.
type CreatePostParams struct {
	Title       string
	Content     string
	Published   bool
	SubTitle    string
	Tags        []string
	Keywords    []string
	Attachments []Attachment
}

// CreatePost creates a post owned by the principal, optionally
// attached to a sub and with uploaded files.
func (s *Content) CreatePost(ctx context.Context, principal *model.Principal, params CreatePostParams) (model.Post, error) {
	if principal == nil {
		return model.Post{}, fmt.Errorf("%w: authentication required to create posts", model.ErrUnauthorized)
	}
	if params.Title == "" {
		return model.Post{}, fmt.Errorf("%w: post title is required", model.ErrMalformedInput)
	}

	var subID *uuid.UUID
	if params.SubTitle != "" {
		sub, err := s.subs.GetByTitle(ctx, params.SubTitle)
		if err != nil {
			return model.Post{}, fmt.Errorf("failed to resolve sub %q: %w", params.SubTitle, err)
		}
		subID = &sub.ID
	}

	now := s.clock.Now()
	post := model.Post{
		ID:           uuid.New(),
		Title:        params.Title,
		Content:      params.Content,
		Creator:      principal.ID,
		Modifier:     principal.ID,
		Owner:        principal.ID,
		SubID:        subID,
		Published:    params.Published,
		Tags:         params.Tags,
		Keywords:     params.Keywords,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if params.Published {
		post.PublishedDate = &now
	}

	for _, att := range params.Attachments {
		name := fmt.Sprintf("%s/%s", post.ID, att.Name)
		if err := s.storage.Upload(ctx, name, att.Reader); err != nil {
			return model.Post{}, fmt.Errorf("failed to store attachment %q: %w", att.Name, err)
		}
		post.Files = append(post.Files, name)
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Content service: post created", "post_id", created.ID, "owner", principal.ID)

	return created, nil
}

// GetPost returns the post when the principal may read it. Unreadable
// posts are reported as not found so their existence does not leak.
func (s *Content) GetPost(ctx context.Context, principal *model.Principal, id uuid.UUID) (model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	if !auth.CanRead(principal, post) {
		return model.Post{}, fmt.Errorf("%w: post %s", model.ErrNotFound, id)
	}
	return post, nil
}

// inFeed reports whether a post belongs in the principal's feed:
// readable, and not authored by someone the principal has blocked.
func inFeed(principal *model.Principal, post model.Post) bool {
	if !auth.CanRead(principal, post) {
		return false
	}
	if principal != nil && principal.HasBlocked(post.Owner) {
		return false
	}
	return true
}

// ListPosts returns up to limit posts readable by the principal.
func (s *Content) ListPosts(ctx context.Context, principal *model.Principal, limit int) ([]model.Post, error) {
	posts, err := s.posts.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	readable := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if inFeed(principal, p) {
			readable = append(readable, p)
		}
	}
	return readable, nil
}

// ListSubPosts returns up to limit readable posts attached to a sub.
func (s *Content) ListSubPosts(ctx context.Context, principal *model.Principal, subTitle string, limit int) ([]model.Post, error) {
	sub, err := s.subs.GetByTitle(ctx, subTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sub %q: %w", subTitle, err)
	}

	posts, err := s.posts.ListBySub(ctx, sub.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for sub: %w", err)
	}

	readable := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if inFeed(principal, p) {
			readable = append(readable, p)
		}
	}
	return readable, nil
}

// UpdatePostParams contains the mutable post fields.
type UpdatePostParams struct {
	Title     *string
	Content   *string
	Published *bool
	Tags      []string
	Keywords  []string
}

// UpdatePost applies changes to a post the principal may write.
func (s *Content) UpdatePost(ctx context.Context, principal *model.Principal, id uuid.UUID, params UpdatePostParams) (model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	if !auth.CanWrite(principal, post) {
		return model.Post{}, fmt.Errorf("%w: no write access to post %s", model.ErrForbidden, id)
	}

	now := s.clock.Now()
	if params.Title != nil {
		post.Title = *params.Title
	}
	if params.Content != nil {
		post.Content = *params.Content
	}
	if params.Published != nil {
		post.Published = *params.Published
		if *params.Published {
			post.PublishedDate = &now
		} else {
			post.PublishedDate = nil
		}
	}
	if params.Tags != nil {
		post.Tags = params.Tags
	}
	if params.Keywords != nil {
		post.Keywords = params.Keywords
	}
	post.Modifier = principal.ID
	post.ModifiedDate = now

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to update post: %w", err)
	}
	return updated, nil
}

// DeletePost removes a post the principal owns, or any post for a
// moderator, together with its stored attachments.
func (s *Content) DeletePost(ctx context.Context, principal *model.Principal, id uuid.UUID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}
	if !auth.CanWrite(principal, post) && !auth.CanModerate(principal) {
		return fmt.Errorf("%w: no write access to post %s", model.ErrForbidden, id)
	}

	for _, name := range post.Files {
		if err := s.storage.Delete(ctx, name); err != nil {
			// The post row is the source of truth; orphaned files get
			// logged for cleanup rather than blocking the delete.
			s.logger.Error("Content service: failed to delete attachment",
				"post_id", id,
				"file", name,
				"error", err.Error())
		}
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Content service: post deleted", "post_id", id, "principal", principal.ID)

	return nil
}

// OpenAttachment streams a stored attachment of a post the principal
// may read. The caller closes the returned reader.
func (s *Content) OpenAttachment(ctx context.Context, principal *model.Principal, postID uuid.UUID, name string) (io.ReadCloser, error) {
	post, err := s.GetPost(ctx, principal, postID)
	if err != nil {
		return nil, err
	}

	stored := fmt.Sprintf("%s/%s", post.ID, name)
	if !slices.Contains(post.Files, stored) {
		return nil, fmt.Errorf("%w: attachment %q", model.ErrNotFound, name)
	}

	exists, err := s.storage.Exists(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if !exists {
		// Recorded on the post but gone from the bucket.
		return nil, fmt.Errorf("%w: attachment %q has no stored object", model.ErrDataIntegrity, name)
	}

	reader, err := s.storage.Download(ctx, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to download attachment: %w", err)
	}
	return reader, nil
}

// CreateComment attaches a comment to a post readable by the principal.
func (s *Content) CreateComment(ctx context.Context, principal *model.Principal, postID uuid.UUID, content string) (model.Comment, error) {
	if principal == nil {
		return model.Comment{}, fmt.Errorf("%w: authentication required to comment", model.ErrUnauthorized)
	}
	if content == "" {
		return model.Comment{}, fmt.Errorf("%w: comment content is required", model.ErrMalformedInput)
	}

	if _, err := s.GetPost(ctx, principal, postID); err != nil {
		return model.Comment{}, err
	}

	now := s.clock.Now()
	comment := model.Comment{
		ID:           uuid.New(),
		PostID:       postID,
		Content:      content,
		Owner:        principal.ID,
		CreatedDate:  now,
		ModifiedDate: now,
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return created, nil
}

// ListComments returns up to limit comments on a post readable by the
// principal.
func (s *Content) ListComments(ctx context.Context, principal *model.Principal, postID uuid.UUID, limit int) ([]model.Comment, error) {
	if _, err := s.GetPost(ctx, principal, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment the principal owns, or any comment
// for a moderator.
func (s *Content) DeleteComment(ctx context.Context, principal *model.Principal, id uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get comment by id: %w", err)
	}
	if !auth.CanWrite(principal, comment) && !auth.CanModerate(principal) {
		return fmt.Errorf("%w: no write access to comment %s", model.ErrForbidden, id)
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// CreateSub creates a sub-forum owned by the principal.
func (s *Content) CreateSub(ctx context.Context, principal *model.Principal, title, description string) (model.Sub, error) {
	if principal == nil {
		return model.Sub{}, fmt.Errorf("%w: authentication required to create subs", model.ErrUnauthorized)
	}
	if title == "" {
		return model.Sub{}, fmt.Errorf("%w: sub title is required", model.ErrMalformedInput)
	}

	sub := model.Sub{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Owner:       principal.ID,
		CreatedDate: s.clock.Now(),
	}

	created, err := s.subs.Create(ctx, sub)
	if err != nil {
		return model.Sub{}, fmt.Errorf("failed to create sub: %w", err)
	}
	return created, nil
}
