package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/service"
)

const defaultListLimit = 50

// maxAttachmentMemory bounds the in-memory part of multipart parsing;
// larger files spill to disk.
const maxAttachmentMemory = 32 << 20

// Content exposes post, comment and sub endpoints.
type Content struct {
	content        *service.Content
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContent creates the content handler.
func NewContent(content *service.Content, contextManager model.ContextManager, logger *logger.Logger) *Content {
	return &Content{
		content:        content,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Content) principal(r *http.Request) *model.Principal {
	p, _ := h.contextManager.GetPrincipal(r.Context())
	return p
}

type postResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Owner         uuid.UUID  `json:"owner"`
	SubID         *uuid.UUID `json:"sub_id,omitempty"`
	Published     bool       `json:"published"`
	Votes         int64      `json:"votes"`
	Files         []string   `json:"files,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Keywords      []string   `json:"keywords,omitempty"`
	CreatedDate   time.Time  `json:"created_date"`
	ModifiedDate  time.Time  `json:"modified_date"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Owner:         p.Owner,
		SubID:         p.SubID,
		Published:     p.Published,
		Votes:         p.Votes,
		Files:         p.Files,
		Tags:          p.Tags,
		Keywords:      p.Keywords,
		CreatedDate:   p.CreatedDate,
		ModifiedDate:  p.ModifiedDate,
		PublishedDate: p.PublishedDate,
	}
}

type createPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	Sub       string   `json:"sub"`
	Tags      []string `json:"tags"`
	Keywords  []string `json:"keywords"`
}

// CreatePost handles POST /api/posts. JSON bodies carry the post
// fields; multipart bodies additionally carry file attachments.
func (h *Content) CreatePost(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseCreatePost(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	post, err := h.content.CreatePost(r.Context(), h.principal(r), params)
	if err != nil {
		h.logger.Debug("post creation rejected", "error", err.Error())
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *Content) parseCreatePost(r *http.Request) (service.CreatePostParams, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return service.CreatePostParams{}, model.ErrMalformedInput
		}
		return service.CreatePostParams{
			Title:     req.Title,
			Content:   req.Content,
			Published: req.Published,
			SubTitle:  req.Sub,
			Tags:      req.Tags,
			Keywords:  req.Keywords,
		}, nil
	}

	if err := r.ParseMultipartForm(maxAttachmentMemory); err != nil {
		return service.CreatePostParams{}, model.ErrMalformedInput
	}

	params := service.CreatePostParams{
		Title:     r.FormValue("title"),
		Content:   r.FormValue("content"),
		Published: r.FormValue("published") == "true",
		SubTitle:  r.FormValue("sub"),
		Tags:      splitList(r.FormValue("tags")),
		Keywords:  splitList(r.FormValue("keywords")),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			file, err := header.Open()
			if err != nil {
				return service.CreatePostParams{}, model.ErrMalformedInput
			}
			params.Attachments = append(params.Attachments, service.Attachment{
				Name:   header.Filename,
				Reader: file,
			})
		}
	}

	return params, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// GetPost handles GET /api/posts/{id}.
func (h *Content) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	post, err := h.content.GetPost(r.Context(), h.principal(r), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// ListPosts handles GET /api/posts.
func (h *Content) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts(r.Context(), h.principal(r), listLimit(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func listLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	return limit
}

type updatePostRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Published *bool    `json:"published"`
	Tags      []string `json:"tags"`
	Keywords  []string `json:"keywords"`
}

// UpdatePost handles PATCH /api/posts/{id}.
func (h *Content) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	post, err := h.content.UpdatePost(r.Context(), h.principal(r), id, service.UpdatePostParams{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		Tags:      req.Tags,
		Keywords:  req.Keywords,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Content) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	if err := h.content.DeletePost(r.Context(), h.principal(r), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAttachment handles GET /api/posts/{id}/files/{name}.
func (h *Content) GetAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}
	name := chi.URLParam(r, "name")

	reader, err := h.content.OpenAttachment(r.Context(), h.principal(r), id, name)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream attachment", "post_id", id, "file", name, "error", err.Error())
	}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	Content     string    `json:"content"`
	Owner       uuid.UUID `json:"owner"`
	Votes       int64     `json:"votes"`
	CreatedDate time.Time `json:"created_date"`
}

func toCommentResponse(c model.Comment) commentResponse {
	return commentResponse{
		ID:          c.ID,
		PostID:      c.PostID,
		Content:     c.Content,
		Owner:       c.Owner,
		Votes:       c.Votes,
		CreatedDate: c.CreatedDate,
	}
}

// CreateComment handles POST /api/posts/{id}/comments.
func (h *Content) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	comment, err := h.content.CreateComment(r.Context(), h.principal(r), postID, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListComments handles GET /api/posts/{id}/comments.
func (h *Content) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	comments, err := h.content.ListComments(r.Context(), h.principal(r), postID, listLimit(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteComment handles DELETE /api/comments/{id}.
func (h *Content) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	if err := h.content.DeleteComment(r.Context(), h.principal(r), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createSubRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type subResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       uuid.UUID `json:"owner"`
}

// CreateSub handles POST /api/subs.
func (h *Content) CreateSub(w http.ResponseWriter, r *http.Request) {
	var req createSubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	sub, err := h.content.CreateSub(r.Context(), h.principal(r), req.Title, req.Description)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, subResponse{
		ID:          sub.ID,
		Title:       sub.Title,
		Description: sub.Description,
		Owner:       sub.Owner,
	})
}

// ListSubPosts handles GET /api/subs/{title}/posts.
func (h *Content) ListSubPosts(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	posts, err := h.content.ListSubPosts(r.Context(), h.principal(r), title, listLimit(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}
