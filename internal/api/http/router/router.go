// Package router wires the HTTP surface: public reads run on the
// optional tier, mutations require a bearer credential and vote routes
// run on the browser tier where auth failures degrade to guest.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/violethawk/server/internal/api/http/handler"
	"github.com/violethawk/server/internal/api/http/middleware"
)

const requestTimeout = 30 * time.Second

// New assembles the route tree.
func New(
	logging *middleware.Logging,
	authenticate *middleware.Authenticate,
	auth *handler.Auth,
	content *handler.Content,
	vote *handler.Vote,
	user *handler.User,
) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Handle)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)
		r.With(authenticate.Require).Post("/auth/password", auth.ChangePassword)

		// Reads: guests welcome, bad credentials still rejected.
		r.Group(func(r chi.Router) {
			r.Use(authenticate.Optional)

			r.Get("/posts", content.ListPosts)
			r.Get("/posts/{id}", content.GetPost)
			r.Get("/posts/{id}/comments", content.ListComments)
			r.Get("/posts/{id}/files/{name}", content.GetAttachment)
			r.Get("/subs/{title}/posts", content.ListSubPosts)
			r.Get("/users/{id}", user.GetProfile)
		})

		// Mutations: credential required.
		r.Group(func(r chi.Router) {
			r.Use(authenticate.Require)

			r.Post("/posts", content.CreatePost)
			r.Patch("/posts/{id}", content.UpdatePost)
			r.Delete("/posts/{id}", content.DeletePost)
			r.Post("/posts/{id}/comments", content.CreateComment)
			r.Delete("/comments/{id}", content.DeleteComment)
			r.Post("/subs", content.CreateSub)
			r.Post("/users/{id}/block", user.Block)
			r.Patch("/users/{id}/status", user.SetStatus)
		})

		// Votes: cookie or bearer, failures degrade to guest and the
		// engine decides whether guests may vote.
		r.Group(func(r chi.Router) {
			r.Use(authenticate.Browser)

			r.Post("/posts/{id}/upvote", vote.UpvotePost)
			r.Post("/posts/{id}/downvote", vote.DownvotePost)
			r.Post("/comments/{id}/upvote", vote.UpvoteComment)
			r.Post("/comments/{id}/downvote", vote.DownvoteComment)
		})
	})

	return r
}
