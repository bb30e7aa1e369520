package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inkpress/internal/handler"
	"inkpress/internal/httputil"
	authmw "inkpress/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	CommentHandler      *handler.CommentHandler
	BookmarkHandler     *handler.BookmarkHandler
	FollowHandler       *handler.FollowHandler
	TopicHandler        *handler.TopicHandler
	NotificationHandler *handler.NotificationHandler
	MediaHandler        *handler.MediaHandler
	JWTSecret           string
}

// NewRouter creates and configures a Chi router with all route groups.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	auth := authmw.Auth(cfg.JWTSecret)
	optAuth := authmw.OptionalAuth(cfg.JWTSecret)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(optAuth).Get("/", cfg.PostHandler.List)
		r.With(auth).Post("/", cfg.PostHandler.Create)
		r.With(auth).Get("/feed", cfg.PostHandler.Feed)
		r.With(auth).Get("/drafts", cfg.PostHandler.Drafts)

		r.Route("/{id}", func(r chi.Router) {
			r.With(optAuth).Get("/", cfg.PostHandler.Get)
			r.With(auth).Put("/", cfg.PostHandler.Update)
			r.With(auth).Delete("/", cfg.PostHandler.Delete)
			r.With(auth).Post("/publish", cfg.PostHandler.Publish)
			r.With(auth).Post("/claps", cfg.PostHandler.Clap)
			r.Get("/comments", cfg.CommentHandler.List)
			r.With(auth).Post("/comments", cfg.CommentHandler.Create)
		})
	})

	r.Route("/comments/{id}", func(r chi.Router) {
		r.With(auth).Put("/", cfg.CommentHandler.Update)
		r.With(auth).Delete("/", cfg.CommentHandler.Delete)
		r.With(auth).Post("/claps", cfg.CommentHandler.Clap)
		r.Get("/replies", cfg.CommentHandler.Replies)
		r.Get("/stats", cfg.CommentHandler.Stats)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/username/{username}", cfg.UserHandler.GetByUsername)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.UserHandler.Get)
			r.With(auth).Put("/", cfg.UserHandler.Update)
			r.With(auth).Put("/password", cfg.UserHandler.ChangePassword)
			r.With(auth).Post("/avatar", cfg.UserHandler.UploadAvatar)
			r.Get("/posts", cfg.UserHandler.Posts)
			r.Get("/stats", cfg.UserHandler.Stats)
			r.With(auth).Get("/bookmarks", cfg.UserHandler.Bookmarks)
			r.With(auth).Get("/history", cfg.UserHandler.History)
		})
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", cfg.BookmarkHandler.List)
		r.Post("/", cfg.BookmarkHandler.Add)
		r.Delete("/", cfg.BookmarkHandler.Remove)
	})

	r.Route("/follow/{id}", func(r chi.Router) {
		r.With(auth).Get("/", cfg.FollowHandler.Status)
		r.With(auth).Post("/", cfg.FollowHandler.Follow)
		r.With(auth).Delete("/", cfg.FollowHandler.Unfollow)
		r.Get("/followers", cfg.FollowHandler.Followers)
		r.Get("/following", cfg.FollowHandler.Following)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", cfg.NotificationHandler.List)
		r.Put("/read", cfg.NotificationHandler.MarkAllRead)
	})

	r.Route("/topics", func(r chi.Router) {
		r.Get("/", cfg.TopicHandler.List)
		r.With(auth).Post("/", cfg.TopicHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.TopicHandler.Get)
			r.Get("/posts", cfg.TopicHandler.Posts)
			r.With(auth).Post("/follow", cfg.TopicHandler.Follow)
			r.With(auth).Delete("/follow", cfg.TopicHandler.Unfollow)
		})
	})

	r.With(auth).Post("/media/covers/presign", cfg.MediaHandler.PresignCover)

	return r
}
