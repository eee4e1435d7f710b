package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/simpleboard/backend/internal/setup"
	"github.com/itchan-dev/simpleboard/shared/api"
	mw "github.com/itchan-dev/simpleboard/shared/middleware"
	"github.com/itchan-dev/simpleboard/shared/middleware/metrics"
	rl "github.com/itchan-dev/simpleboard/shared/middleware/ratelimiter"
)

// JSON API only, no scripts or styles
const backendCSP = "default-src 'none'; frame-ancestors 'none'"

// New creates and configures a new chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", api.IdentityHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies, backendCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(authMw.Viewer())
		v1.Use(mw.GlobalRateLimit(rl.Rps1000()))

		// Login endpoint (separate rate limiting)
		v1.With(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)).Post("/auth/login", h.Login)
		v1.Post("/auth/logout", h.Logout)

		// Reads are open to anyone, including callers without an identity
		v1.Group(func(read chi.Router) {
			read.Use(mw.RateLimit(rl.Rps100(), mw.GetIdentityOrIP))

			read.Get("/boards", h.ListBoards)
			read.Get("/boards/{board}", h.GetBoard)
			read.Get("/boards/{board}/categories", h.ListCategories)
			read.Get("/boards/{board}/items", h.ListContentItems)
			read.Get("/items/{item}", h.GetContentItem)
			read.Get("/items/{item}/likes", h.GetLikes)
			read.Get("/media/*", h.ServeMedia)
			read.Get("/boards/{board}/feed", h.Feed)
		})

		// Writes need an identity token; ownership is checked below the handlers
		v1.Group(func(write chi.Router) {
			write.Use(authMw.NeedIdentity())
			write.Use(mw.RateLimit(rl.Rps10(), mw.GetIdentityOrIP))

			write.Post("/boards", h.CreateBoard)
			write.Post("/boards/{board}/items", h.CreateContentItem)
			write.Patch("/items/{item}", h.UpdateContentItem)
			write.Delete("/items/{item}", h.DeleteContentItem)
			write.Post("/items/{item}/likes", h.AddLike)
			write.Delete("/items/{item}/likes", h.RemoveLike)
			// Uploads: 1 per second per identity
			write.With(mw.RateLimit(rl.New(1, 3, time.Hour), mw.GetIdentityOrIP)).Post("/boards/{board}/media", h.UploadMedia)
		})

		// Admin routes
		v1.Group(func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())

			admin.Patch("/boards/{board}", h.UpdateBoard)
			admin.Delete("/boards/{board}", h.DeleteBoard)
			admin.Post("/boards/{board}/categories", h.CreateCategory)
			admin.Patch("/categories/{category}", h.UpdateCategory)
			admin.Put("/categories/{category}/position", h.UpdateCategoryPosition)
			admin.Delete("/categories/{category}", h.DeleteCategory)
		})
	})

	return r
}
