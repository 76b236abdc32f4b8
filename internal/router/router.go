package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-course-store/internal/config"
	"go-course-store/internal/handler"
	"go-course-store/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Catalog  *handler.CatalogHandler
	Purchase *handler.PurchaseHandler
	Download *handler.DownloadHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/register", h.Auth.Register)
		api.Post("/login", h.Auth.Login)
		api.Get("/courses", h.Catalog.List)

		api.With(authMiddleware.RequireAuth).Get("/users/me", h.User.Me)
		api.With(authMiddleware.RequireAuth).Post("/users/change-password", h.User.ChangePassword)
		api.With(authMiddleware.RequireAuth).Post("/purchase", h.Purchase.Purchase)
		api.With(authMiddleware.RequireAuth).Get("/download/{video_id}", h.Download.Download)
	})

	return r
}
