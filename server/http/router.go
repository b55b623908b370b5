package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	cmpHnd "price-recon-service/internal/compare/handler"
	"price-recon-service/internal/config"
	"price-recon-service/internal/middleware"
	"price-recon-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)

	r.Get("/extract", cmpHnd.Extract(logger))
	r.Get("/match", cmpHnd.Match(logger))
	r.Post("/compare", cmpHnd.Compare(cfg, logger))

	return r
}
