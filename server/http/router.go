package serverhttp

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"price-matcher/internal/config"
	"price-matcher/internal/middleware"
	pmHnd "price-matcher/internal/pricematch/handler"
	"price-matcher/internal/pricematch/service"
	"price-matcher/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	eng := service.New(cfg.Rules)
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024

	r := chi.NewRouter()

	// порядок важен: recover -> realIP -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(maxBytes))

	// health-check
	r.Get("/health", handlers.Health)
	r.Get("/rules", pmHnd.Rules(eng))

	// основные эндпоинты
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		r.Post("/match", pmHnd.Match(eng, logger))
		r.Post("/match/upload", pmHnd.Upload(eng, 32<<20, logger))
	})

	return r
}
