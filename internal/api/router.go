package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jkowalik/sleepstats/internal/api/handler"
	custommiddleware "github.com/jkowalik/sleepstats/internal/api/middleware"
	"github.com/jkowalik/sleepstats/internal/config"
	"github.com/jkowalik/sleepstats/internal/repository/postgres"
	"github.com/jkowalik/sleepstats/internal/repository/redis"
	"github.com/jkowalik/sleepstats/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-Total-Count"},
		MaxAge:         300,
	}))

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sleepLogRepo := postgres.NewSleepLogRepository(db)

	// Initialize rate limiter and stats cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	statsCache := redis.NewStatsCache(redisClient, cfg.Stats.CacheTTL)

	// Initialize services
	userService := service.NewUserService(userRepo)
	sleepLogService := service.NewSleepLogService(sleepLogRepo, userRepo, statsCache)
	statsService := service.NewStatsService(sleepLogRepo, userRepo, statsCache, service.SystemClock())

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sleepLogHandler := handler.NewSleepLogHandler(sleepLogService, statsService, cfg.Stats.DefaultDaysBack)

	rateLimitMiddleware := custommiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.Create)
				r.Get("/", userHandler.List)

				r.Route("/{userID}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)

					r.Route("/sleep-logs", func(r chi.Router) {
						r.Use(custommiddleware.UserContext)

						r.Post("/", sleepLogHandler.Create)
						r.Get("/", sleepLogHandler.List)
						r.Get("/latest", sleepLogHandler.Latest)
						r.Get("/stats", sleepLogHandler.Stats)

						r.Route("/{sleepLogID}", func(r chi.Router) {
							r.Get("/", sleepLogHandler.Get)
							r.Put("/", sleepLogHandler.Update)
							r.Delete("/", sleepLogHandler.Delete)
						})
					})
				})
			})
		})
	})

	return r
}
