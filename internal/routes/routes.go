package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Review *handlers.ReviewHandler
	Space  *handlers.SpaceHandler
	Upload *handlers.UploadHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(perIPLimiter(60))

	api.Get("/health", h.Health.Check)

	// Upload URLs are public (visitors attach media before submitting a
	// review) so they get a stricter limit.
	api.Post("/uploads", perIPLimiter(10), h.Upload.Create)

	// Reviews: the two read routes below are public. Everything registered
	// after the Use call requires a bearer token, so order matters here.
	reviews := api.Group("/reviews")
	reviews.Get("/review", h.Review.GetReview)
	reviews.Get("/liked", h.Review.GetLiked)

	reviews.Use(middleware.JWTProtected(cfg))
	reviews.Get("/", h.Review.GetAll)
	reviews.Post("/", h.Review.Create)
	reviews.Put("/", h.Review.Update)
	reviews.Delete("/", h.Review.Delete)

	// Spaces are owner-only
	spaces := api.Group("/spaces", middleware.JWTProtected(cfg))
	spaces.Get("/", h.Space.List)
	spaces.Get("/:id", h.Space.Get)
	spaces.Post("/", h.Space.Create)
	spaces.Put("/", h.Space.Update)
	spaces.Delete("/", h.Space.Delete)
}

func perIPLimiter(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
