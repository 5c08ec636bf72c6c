package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/unievent/unievent-backend/internal/config"
	"github.com/unievent/unievent-backend/internal/handlers"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	resolver *identity.Resolver,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	societyHandler *handlers.SocietyHandler,
	moderationHandler *handlers.ModerationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Registration and login get a stricter limit: 10 req/min per IP
	users := api.Group("/users")
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	users.Post("/register", authLimit, authHandler.Register)
	users.Post("/login", authLimit, authHandler.Login)

	users.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	users.Put("/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)
	users.Delete("/me", middleware.JWTProtected(cfg), authHandler.DeleteMe)
	users.Put("/me/password", middleware.JWTProtected(cfg), authHandler.ChangePassword)

	// Public profile and comment history
	users.Get("/:id", authHandler.GetUser)
	users.Get("/:id/comments", authHandler.UserComments)

	// Legacy byid variants, the id must match the authenticated principal
	users.Put("/:id", middleware.JWTProtected(cfg), authHandler.UpdateByID)
	users.Delete("/:id", middleware.JWTProtected(cfg), authHandler.DeleteByID)

	// Event reads are public (anonymous resolves to the anonymous
	// principal), mutations require a token. Specific routes precede /:id.
	events := api.Group("/events")
	events.Use(middleware.JWTOptional(cfg))
	events.Get("/search", eventHandler.Search)
	events.Get("/upcoming", eventHandler.Upcoming)
	events.Get("/trending", eventHandler.Trending)
	events.Get("/society/:id", eventHandler.BySociety)
	events.Get("/", eventHandler.List)
	events.Get("/:id", eventHandler.Get)
	events.Get("/:id/comments", eventHandler.ListComments)

	events.Post("/", middleware.JWTProtected(cfg), eventHandler.Create)
	events.Put("/:id", middleware.JWTProtected(cfg), eventHandler.Update)
	events.Delete("/:id", middleware.JWTProtected(cfg), eventHandler.Delete)
	events.Post("/:id/like", middleware.JWTProtected(cfg), eventHandler.ToggleLike)
	events.Post("/:id/comments", middleware.JWTProtected(cfg), eventHandler.CreateComment)

	api.Delete("/comments/:id", middleware.JWTProtected(cfg), eventHandler.DeleteComment)

	// Societies
	societies := api.Group("/societies")
	societies.Get("/", societyHandler.List)
	societies.Get("/:id", societyHandler.Get)
	societies.Post("/", middleware.JWTProtected(cfg), societyHandler.Register)
	societies.Put("/me", middleware.JWTProtected(cfg), societyHandler.UpdateMine)
	societies.Delete("/:id", middleware.JWTProtected(cfg), societyHandler.Delete)

	// Admin panel (JWT + role re-checked against the DB)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(resolver))
	admin.Put("/societies/:id/verify", societyHandler.Verify)
	admin.Get("/moderation/comments", moderationHandler.ListComments)
	admin.Put("/moderation/comments/:id", moderationHandler.ActionComment)
}
