package api

import (
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ansh-patel-repos/job-listing-portal/internal/token"
)

// SetupRoutes wires the HTTP surface. Upload routes are only mounted when
// object storage is configured.
func SetupRoutes(app *fiber.App, auth *AuthHandler, uploads *UploadHandler, tokens *token.Manager) {
	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())

	app.Get("/health", auth.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/register", auth.Register)
	authRoutes.Post("/login", auth.Login)
	authRoutes.Get("/google", auth.GoogleStart)
	authRoutes.Get("/google/callback", auth.GoogleCallback)

	requireAuth := AuthMiddleware(tokens)
	authRoutes.Get("/me", requireAuth, auth.GetCurrentUser)
	authRoutes.Post("/logout", requireAuth, auth.Logout)
	authRoutes.Post("/refresh", requireAuth, auth.RefreshToken)
	authRoutes.Put("/profile", requireAuth, auth.UpdateProfile)

	if uploads != nil {
		uploadRoutes := app.Group("/api/uploads", AuthMiddleware(tokens))
		uploadRoutes.Post("/avatar-url", uploads.GetAvatarUploadURL)
		uploadRoutes.Post("/resume-url", uploads.GetResumeUploadURL)
	}
}
