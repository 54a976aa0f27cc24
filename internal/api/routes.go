package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	user := api.Group("/user", handler.AuthRequired)
	user.Get("/profile", handler.GetProfile)
	user.Put("/profile", handler.WriteRateLimited, handler.UpdateProfile)
	user.Put("/profile-picture", handler.WriteRateLimited, handler.UpdateProfilePicture)
	user.Put("/change-password", handler.WriteRateLimited, handler.ChangePassword)

	progress := api.Group("/progress", handler.AuthRequired)
	progress.Get("/today", handler.GetToday)
	progress.Get("/range", handler.GetRange)
	progress.Get("/stats", handler.GetStats)
	progress.Post("/steps", handler.WriteRateLimited, handler.AddSteps)
	progress.Post("/workout", handler.WriteRateLimited, handler.RecordWorkout)
	progress.Post("/habit", handler.WriteRateLimited, handler.RecordHabit)
	progress.Post("/stretch", handler.WriteRateLimited, handler.RecordStretch)
	progress.Post("/warmup", handler.WriteRateLimited, handler.RecordWarmup)
}

// RegisterMetricsRoute exposes the Prometheus registry, behind basic auth
// when both credentials are configured.
func RegisterMetricsRoute(app *fiber.App, username string, password string) {
	metrics := adaptor.HTTPHandler(promhttp.Handler())
	if username == "" || password == "" {
		app.Get("/metrics", metrics)
		return
	}
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{username: password},
		Realm: "metrics",
	}), metrics)
}
