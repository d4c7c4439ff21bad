package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterStudent)
	auth.Post("/login", handlers.LoginUser)

	profile := api.Group("/profile", middleware.Protected(), middleware.TrackPresence())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)
}
