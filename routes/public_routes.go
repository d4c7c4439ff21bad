package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/specializations", handlers.ListSpecializations)

	// Cascading booking form: specialization -> approved counselors.
	api.Get("/counselors", middleware.Protected(), middleware.TrackPresence(), handlers.GetCounselorsBySpecialization)
}
