package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func PresenceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	presence := api.Group("/presence", middleware.Protected())
	presence.Put("/status", middleware.CounselorRequired(), handlers.UpdateStatus)
	presence.Get("/:userId", middleware.TrackPresence(), handlers.GetUserStatus)
}
