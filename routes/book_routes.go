package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	books := api.Group("/books", middleware.Protected(), middleware.TrackPresence())
	books.Get("", handlers.ListBooks)
	books.Post("", middleware.CounselorRequired(), handlers.UploadBook)
}
