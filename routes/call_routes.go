package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func CallRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	calls := api.Group("/calls", middleware.Protected(), middleware.TrackPresence())
	calls.Get("/me", handlers.GetMyCalls)
	calls.Post("", handlers.StartCall)
	calls.Post("/:callId/answer", handlers.AnswerCall)
	calls.Post("/:callId/end", handlers.EndCall)
}
