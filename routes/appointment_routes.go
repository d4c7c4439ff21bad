package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected(), middleware.TrackPresence())
	appointments.Get("/me", handlers.GetMyAppointments)
	appointments.Get("/:appointmentId", handlers.GetAppointmentDetail)
	appointments.Get("/:appointmentId/messages", handlers.GetAppointmentMessages)
	appointments.Post("", middleware.ApprovedStudentRequired(), handlers.BookAppointment)

	counselor := api.Group("/counselor", middleware.Protected(), middleware.CounselorRequired(), middleware.TrackPresence())
	counselor.Get("/appointments", handlers.GetCounselorAppointments)
	counselor.Get("/dashboard", handlers.GetCounselorDashboard)
}
