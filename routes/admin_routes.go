package routes

import (
	"github.com/deftec/counseling_platform/handlers"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	students := admin.Group("/students")
	students.Get("", handlers.GetStudents)
	students.Get("/export", handlers.ExportStudents)
	students.Post("/:studentId/approve", handlers.ApproveStudent)
	students.Post("/:studentId/reject", handlers.RejectStudent)
	students.Post("/:studentId/report", handlers.GenerateStudentReport)

	counselors := admin.Group("/counselors")
	counselors.Get("", handlers.GetCounselors)
	counselors.Post("", handlers.CreateCounselor)
	counselors.Get("/:counselorId", handlers.GetCounselor)
	counselors.Put("/:counselorId", handlers.UpdateCounselor)
	counselors.Delete("/:counselorId", handlers.DeleteCounselor)

	specializations := admin.Group("/specializations")
	specializations.Post("", handlers.CreateSpecialization)
	specializations.Put("/:specializationId", handlers.UpdateSpecialization)
	specializations.Delete("/:specializationId", handlers.DeleteSpecialization)

	admin.Get("/appointments", handlers.GetAllAppointments)
	admin.Get("/call-logs", handlers.GetCallLogs)
}
