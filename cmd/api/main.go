package main

import (
	"log"
	"time"

	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/jobs"
	"github.com/deftec/counseling_platform/notifications"
	"github.com/deftec/counseling_platform/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("* * * * *", jobs.SweepStalePresence)
	c.AddFunc("0 7 * * *", jobs.SendAppointmentReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled")

	app := fiber.New(fiber.Config{
		AppName:       "Counseling Platform",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Counseling Platform API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.AppointmentRoutes(app)
	routes.CallRoutes(app)
	routes.PresenceRoutes(app)
	routes.ChatRoutes(app)
	routes.BookRoutes(app)
	routes.AdminRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
