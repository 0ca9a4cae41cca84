package main

import (
	"log"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/jobs"
	"github.com/edufeedback/edu_feedback/notifications"
	"github.com/edufeedback/edu_feedback/routes"
	"github.com/edufeedback/edu_feedback/services"
	"github.com/edufeedback/edu_feedback/websocket"
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
	services.InitModeration()
	services.InitAIService()

	c := cron.New()
	c.AddFunc("0 9 * * *", jobs.SendFeedbackReminders)
	c.AddFunc("0 * * * *", jobs.EscalateOverdueDoubts)
	go c.Start()
	log.Println("✅ Cron jobs for reminders and doubt escalation scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "EduFeedback",
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
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
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
			"message": "Welcome to EduFeedback API",
		})
	})

	routes.AuthRoutes(app)
	routes.TeacherRoutes(app)
	routes.FeedbackRoutes(app)
	routes.DoubtRoutes(app)
	routes.FavoriteRoutes(app)
	routes.AnalyticsRoutes(app)
	routes.AdminRoutes(app)
	routes.AIRoutes(app)
	routes.UploadRoutes(app)
	routes.ActivityRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
