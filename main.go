package main

import (
	"log"

	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/config"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/database"
	authRoutes "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/routers/authRoutes"
	courseRoutes "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/routers/courseRoutes"
	goalRoutes "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/routers/goalRoutes"
	userRoutes "github.com/canyouhelpmebaby-ctrl/progressia-lms-id/routers/userRoutes"
	"github.com/canyouhelpmebaby-ctrl/progressia-lms-id/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	// Preflight OPTIONS requests are answered here before any handler runs
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (stored certificate copies live under ./public/certificates)
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	goalRoutes.SetupGoalRoutes(app)

	// Daily sweep for overdue learning goals
	utils.StartGoalScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
