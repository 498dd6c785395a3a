package routes

import (
	"github.com/casafind/rental_marketplace/handlers"
	"github.com/casafind/rental_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TenantCvRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cv := api.Group("/tenant-cv", middleware.Protected())
	cv.Get("/me", handlers.GetMyTenantCv)
	cv.Put("/me", handlers.UpsertMyTenantCv)
}
