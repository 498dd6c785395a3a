package routes

import (
	"github.com/casafind/rental_marketplace/handlers"
	"github.com/casafind/rental_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func PreferencesRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	prefs := api.Group("/preferences", middleware.Protected())
	prefs.Get("/me", handlers.GetMyPreferences)
	prefs.Put("/me", handlers.UpsertMyPreferences)
}
