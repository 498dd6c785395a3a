package routes

import (
	"github.com/casafind/rental_marketplace/handlers"
	"github.com/casafind/rental_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func PropertyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	properties := api.Group("/properties")

	// Browsing the listed inventory needs no account. The fixed paths
	// are registered ahead of /:propertyId so they are not swallowed
	// by the parameter route.
	properties.Get("", handlers.ListProperties)
	properties.Get("/matches", middleware.Protected(), handlers.GetMyMatches)
	properties.Get("/mine", middleware.Protected(), handlers.GetMyProperties)

	properties.Post("", middleware.Protected(), handlers.CreateProperty)
	properties.Get("/:propertyId", handlers.GetProperty)
	properties.Put("/:propertyId", middleware.Protected(), handlers.UpdateProperty)
	properties.Delete("/:propertyId", middleware.Protected(), handlers.DeleteProperty)
	properties.Post("/:propertyId/publish", middleware.Protected(), handlers.PublishProperty)
	properties.Get("/:propertyId/match", middleware.Protected(), handlers.GetPropertyMatch)
	properties.Get("/:propertyId/booking-requests", middleware.Protected(), handlers.GetPropertyBookingRequests)
}
