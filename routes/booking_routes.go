package routes

import (
	"github.com/casafind/rental_marketplace/handlers"
	"github.com/casafind/rental_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/booking-requests", middleware.Protected())
	booking.Post("", handlers.CreateBookingRequest)
	booking.Get("/me", handlers.GetMyBookingRequests)
	booking.Get("/:requestId", handlers.GetBookingRequest)
	booking.Patch("/:requestId/status", handlers.UpdateBookingRequestStatus)
	booking.Post("/:requestId/cancel", handlers.CancelMyBookingRequest)

	booking.Get("/:requestId/messages", handlers.GetBookingMessages)
	booking.Post("/:requestId/messages", handlers.SendBookingMessage)
}
