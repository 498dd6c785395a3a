package handlers

import (
	"errors"
	"fmt"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/casafind/rental_marketplace/notifications"
	"github.com/casafind/rental_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateBookingRequestBody struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
}

type UpdateBookingStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// CreateBookingRequest registers the calling tenant's interest in a
// property. One request per (property, tenant); a repeat attempt gets a
// 409, never a merged or overwritten row.
func CreateBookingRequest(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tenantID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	propertyID, _ := uuid.Parse(req.PropertyID)

	request, err := services.CreateBookingRequest(database.DB, propertyID, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateBookingRequest):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A booking request for this property already exists"})
		case errors.Is(err, services.ErrReferentialViolation):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property or tenant not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking request"})
		}
	}

	go notifyOperatorOfRequest(request)

	return c.Status(fiber.StatusCreated).JSON(request)
}

// UpdateBookingRequestStatus advances a request through the lifecycle.
// Invalid tokens and disallowed transitions come back as 422.
func UpdateBookingRequestStatus(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking request id"})
	}

	var req UpdateBookingStatusBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := services.TransitionBookingRequest(database.DB, requestID, models.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking request not found"})
		case errors.Is(err, services.ErrInvalidStatusValue):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Unknown booking status"})
		case errors.Is(err, services.ErrInvalidStatusTransition):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": fmt.Sprintf("Cannot move this booking to '%s'", req.Status)})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking status"})
		}
	}

	go notifyTenantOfStatusChange(request)

	return c.JSON(request)
}

func GetBookingRequest(c *fiber.Ctx) error {
	var request models.BookingRequest
	if err := database.DB.
		Preload("Property").
		Preload("Tenant").
		First(&request, "id = ?", c.Params("requestId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking request not found"})
	}

	return c.JSON(request)
}

func GetMyBookingRequests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tenantID, _ := uuid.Parse(claims["user_id"].(string))

	var requests []models.BookingRequest
	database.DB.
		Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("updated_at desc").
		Find(&requests)

	return c.JSON(requests)
}

// GetPropertyBookingRequests lists every request against one property,
// for its operator's pipeline view.
func GetPropertyBookingRequests(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var property models.Property
	if err := database.DB.First(&property, "id = ?", c.Params("propertyId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}
	if role != "admin" && (property.OperatorID == nil || *property.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this property"})
	}

	var requests []models.BookingRequest
	database.DB.
		Preload("Tenant").
		Where("property_id = ?", property.ID).
		Order("updated_at desc").
		Find(&requests)

	return c.JSON(requests)
}

// CancelMyBookingRequest is the tenant-side shortcut for moving their
// own request to cancel_booking.
func CancelMyBookingRequest(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tenantID, _ := uuid.Parse(claims["user_id"].(string))

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking request id"})
	}

	var request models.BookingRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking request not found"})
	}
	if request.TenantID != tenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking request"})
	}

	request, err = services.TransitionBookingRequest(database.DB, requestID, models.StatusCancelBooking)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatusTransition) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "This booking can no longer be cancelled"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking request"})
	}

	return c.JSON(request)
}

func notifyOperatorOfRequest(request models.BookingRequest) {
	var property models.Property
	if err := database.DB.Preload("Operator").First(&property, "id = ?", request.PropertyID).Error; err != nil {
		return
	}
	if property.Operator == nil {
		return
	}
	notifications.SendEmail(
		property.Operator.FullName,
		property.Operator.Email,
		"New booking request",
		fmt.Sprintf("<h1>New booking request</h1><p>A tenant has expressed interest in %s.</p>", property.Title),
	)
}

func notifyTenantOfStatusChange(request models.BookingRequest) {
	var tenant models.User
	if err := database.DB.First(&tenant, "id = ?", request.TenantID).Error; err != nil {
		return
	}
	notifications.SendEmail(
		tenant.FullName,
		tenant.Email,
		"Your booking request was updated",
		fmt.Sprintf("<h1>Booking update</h1><p>Your booking request has moved to stage '%s'.</p>", request.Status),
	)
}
