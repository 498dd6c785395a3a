package handlers

import (
	"errors"
	"time"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PreferencesRequest struct {
	MinBudget *float64 `json:"min_budget" validate:"omitempty,gte=0"`
	MaxBudget *float64 `json:"max_budget" validate:"omitempty,gte=0"`

	MinBedrooms  *int `json:"min_bedrooms" validate:"omitempty,gte=0"`
	MaxBedrooms  *int `json:"max_bedrooms" validate:"omitempty,gte=0"`
	MinBathrooms *int `json:"min_bathrooms" validate:"omitempty,gte=0"`

	MoveInFrom *string `json:"move_in_from" validate:"omitempty,datetime=2006-01-02"`

	Locations         []string         `json:"locations"`
	PropertyTypes     []string         `json:"property_types"`
	LifestyleFeatures []models.Feature `json:"lifestyle_features"`
}

// GetMyPreferences returns the calling tenant's stored search criteria.
func GetMyPreferences(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var prefs models.Preferences
	if err := database.DB.First(&prefs, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No preferences on file"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch preferences"})
	}

	return c.JSON(prefs)
}

// UpsertMyPreferences creates or replaces the single preferences row a
// tenant owns.
func UpsertMyPreferences(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.MinBudget != nil && req.MaxBudget != nil && *req.MinBudget > *req.MaxBudget {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_budget cannot exceed max_budget"})
	}
	if req.MinBedrooms != nil && req.MaxBedrooms != nil && *req.MinBedrooms > *req.MaxBedrooms {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_bedrooms cannot exceed max_bedrooms"})
	}
	if err := models.ValidateFeatureList(req.LifestyleFeatures); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var prefs models.Preferences
	err := database.DB.Where("user_id = ?", userID).First(&prefs).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch preferences"})
	}
	prefs.UserID = userID

	prefs.MinBudget = req.MinBudget
	prefs.MaxBudget = req.MaxBudget
	prefs.MinBedrooms = req.MinBedrooms
	prefs.MaxBedrooms = req.MaxBedrooms
	prefs.MinBathrooms = req.MinBathrooms

	if req.MoveInFrom != nil {
		t, err := time.Parse("2006-01-02", *req.MoveInFrom)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid move_in_from"})
		}
		prefs.MoveInFrom = &t
	} else {
		prefs.MoveInFrom = nil
	}

	if prefs.Locations, err = models.StringsToJSON(req.Locations); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if prefs.PropertyTypes, err = models.StringsToJSON(req.PropertyTypes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if prefs.LifestyleFeatures, err = models.FeaturesToJSON(req.LifestyleFeatures); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&prefs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save preferences"})
	}

	return c.JSON(prefs)
}
