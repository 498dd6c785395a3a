package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/casafind/rental_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type PropertyRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`

	BuildingID           *string `json:"building_id" validate:"omitempty,uuid"`
	ResidentialComplexID *string `json:"residential_complex_id" validate:"omitempty,uuid"`

	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	Postcode     *string `json:"postcode"`

	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	Bedrooms      *int     `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms     *int     `json:"bathrooms" validate:"omitempty,gte=0"`
	PropertyType  *string  `json:"property_type"`
	Furnishing    *string  `json:"furnishing"`
	AvailableFrom *string  `json:"available_from" validate:"omitempty,datetime=2006-01-02"`

	LifestyleFeatures []models.Feature `json:"lifestyle_features"`
	Amenities         []models.Feature `json:"amenities"`
	CommuteTimes      []models.Feature `json:"commute_times"`
	Images            []string         `json:"images"`
	Documents         []string         `json:"documents"`
	VideoURL          *string          `json:"video_url"`

	TenantTypes    []string `json:"tenant_types"`
	ConciergeHours *string  `json:"concierge_hours"`
	PetPolicy      *string  `json:"pet_policy"`
}

func applyPropertyRequest(property *models.Property, req *PropertyRequest) error {
	property.Title = req.Title
	property.Description = req.Description
	property.AddressLine1 = req.AddressLine1
	property.AddressLine2 = req.AddressLine2
	property.City = req.City
	property.Postcode = req.Postcode
	property.Price = req.Price
	property.Bedrooms = req.Bedrooms
	property.Bathrooms = req.Bathrooms
	property.PropertyType = req.PropertyType
	property.Furnishing = req.Furnishing
	property.ConciergeHours = req.ConciergeHours
	property.PetPolicy = req.PetPolicy
	property.VideoURL = req.VideoURL

	if req.BuildingID != nil {
		id, err := uuid.Parse(*req.BuildingID)
		if err != nil {
			return errors.New("invalid building_id")
		}
		property.BuildingID = &id
	}
	if req.ResidentialComplexID != nil {
		id, err := uuid.Parse(*req.ResidentialComplexID)
		if err != nil {
			return errors.New("invalid residential_complex_id")
		}
		property.ResidentialComplexID = &id
	}
	if req.AvailableFrom != nil {
		t, err := time.Parse("2006-01-02", *req.AvailableFrom)
		if err != nil {
			return errors.New("invalid available_from")
		}
		property.AvailableFrom = &t
	}

	var err error
	if property.LifestyleFeatures, err = models.FeaturesToJSON(req.LifestyleFeatures); err != nil {
		return err
	}
	if property.Amenities, err = models.FeaturesToJSON(req.Amenities); err != nil {
		return err
	}
	if property.CommuteTimes, err = models.FeaturesToJSON(req.CommuteTimes); err != nil {
		return err
	}
	if property.Images, err = models.StringsToJSON(req.Images); err != nil {
		return err
	}
	if property.Documents, err = models.StringsToJSON(req.Documents); err != nil {
		return err
	}
	if property.TenantTypes, err = models.StringsToJSON(req.TenantTypes); err != nil {
		return err
	}

	return services.ValidateListingFeatures(property)
}

// CreateProperty accepts a fully sparse body: a private landlord draft
// may carry nothing beyond a title. Completeness is checked at publish
// time, not here.
func CreateProperty(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var property models.Property
	if err := applyPropertyRequest(&property, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// The creator manages the listing whatever their role; a tenant-role
	// creator is simply a private landlord. Ownership gates on update,
	// delete and publish all key off this column.
	property.OperatorID = &userID

	if err := database.DB.Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create property"})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

func GetProperty(c *fiber.Ctx) error {
	propertyID := c.Params("propertyId")

	var property models.Property
	if err := database.DB.
		Preload("Building").
		Preload("ResidentialComplex").
		First(&property, "id = ?", propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}

	return c.JSON(property)
}

func ListProperties(c *fiber.Ctx) error {
	pageSize, offset := pagination(c, 20)

	query := database.DB.Where("listed = ?", true)

	if city := c.Query("city"); city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if propertyType := c.Query("property_type"); propertyType != "" {
		query = query.Where("LOWER(property_type) = LOWER(?)", propertyType)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if bedrooms := c.Query("bedrooms"); bedrooms != "" {
		if v, err := strconv.Atoi(bedrooms); err == nil {
			query = query.Where("bedrooms >= ?", v)
		}
	}

	var properties []models.Property
	if err := query.
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch properties"})
	}

	return c.JSON(properties)
}

func GetMyProperties(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var properties []models.Property
	if err := database.DB.
		Where("operator_id = ?", userID).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch properties"})
	}

	return c.JSON(properties)
}

func UpdateProperty(c *fiber.Ctx) error {
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

	var req PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := applyPropertyRequest(&property, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update property"})
	}

	return c.JSON(property)
}

// DeleteProperty removes the listing; booking requests and snapshots go
// with it through the cascade constraints.
func DeleteProperty(c *fiber.Ctx) error {
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

	if err := database.DB.Delete(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete property"})
	}

	return c.JSON(fiber.Map{"message": "Property deleted"})
}

func PublishProperty(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var property models.Property
	if err := database.DB.First(&property, "id = ?", propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}
	if role != "admin" && (property.OperatorID == nil || *property.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this property"})
	}

	property, err = services.PublishProperty(database.DB, propertyID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPropertyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		case errors.Is(err, services.ErrIncompleteListing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish property"})
		}
	}

	return c.JSON(property)
}

// GetPropertyMatch scores the calling tenant's preferences against one
// property and returns the score with its category breakdown.
func GetPropertyMatch(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tenantID, _ := uuid.Parse(claims["user_id"].(string))

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	result, err := services.ScoreForTenant(database.DB, tenantID, propertyID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPreferencesNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No preferences on file, set them first"})
		case errors.Is(err, services.ErrPropertyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute match"})
		}
	}

	return c.JSON(result)
}

// GetMyMatches returns the tenant's persisted match snapshots, best
// first. Snapshots are refreshed on a schedule by the cron job.
func GetMyMatches(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tenantID, _ := uuid.Parse(claims["user_id"].(string))

	pageSize, offset := pagination(c, 20)

	var snapshots []models.MatchSnapshot
	if err := database.DB.
		Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("match_score desc").
		Limit(pageSize).
		Offset(offset).
		Find(&snapshots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch matches"})
	}

	return c.JSON(snapshots)
}
