package handlers

import (
	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BuildingRequest struct {
	Name         string  `json:"name" validate:"required,min=2"`
	AddressLine1 string  `json:"address_line_1" validate:"required"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city" validate:"required"`
	Postcode     string  `json:"postcode" validate:"required"`

	TenantTypes    []string         `json:"tenant_types"`
	Amenities      []models.Feature `json:"amenities"`
	Images         []string         `json:"images"`
	ConciergeHours *string          `json:"concierge_hours"`
	PetPolicy      *string          `json:"pet_policy"`
}

func applyBuildingRequest(building *models.Building, req *BuildingRequest) error {
	building.Name = req.Name
	building.AddressLine1 = req.AddressLine1
	building.AddressLine2 = req.AddressLine2
	building.City = req.City
	building.Postcode = req.Postcode
	building.ConciergeHours = req.ConciergeHours
	building.PetPolicy = req.PetPolicy

	if err := models.ValidateFeatureList(req.Amenities); err != nil {
		return err
	}

	var err error
	if building.Amenities, err = models.FeaturesToJSON(req.Amenities); err != nil {
		return err
	}
	if building.TenantTypes, err = models.StringsToJSON(req.TenantTypes); err != nil {
		return err
	}
	if building.Images, err = models.StringsToJSON(req.Images); err != nil {
		return err
	}
	return nil
}

func CreateBuilding(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req BuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	building := models.Building{OperatorID: &userID}
	if err := applyBuildingRequest(&building, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Create(&building).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create building"})
	}

	return c.Status(fiber.StatusCreated).JSON(building)
}

func GetBuilding(c *fiber.Ctx) error {
	var building models.Building
	if err := database.DB.
		Preload("Properties", "listed = ?", true).
		First(&building, "id = ?", c.Params("buildingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Building not found"})
	}

	return c.JSON(building)
}

func ListBuildings(c *fiber.Ctx) error {
	query := database.DB
	if city := c.Query("city"); city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}

	var buildings []models.Building
	if err := query.Order("name asc").Find(&buildings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch buildings"})
	}

	return c.JSON(buildings)
}

func UpdateBuilding(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var building models.Building
	if err := database.DB.First(&building, "id = ?", c.Params("buildingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Building not found"})
	}
	if role != "admin" && (building.OperatorID == nil || *building.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this building"})
	}

	var req BuildingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := applyBuildingRequest(&building, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&building).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update building"})
	}

	return c.JSON(building)
}

// DeleteBuilding detaches contained properties rather than deleting
// them; a listing survives its building as a private one.
func DeleteBuilding(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var building models.Building
	if err := database.DB.First(&building, "id = ?", c.Params("buildingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Building not found"})
	}
	if role != "admin" && (building.OperatorID == nil || *building.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this building"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).
			Where("building_id = ?", building.ID).
			Update("building_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&building).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete building"})
	}

	return c.JSON(fiber.Map{"message": "Building deleted"})
}
