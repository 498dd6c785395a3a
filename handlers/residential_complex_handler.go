package handlers

import (
	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResidentialComplexRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description"`
	City        string  `json:"city" validate:"required"`
	Postcode    *string `json:"postcode"`

	TenantTypes    []string         `json:"tenant_types"`
	Amenities      []models.Feature `json:"amenities"`
	Images         []string         `json:"images"`
	ConciergeHours *string          `json:"concierge_hours"`
	PetPolicy      *string          `json:"pet_policy"`
}

func applyComplexRequest(complex *models.ResidentialComplex, req *ResidentialComplexRequest) error {
	complex.Name = req.Name
	complex.Description = req.Description
	complex.City = req.City
	complex.Postcode = req.Postcode
	complex.ConciergeHours = req.ConciergeHours
	complex.PetPolicy = req.PetPolicy

	if err := models.ValidateFeatureList(req.Amenities); err != nil {
		return err
	}

	var err error
	if complex.Amenities, err = models.FeaturesToJSON(req.Amenities); err != nil {
		return err
	}
	if complex.TenantTypes, err = models.StringsToJSON(req.TenantTypes); err != nil {
		return err
	}
	if complex.Images, err = models.StringsToJSON(req.Images); err != nil {
		return err
	}
	return nil
}

func CreateResidentialComplex(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req ResidentialComplexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	complex := models.ResidentialComplex{OperatorID: &userID}
	if err := applyComplexRequest(&complex, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Create(&complex).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create residential complex"})
	}

	return c.Status(fiber.StatusCreated).JSON(complex)
}

func GetResidentialComplex(c *fiber.Ctx) error {
	var complex models.ResidentialComplex
	if err := database.DB.
		Preload("Properties", "listed = ?", true).
		First(&complex, "id = ?", c.Params("complexId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Residential complex not found"})
	}

	return c.JSON(complex)
}

func ListResidentialComplexes(c *fiber.Ctx) error {
	query := database.DB
	if city := c.Query("city"); city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}

	var complexes []models.ResidentialComplex
	if err := query.Order("name asc").Find(&complexes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch residential complexes"})
	}

	return c.JSON(complexes)
}

func UpdateResidentialComplex(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var complex models.ResidentialComplex
	if err := database.DB.First(&complex, "id = ?", c.Params("complexId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Residential complex not found"})
	}
	if role != "admin" && (complex.OperatorID == nil || *complex.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this residential complex"})
	}

	var req ResidentialComplexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := applyComplexRequest(&complex, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DB.Save(&complex).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update residential complex"})
	}

	return c.JSON(complex)
}

func DeleteResidentialComplex(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	var complex models.ResidentialComplex
	if err := database.DB.First(&complex, "id = ?", c.Params("complexId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Residential complex not found"})
	}
	if role != "admin" && (complex.OperatorID == nil || *complex.OperatorID != userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not manage this residential complex"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).
			Where("residential_complex_id = ?", complex.ID).
			Update("residential_complex_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&complex).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete residential complex"})
	}

	return c.JSON(fiber.Map{"message": "Residential complex deleted"})
}
