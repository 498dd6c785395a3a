package handlers

import (
	"encoding/json"
	"errors"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/casafind/rental_marketplace/services"
	"github.com/casafind/rental_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantCvRequest struct {
	Headline    string             `json:"headline" validate:"max=255"`
	AboutMe     string             `json:"about_me"`
	Hobbies     []string           `json:"hobbies"`
	RentHistory []RentHistoryEntry `json:"rent_history"`
}

type RentHistoryEntry struct {
	Address  string `json:"address" validate:"required"`
	FromYear int    `json:"from_year"`
	ToYear   int    `json:"to_year"`
	Landlord string `json:"landlord,omitempty"`
}

func GetMyTenantCv(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var cv models.TenantCv
	if err := database.DB.First(&cv, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No CV on file"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch CV"})
	}

	return c.JSON(cv)
}

// UpsertMyTenantCv creates or replaces the caller's CV. The share code
// is minted once on first creation and never rotated by an edit.
func UpsertMyTenantCv(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req TenantCvRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var cv models.TenantCv
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("user_id = ?", userID).First(&cv).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			shareCode, err := utils.GenerateUniqueShareCode(tx)
			if err != nil {
				return err
			}
			cv.UserID = userID
			cv.ShareCode = shareCode
		}

		cv.Headline = req.Headline
		cv.AboutMe = req.AboutMe

		var err error
		if cv.Hobbies, err = models.StringsToJSON(req.Hobbies); err != nil {
			return err
		}
		rentHistory := req.RentHistory
		if rentHistory == nil {
			rentHistory = []RentHistoryEntry{}
		}
		raw, err := json.Marshal(rentHistory)
		if err != nil {
			return err
		}
		cv.RentHistory = raw

		return tx.Save(&cv).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save CV"})
	}

	go services.GenerateCvPdf(database.DB, cv.ID)

	return c.JSON(cv)
}

// GetSharedTenantCv serves a CV by its public share code. No auth, and
// the internal primary key stays private.
func GetSharedTenantCv(c *fiber.Ctx) error {
	shareCode := c.Params("shareCode")

	var cv models.TenantCv
	if err := database.DB.Preload("User").First(&cv, "share_code = ?", shareCode).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "CV not found"})
	}

	return c.JSON(fiber.Map{
		"full_name":    cv.User.FullName,
		"headline":     cv.Headline,
		"about_me":     cv.AboutMe,
		"hobbies":      cv.Hobbies,
		"rent_history": cv.RentHistory,
		"pdf_url":      cv.PdfURL,
		"share_code":   cv.ShareCode,
	})
}
