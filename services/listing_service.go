package services

import (
	"errors"
	"fmt"

	"github.com/casafind/rental_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrIncompleteListing: the listing is missing fields required for
// publication. Storage allows them to be null (private landlord case),
// so the check lives here in the service layer.
var ErrIncompleteListing = errors.New("listing is missing required fields for publication")

var ErrPropertyNotFound = errors.New("property not found")

// ValidateListingFeatures checks every JSON feature column of a
// property before it is written. Malformed lists and untagged entries
// never reach the store.
func ValidateListingFeatures(p *models.Property) error {
	columns := []struct {
		name string
		col  []byte
	}{
		{"lifestyle_features", p.LifestyleFeatures},
		{"amenities", p.Amenities},
		{"commute_times", p.CommuteTimes},
	}
	for _, c := range columns {
		features, err := models.ParseFeatures(c.col)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		if err := models.ValidateFeatureList(features); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	if _, err := models.ParseStrings(p.Images); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	return nil
}

// ValidateCompleteListing applies the required-for-publication subset:
// price, bedrooms, bathrooms, property type and at least one image. A
// city is required unless the listing inherits one from a building or
// complex. Operator attachment is deliberately not required.
func ValidateCompleteListing(p *models.Property) error {
	var missing []string
	if p.Price == nil {
		missing = append(missing, "price")
	}
	if p.Bedrooms == nil {
		missing = append(missing, "bedrooms")
	}
	if p.Bathrooms == nil {
		missing = append(missing, "bathrooms")
	}
	if p.PropertyType == nil || *p.PropertyType == "" {
		missing = append(missing, "property_type")
	}
	if p.City == nil && p.BuildingID == nil && p.ResidentialComplexID == nil {
		missing = append(missing, "city")
	}
	images, err := models.ParseStrings(p.Images)
	if err != nil || len(images) == 0 {
		missing = append(missing, "images")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrIncompleteListing, missing)
	}
	return nil
}

// PublishProperty flips a draft to listed after the completeness check.
func PublishProperty(db *gorm.DB, propertyID uuid.UUID) (models.Property, error) {
	var property models.Property

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, "id = ?", propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		if err := ValidateCompleteListing(&property); err != nil {
			return err
		}

		property.Listed = true
		return tx.Save(&property).Error
	})

	return property, err
}
