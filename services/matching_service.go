package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/casafind/rental_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Category weights sum to 100, so the overall score reads as a
// percentage. Criteria the tenant left unset score full for every
// property; values the listing does not declare score half.
const (
	weightBudget       = 25.0
	weightLocation     = 20.0
	weightLifestyle    = 20.0
	weightBedrooms     = 15.0
	weightBathrooms    = 10.0
	weightPropertyType = 10.0
)

const (
	scoreFull    = 1.0
	scoreNeutral = 0.5
	scoreNone    = 0.0
)

type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

type MatchResult struct {
	MatchScore      float64         `json:"matchScore"`
	MatchCategories []CategoryScore `json:"matchCategories"`
}

var ErrPreferencesNotFound = errors.New("tenant has no stored preferences")

// ScoreProperty compares one tenant's preferences against one property.
// The building argument supplies inherited amenity and city context for
// attached listings and may be nil.
func ScoreProperty(prefs models.Preferences, property models.Property, building *models.Building) (MatchResult, error) {
	categories := []CategoryScore{
		{Category: "budget", Weight: weightBudget, Score: scoreBudget(prefs, property)},
		{Category: "location", Weight: weightLocation, Score: scoreNeutral},
		{Category: "lifestyle", Weight: weightLifestyle, Score: scoreNeutral},
		{Category: "bedrooms", Weight: weightBedrooms, Score: scoreBounds(prefs.MinBedrooms, prefs.MaxBedrooms, property.Bedrooms)},
		{Category: "bathrooms", Weight: weightBathrooms, Score: scoreBounds(prefs.MinBathrooms, nil, property.Bathrooms)},
		{Category: "property_type", Weight: weightPropertyType, Score: scoreNeutral},
	}

	locScore, err := scoreLocation(prefs, property, building)
	if err != nil {
		return MatchResult{}, err
	}
	categories[1].Score = locScore

	lifeScore, err := scoreLifestyle(prefs, property, building)
	if err != nil {
		return MatchResult{}, err
	}
	categories[2].Score = lifeScore

	typeScore, err := scorePropertyType(prefs, property)
	if err != nil {
		return MatchResult{}, err
	}
	categories[5].Score = typeScore

	var total float64
	for _, c := range categories {
		total += c.Score * c.Weight
	}

	return MatchResult{MatchScore: total, MatchCategories: categories}, nil
}

func scoreBudget(prefs models.Preferences, property models.Property) float64 {
	if prefs.MinBudget == nil && prefs.MaxBudget == nil {
		return scoreFull
	}
	if property.Price == nil {
		return scoreNeutral
	}
	price := *property.Price
	if prefs.MaxBudget != nil {
		if price > *prefs.MaxBudget {
			// Slightly over budget still shows up, heavily discounted.
			if price <= *prefs.MaxBudget*1.1 {
				return scoreNeutral
			}
			return scoreNone
		}
	}
	if prefs.MinBudget != nil && price < *prefs.MinBudget {
		return scoreNeutral
	}
	return scoreFull
}

func scoreBounds(min, max, value *int) float64 {
	if min == nil && max == nil {
		return scoreFull
	}
	if value == nil {
		return scoreNeutral
	}
	v := *value
	if min != nil && v < *min {
		if v == *min-1 {
			return scoreNeutral
		}
		return scoreNone
	}
	if max != nil && v > *max {
		if v == *max+1 {
			return scoreNeutral
		}
		return scoreNone
	}
	return scoreFull
}

func scoreLocation(prefs models.Preferences, property models.Property, building *models.Building) (float64, error) {
	wanted, err := models.ParseStrings(prefs.Locations)
	if err != nil {
		return 0, err
	}
	if len(wanted) == 0 {
		return scoreFull, nil
	}

	city := ""
	if property.City != nil {
		city = *property.City
	} else if building != nil {
		city = building.City
	}
	if city == "" {
		return scoreNeutral, nil
	}

	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(w), city) {
			return scoreFull, nil
		}
	}
	return scoreNone, nil
}

func scorePropertyType(prefs models.Preferences, property models.Property) (float64, error) {
	wanted, err := models.ParseStrings(prefs.PropertyTypes)
	if err != nil {
		return 0, err
	}
	if len(wanted) == 0 {
		return scoreFull, nil
	}
	if property.PropertyType == nil {
		return scoreNeutral, nil
	}
	for _, w := range wanted {
		if strings.EqualFold(w, *property.PropertyType) {
			return scoreFull, nil
		}
	}
	return scoreNone, nil
}

func scoreLifestyle(prefs models.Preferences, property models.Property, building *models.Building) (float64, error) {
	wanted, err := models.ParseFeatures(prefs.LifestyleFeatures)
	if err != nil {
		return 0, err
	}
	if len(wanted) == 0 {
		return scoreFull, nil
	}

	available := map[string]bool{}
	for _, col := range []datatypes.JSON{property.LifestyleFeatures, property.Amenities} {
		features, err := models.ParseFeatures(col)
		if err != nil {
			return 0, err
		}
		for _, f := range features {
			available[strings.ToLower(f.Tag)] = true
		}
	}
	if building != nil {
		features, err := models.ParseFeatures(building.Amenities)
		if err == nil {
			for _, f := range features {
				available[strings.ToLower(f.Tag)] = true
			}
		}
	}

	matched := 0
	for _, w := range wanted {
		if available[strings.ToLower(w.Tag)] {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted)), nil
}

// ScoreForTenant computes a fresh match between a tenant's stored
// preferences and a single property.
func ScoreForTenant(db *gorm.DB, tenantID, propertyID uuid.UUID) (MatchResult, error) {
	var prefs models.Preferences
	if err := db.First(&prefs, "user_id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MatchResult{}, ErrPreferencesNotFound
		}
		return MatchResult{}, err
	}

	var property models.Property
	if err := db.Preload("Building").First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MatchResult{}, ErrPropertyNotFound
		}
		return MatchResult{}, err
	}

	return ScoreProperty(prefs, property, property.Building)
}

// RefreshSnapshots recomputes the persisted match score for every
// (tenant with preferences, listed property) pair. One row per pair,
// overwritten in place.
func RefreshSnapshots(db *gorm.DB) (int, error) {
	var prefs []models.Preferences
	if err := db.Find(&prefs).Error; err != nil {
		return 0, err
	}

	var properties []models.Property
	if err := db.Preload("Building").Where("listed = ?", true).Find(&properties).Error; err != nil {
		return 0, err
	}

	refreshed := 0
	now := time.Now()
	for _, p := range prefs {
		for _, property := range properties {
			result, err := ScoreProperty(p, property, property.Building)
			if err != nil {
				return refreshed, err
			}

			breakdown, err := json.Marshal(result.MatchCategories)
			if err != nil {
				return refreshed, err
			}

			snapshot := models.MatchSnapshot{
				TenantID:        p.UserID,
				PropertyID:      property.ID,
				MatchScore:      result.MatchScore,
				MatchCategories: datatypes.JSON(breakdown),
				ComputedAt:      now,
			}
			err = db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "property_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"match_score", "match_categories", "computed_at", "updated_at"}),
			}).Create(&snapshot).Error
			if err != nil {
				return refreshed, err
			}
			refreshed++
		}
	}
	return refreshed, nil
}
