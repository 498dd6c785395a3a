package services

import (
	"testing"

	"github.com/casafind/rental_marketplace/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway in-memory database per test. Foreign
// keys are switched on so cascade behaviour matches production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.ResidentialComplex{},
		&models.Property{},
		&models.BookingRequest{},
		&models.Preferences{},
		&models.TenantCv{},
		&models.MatchSnapshot{},
		&models.Message{},
	))

	return db
}

func createTestTenant(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		FullName: "Test Tenant",
		Email:    email,
		Password: "hashed",
		Role:     "tenant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProperty(t *testing.T, db *gorm.DB, mutate func(*models.Property)) models.Property {
	t.Helper()

	property := models.Property{
		Title:             "Test Flat",
		LifestyleFeatures: models.EmptyFeatureList,
		Amenities:         models.EmptyFeatureList,
		CommuteTimes:      models.EmptyFeatureList,
		Images:            models.EmptyFeatureList,
		Documents:         models.EmptyFeatureList,
		TenantTypes:       models.EmptyFeatureList,
	}
	if mutate != nil {
		mutate(&property)
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
