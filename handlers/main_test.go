package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/casafind/rental_marketplace/configs"
	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/models"
	"github.com/casafind/rental_marketplace/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

// setupTestApp wires a fresh in-memory database into the package-level
// connection and registers the real route tree, so requests go through
// the same auth middleware and handlers as production traffic.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.C = &config.Config{
		Port:      "8080",
		JWTSecret: testJWTSecret,
	}

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
	database.DB = db

	app := fiber.New()
	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.PropertyRoutes(app)
	routes.BuildingRoutes(app)
	routes.BookingRoutes(app)
	routes.PreferencesRoutes(app)
	routes.TenantCvRoutes(app)

	return app
}

func testDB() *gorm.DB { return database.DB }

func strP(s string) *string     { return &s }
func intP(i int) *int           { return &i }
func floatP(f float64) *float64 { return &f }

func jsonList(raw string) datatypes.JSON { return datatypes.JSON([]byte(raw)) }

func createUser(t *testing.T, email, role string) models.User {
	t.Helper()

	user := models.User{
		FullName: "Test User",
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createProperty(t *testing.T, mutate func(*models.Property)) models.Property {
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
	require.NoError(t, database.DB.Create(&property).Error)
	return property
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
