package handlers_test

import (
	"net/http"
	"testing"

	"github.com/casafind/rental_marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertMyPreferencesCreatesSingleRow(t *testing.T) {
	app := setupTestApp(t)
	tenant := createUser(t, "tenant@example.com", "tenant")

	resp := doRequest(t, app, http.MethodPut, "/api/v1/preferences/me", tokenFor(t, tenant), map[string]any{
		"max_budget":   2000,
		"min_bedrooms": 1,
		"locations":    []string{"London"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second upsert replaces the row instead of adding one.
	resp = doRequest(t, app, http.MethodPut, "/api/v1/preferences/me", tokenFor(t, tenant), map[string]any{
		"max_budget": 2500,
		"locations":  []string{"Brighton"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, testDB().Model(&models.Preferences{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.Preferences
	require.NoError(t, testDB().First(&stored, "user_id = ?", tenant.ID).Error)
	require.NotNil(t, stored.MaxBudget)
	assert.InDelta(t, 2500, *stored.MaxBudget, 0.001)
	assert.Nil(t, stored.MinBedrooms)

	locations, err := models.ParseStrings(stored.Locations)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brighton"}, locations)
}

func TestUpsertMyPreferencesRejectsInvertedBounds(t *testing.T) {
	app := setupTestApp(t)
	tenant := createUser(t, "tenant@example.com", "tenant")

	resp := doRequest(t, app, http.MethodPut, "/api/v1/preferences/me", tokenFor(t, tenant), map[string]any{
		"min_budget": 3000,
		"max_budget": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/preferences/me", tokenFor(t, tenant), map[string]any{
		"min_bedrooms": 4,
		"max_bedrooms": 2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMyPreferences(t *testing.T) {
	app := setupTestApp(t)
	tenant := createUser(t, "tenant@example.com", "tenant")

	resp := doRequest(t, app, http.MethodGet, "/api/v1/preferences/me", tokenFor(t, tenant), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	prefs := models.Preferences{UserID: tenant.ID, MaxBudget: floatP(1800)}
	require.NoError(t, testDB().Create(&prefs).Error)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/preferences/me", tokenFor(t, tenant), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Preferences
	decodeBody(t, resp, &stored)
	require.NotNil(t, stored.MaxBudget)
	assert.InDelta(t, 1800, *stored.MaxBudget, 0.001)
}
