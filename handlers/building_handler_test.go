package handlers_test

import (
	"net/http"
	"testing"

	"github.com/casafind/rental_marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBuildingRequiresOperatorRole(t *testing.T) {
	app := setupTestApp(t)
	tenant := createUser(t, "tenant@example.com", "tenant")
	operator := createUser(t, "operator@example.com", "operator")

	body := map[string]any{
		"name":           "The Nine Elms",
		"address_line_1": "9 Elm Street",
		"city":           "London",
		"postcode":       "SW8 5BL",
		"amenities":      []map[string]string{{"tag": "gym"}, {"tag": "roof_terrace"}},
	}

	resp := doRequest(t, app, http.MethodPost, "/api/v1/buildings", tokenFor(t, tenant), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/buildings", tokenFor(t, operator), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Building
	decodeBody(t, resp, &created)
	assert.Equal(t, "The Nine Elms", created.Name)
	require.NotNil(t, created.OperatorID)
	assert.Equal(t, operator.ID, *created.OperatorID)
}

func TestGetBuildingShowsOnlyListedProperties(t *testing.T) {
	app := setupTestApp(t)
	operator := createUser(t, "operator@example.com", "operator")

	building := models.Building{
		Name:         "Canal Works",
		AddressLine1: "1 Canal Street",
		City:         "Manchester",
		Postcode:     "M1 1AA",
		OperatorID:   &operator.ID,
	}
	require.NoError(t, testDB().Create(&building).Error)

	createProperty(t, func(p *models.Property) {
		p.Title = "Listed unit"
		p.BuildingID = &building.ID
		p.Listed = true
	})
	createProperty(t, func(p *models.Property) {
		p.Title = "Draft unit"
		p.BuildingID = &building.ID
	})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/buildings/"+building.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Building
	decodeBody(t, resp, &fetched)
	require.Len(t, fetched.Properties, 1)
	assert.Equal(t, "Listed unit", fetched.Properties[0].Title)
}

func TestDeleteBuildingDetachesProperties(t *testing.T) {
	app := setupTestApp(t)
	operator := createUser(t, "operator@example.com", "operator")

	building := models.Building{
		Name:         "Canal Works",
		AddressLine1: "1 Canal Street",
		City:         "Manchester",
		Postcode:     "M1 1AA",
		OperatorID:   &operator.ID,
	}
	require.NoError(t, testDB().Create(&building).Error)

	unit := createProperty(t, func(p *models.Property) {
		p.BuildingID = &building.ID
		p.Listed = true
	})

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/buildings/"+building.ID.String(), tokenFor(t, operator), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The unit survives its building and becomes standalone.
	var survivor models.Property
	require.NoError(t, testDB().First(&survivor, "id = ?", unit.ID).Error)
	assert.Nil(t, survivor.BuildingID)
	assert.True(t, survivor.Listed)
}
