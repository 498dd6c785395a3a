package handlers_test

import (
	"net/http"
	"testing"

	"github.com/casafind/rental_marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePropertySparseDraft(t *testing.T) {
	app := setupTestApp(t)
	landlord := createUser(t, "landlord@example.com", "tenant")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties", tokenFor(t, landlord), map[string]any{
		"title": "Spare room in Hackney",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Property
	decodeBody(t, resp, &created)
	assert.Nil(t, created.Price)
	assert.Nil(t, created.Bedrooms)
	assert.Nil(t, created.City)
	assert.False(t, created.Listed)

	// A tenant-role creator is a private landlord and still manages
	// their own listing.
	require.NotNil(t, created.OperatorID)
	assert.Equal(t, landlord.ID, *created.OperatorID)
}

func TestPrivateLandlordManagesOwnListing(t *testing.T) {
	app := setupTestApp(t)
	landlord := createUser(t, "landlord@example.com", "tenant")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties", tokenFor(t, landlord), map[string]any{
		"title": "Spare room in Hackney",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Property
	decodeBody(t, resp, &created)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/properties/"+created.ID.String(), tokenFor(t, landlord), map[string]any{
		"title": "Sunny spare room in Hackney",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/properties/"+created.ID.String(), tokenFor(t, landlord), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatePropertyOperatorOwnsListing(t *testing.T) {
	app := setupTestApp(t)
	operator := createUser(t, "operator@example.com", "operator")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties", tokenFor(t, operator), map[string]any{
		"title": "Managed one-bed",
		"city":  "London",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Property
	decodeBody(t, resp, &created)
	require.NotNil(t, created.OperatorID)
	assert.Equal(t, operator.ID, *created.OperatorID)
}

func TestCreatePropertyRejectsUntaggedFeature(t *testing.T) {
	app := setupTestApp(t)
	operator := createUser(t, "operator@example.com", "operator")

	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties", tokenFor(t, operator), map[string]any{
		"title":              "Bad feature list",
		"lifestyle_features": []map[string]string{{"value": "no tag here"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPropertiesFiltersAndHidesDrafts(t *testing.T) {
	app := setupTestApp(t)

	createProperty(t, func(p *models.Property) {
		p.Title = "Listed in London"
		p.City = strP("London")
		p.Price = floatP(1500)
		p.Listed = true
	})
	createProperty(t, func(p *models.Property) {
		p.Title = "Listed in Leeds"
		p.City = strP("Leeds")
		p.Price = floatP(900)
		p.Listed = true
	})
	createProperty(t, func(p *models.Property) {
		p.Title = "Draft in London"
		p.City = strP("London")
	})

	resp := doRequest(t, app, http.MethodGet, "/api/v1/properties", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []models.Property
	decodeBody(t, resp, &all)
	assert.Len(t, all, 2)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/properties?city=london", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var london []models.Property
	decodeBody(t, resp, &london)
	require.Len(t, london, 1)
	assert.Equal(t, "Listed in London", london[0].Title)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/properties?max_price=1000", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cheap []models.Property
	decodeBody(t, resp, &cheap)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Listed in Leeds", cheap[0].Title)
}

func TestListPropertiesClampsPagination(t *testing.T) {
	app := setupTestApp(t)

	createProperty(t, func(p *models.Property) {
		p.Listed = true
	})
	createProperty(t, func(p *models.Property) {
		p.Listed = true
	})

	// Out-of-range values fall back to the first page and default size
	// instead of producing a negative offset or an unbounded limit.
	resp := doRequest(t, app, http.MethodGet, "/api/v1/properties?page=0&page_size=-5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []models.Property
	decodeBody(t, resp, &results)
	assert.Len(t, results, 2)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/properties?page_size=100000", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &results)
	assert.Len(t, results, 2)
}

func TestPublishPropertyEndpoint(t *testing.T) {
	app := setupTestApp(t)
	operator := createUser(t, "operator@example.com", "operator")

	incomplete := createProperty(t, func(p *models.Property) {
		p.OperatorID = &operator.ID
	})
	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties/"+incomplete.ID.String()+"/publish",
		tokenFor(t, operator), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	complete := createProperty(t, func(p *models.Property) {
		p.OperatorID = &operator.ID
		p.City = strP("London")
		p.Price = floatP(1800)
		p.Bedrooms = intP(2)
		p.Bathrooms = intP(1)
		p.PropertyType = strP("flat")
		p.Images = jsonList(`["https://cdn.example.com/a.jpg"]`)
	})
	resp = doRequest(t, app, http.MethodPost, "/api/v1/properties/"+complete.ID.String()+"/publish",
		tokenFor(t, operator), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var published models.Property
	decodeBody(t, resp, &published)
	assert.True(t, published.Listed)
}

func TestPublishPropertyOwnershipCheck(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "operator")
	stranger := createUser(t, "stranger@example.com", "tenant")

	draft := createProperty(t, func(p *models.Property) {
		p.OperatorID = &owner.ID
		p.City = strP("London")
		p.Price = floatP(1800)
		p.Bedrooms = intP(2)
		p.Bathrooms = intP(1)
		p.PropertyType = strP("flat")
		p.Images = jsonList(`["https://cdn.example.com/a.jpg"]`)
	})

	// An unrelated account cannot flip someone else's draft live.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/properties/"+draft.ID.String()+"/publish",
		tokenFor(t, stranger), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var stored models.Property
	require.NoError(t, testDB().First(&stored, "id = ?", draft.ID).Error)
	assert.False(t, stored.Listed)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/properties/"+draft.ID.String()+"/publish",
		tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdatePropertyOwnershipCheck(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "operator")
	rival := createUser(t, "rival@example.com", "operator")

	property := createProperty(t, func(p *models.Property) {
		p.OperatorID = &owner.ID
	})

	body := map[string]any{"title": "Renamed listing"}

	resp := doRequest(t, app, http.MethodPut, "/api/v1/properties/"+property.ID.String(), tokenFor(t, rival), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/v1/properties/"+property.ID.String(), tokenFor(t, owner), body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Property
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Renamed listing", updated.Title)
}

func TestDeletePropertyCascadesBookings(t *testing.T) {
	app := setupTestApp(t)
	owner := createUser(t, "owner@example.com", "operator")
	tenant := createUser(t, "tenant@example.com", "tenant")

	property := createProperty(t, func(p *models.Property) {
		p.OperatorID = &owner.ID
	})
	request := models.BookingRequest{PropertyID: property.ID, TenantID: tenant.ID}
	require.NoError(t, testDB().Create(&request).Error)

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/properties/"+property.ID.String(), tokenFor(t, owner), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, testDB().Model(&models.BookingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetPropertyMatchEndpoint(t *testing.T) {
	app := setupTestApp(t)
	tenant := createUser(t, "tenant@example.com", "tenant")

	property := createProperty(t, func(p *models.Property) {
		p.City = strP("London")
		p.Price = floatP(1500)
		p.Listed = true
	})

	// No preferences on file yet.
	resp := doRequest(t, app, http.MethodGet, "/api/v1/properties/"+property.ID.String()+"/match",
		tokenFor(t, tenant), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	prefs := models.Preferences{
		UserID:    tenant.ID,
		MaxBudget: floatP(2000),
		Locations: jsonList(`["London"]`),
	}
	require.NoError(t, testDB().Create(&prefs).Error)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/properties/"+property.ID.String()+"/match",
		tokenFor(t, tenant), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		MatchScore      float64 `json:"matchScore"`
		MatchCategories []struct {
			Category string  `json:"category"`
			Score    float64 `json:"score"`
			Weight   float64 `json:"weight"`
		} `json:"matchCategories"`
	}
	decodeBody(t, resp, &result)
	assert.InDelta(t, 100.0, result.MatchScore, 0.001)
	assert.Len(t, result.MatchCategories, 6)
}
