package services

import (
	"testing"

	"github.com/casafind/rental_marketplace/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequestStartsNew(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	request, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, request.ID)
	assert.Equal(t, models.StatusNew, request.Status)
	assert.Equal(t, property.ID, request.PropertyID)
	assert.Equal(t, tenant.ID, request.TenantID)
}

func TestCreateBookingRequestRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	_, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	_, err = CreateBookingRequest(db, property.ID, tenant.ID)
	assert.ErrorIs(t, err, ErrDuplicateBookingRequest)

	var count int64
	require.NoError(t, db.Model(&models.BookingRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateBookingRequestAllowsSameTenantOtherProperty(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	first := createTestProperty(t, db, nil)
	second := createTestProperty(t, db, nil)

	_, err := CreateBookingRequest(db, first.ID, tenant.ID)
	require.NoError(t, err)

	_, err = CreateBookingRequest(db, second.ID, tenant.ID)
	assert.NoError(t, err)
}

func TestCreateBookingRequestUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	_, err := CreateBookingRequest(db, uuid.New(), tenant.ID)
	assert.ErrorIs(t, err, ErrReferentialViolation)

	_, err = CreateBookingRequest(db, property.ID, uuid.New())
	assert.ErrorIs(t, err, ErrReferentialViolation)
}

func TestTransitionBookingRequestWalksFullLifecycle(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	request, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	stages := []models.BookingStatus{
		models.StatusContacting,
		models.StatusKycReferencing,
		models.StatusApprovedViewing,
		models.StatusViewing,
		models.StatusContract,
		models.StatusDeposit,
		models.StatusFullPayment,
		models.StatusMoveIn,
		models.StatusRented,
	}
	for _, next := range stages {
		request, err = TransitionBookingRequest(db, request.ID, next)
		require.NoError(t, err, "transition to %q", next)
		assert.Equal(t, next, request.Status)
	}
}

func TestTransitionBookingRequestAllowsStageCompression(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	request, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	request, err = TransitionBookingRequest(db, request.ID, models.StatusRented)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRented, request.Status)

	// rented is terminal, nothing moves it back.
	_, err = TransitionBookingRequest(db, request.ID, models.StatusNew)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	var stored models.BookingRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.StatusRented, stored.Status)
}

func TestTransitionBookingRequestRejectsUnknownToken(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	request, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	_, err = TransitionBookingRequest(db, request.ID, models.BookingStatus("approved"))
	assert.ErrorIs(t, err, ErrInvalidStatusValue)

	var stored models.BookingRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.StatusNew, stored.Status)
}

func TestTransitionBookingRequestCancellation(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)

	request, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)

	request, err = TransitionBookingRequest(db, request.ID, models.StatusCancelBooking)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelBooking, request.Status)

	_, err = TransitionBookingRequest(db, request.ID, models.StatusContacting)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestTransitionBookingRequestNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := TransitionBookingRequest(db, uuid.New(), models.StatusContacting)
	assert.ErrorIs(t, err, ErrBookingRequestNotFound)
}

func TestDeletingPropertyCascadesToRequests(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	property := createTestProperty(t, db, nil)
	other := createTestProperty(t, db, nil)

	_, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)
	kept, err := CreateBookingRequest(db, other.ID, tenant.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Property{}, "id = ?", property.ID).Error)

	var remaining []models.BookingRequest
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestDeletingTenantCascadesToRequests(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db, "tenant@example.com")
	other := createTestTenant(t, db, "other@example.com")
	property := createTestProperty(t, db, nil)

	_, err := CreateBookingRequest(db, property.ID, tenant.ID)
	require.NoError(t, err)
	kept, err := CreateBookingRequest(db, property.ID, other.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", tenant.ID).Error)

	var remaining []models.BookingRequest
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	// After the cascade the pair is free again.
	recreated := createTestTenant(t, db, "tenant@example.com")
	_, err = CreateBookingRequest(db, property.ID, recreated.ID)
	assert.NoError(t, err)
}
