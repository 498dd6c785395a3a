package services

import (
	"errors"

	"github.com/casafind/rental_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateBookingRequest: a request for this (property, tenant)
	// pair already exists. Surfaced as a conflict, never merged.
	ErrDuplicateBookingRequest = errors.New("a booking request already exists for this property and tenant")

	// ErrInvalidStatusValue: the submitted token is not one of the
	// eleven enumerated statuses.
	ErrInvalidStatusValue = models.ErrInvalidBookingStatus

	// ErrInvalidStatusTransition: the token is valid but the move is
	// not allowed from the current stage.
	ErrInvalidStatusTransition = errors.New("booking status transition not allowed")

	// ErrReferentialViolation: the referenced property or tenant does
	// not exist. Rejected before row creation.
	ErrReferentialViolation = errors.New("referenced property or tenant does not exist")

	ErrBookingRequestNotFound = errors.New("booking request not found")
)

// CreateBookingRequest opens a request in status "new". Uniqueness per
// (property, tenant) is enforced by the composite unique index, so two
// concurrent creates race safely: exactly one wins, the other gets
// ErrDuplicateBookingRequest.
func CreateBookingRequest(db *gorm.DB, propertyID, tenantID uuid.UUID) (models.BookingRequest, error) {
	var request models.BookingRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Select("id").First(&property, "id = ?", propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReferentialViolation
			}
			return err
		}
		var tenant models.User
		if err := tx.Select("id").First(&tenant, "id = ?", tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReferentialViolation
			}
			return err
		}

		request = models.BookingRequest{
			PropertyID: propertyID,
			TenantID:   tenantID,
			Status:     models.StatusNew,
		}
		if err := tx.Create(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBookingRequest
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrReferentialViolation
			}
			return err
		}
		return nil
	})

	return request, err
}

// TransitionBookingRequest moves a request to the next lifecycle stage.
// The transition table allows forward progression only: any later stage
// is reachable, cancel_booking is reachable from any non-terminal
// stage, and rented/cancel_booking accept nothing further.
func TransitionBookingRequest(db *gorm.DB, requestID uuid.UUID, next models.BookingStatus) (models.BookingRequest, error) {
	var request models.BookingRequest

	if !next.Valid() {
		return request, ErrInvalidStatusValue
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingRequestNotFound
			}
			return err
		}

		if !request.Status.CanTransitionTo(next) {
			return ErrInvalidStatusTransition
		}

		request.Status = next
		return tx.Save(&request).Error
	})

	return request, err
}
