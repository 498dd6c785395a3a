package models

import "errors"

// BookingStatus is the lifecycle stage of a BookingRequest. The eleven
// literal tokens are stored verbatim (postgres enum booking_status) and
// must not change, existing rows and API clients depend on them.
type BookingStatus string

const (
	StatusNew             BookingStatus = "new"
	StatusContacting      BookingStatus = "contacting"
	StatusKycReferencing  BookingStatus = "kyc_referencing"
	StatusApprovedViewing BookingStatus = "approved_viewing"
	StatusViewing         BookingStatus = "viewing"
	StatusContract        BookingStatus = "contract"
	StatusDeposit         BookingStatus = "deposit"
	StatusFullPayment     BookingStatus = "full_payment"
	StatusMoveIn          BookingStatus = "move_in"
	StatusRented          BookingStatus = "rented"
	StatusCancelBooking   BookingStatus = "cancel_booking"
)

var ErrInvalidBookingStatus = errors.New("invalid booking status value")

// stageOrder ranks the workflow stages. cancel_booking sits outside the
// progression and is reachable from any non-terminal stage.
var stageOrder = map[BookingStatus]int{
	StatusNew:             0,
	StatusContacting:      1,
	StatusKycReferencing:  2,
	StatusApprovedViewing: 3,
	StatusViewing:         4,
	StatusContract:        5,
	StatusDeposit:         6,
	StatusFullPayment:     7,
	StatusMoveIn:          8,
	StatusRented:          9,
}

// AllBookingStatuses lists every accepted token, in workflow order.
var AllBookingStatuses = []BookingStatus{
	StatusNew,
	StatusContacting,
	StatusKycReferencing,
	StatusApprovedViewing,
	StatusViewing,
	StatusContract,
	StatusDeposit,
	StatusFullPayment,
	StatusMoveIn,
	StatusRented,
	StatusCancelBooking,
}

func (s BookingStatus) Valid() bool {
	if s == StatusCancelBooking {
		return true
	}
	_, ok := stageOrder[s]
	return ok
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == StatusRented || s == StatusCancelBooking
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Progression is forward-only; operators may compress stages, so any
// strictly later stage is reachable, and cancel_booking is reachable
// from every non-terminal stage.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelBooking {
		return true
	}
	return stageOrder[next] > stageOrder[s]
}
