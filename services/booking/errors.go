package booking

import "lawease/utils"

var (
	ErrBookingNotFound    = utils.NewNotFound("Booking not found")
	ErrNotParty           = utils.NewForbidden("You are not allowed to access this booking")
	ErrNotBookedLawyer    = utils.NewForbidden("Only the booked lawyer can update this booking")
	ErrSelfBooking        = utils.NewValidation("You cannot book a consultation with yourself")
	ErrPastSlot           = utils.NewValidation("Bookings must be scheduled in the future")
	ErrInvalidStatus      = utils.NewValidation("Invalid booking status")
	ErrAlreadyFinal       = utils.NewDomain("Cannot cancel a booking that is already completed or cancelled")
	ErrCancellationWindow = utils.NewDomain("Confirmed bookings can only be cancelled at least 24 hours in advance")
	ErrNotPayable         = utils.NewDomain("Only confirmed bookings can be paid")
	ErrNoLawyerProfile    = utils.NewForbidden("You do not have a lawyer profile")
)
