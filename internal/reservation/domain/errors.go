package domain

import "errors"

// Sentinel errors recovered at the delivery boundary and mapped to
// transport status codes.
var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrLineNotFound        = errors.New("reservation material not found")
	ErrMemberNotFound      = errors.New("team member not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrGroupNotFound       = errors.New("group not found")

	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTimeWindow = errors.New("start time must be before end time")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrInvalidQuantity   = errors.New("quantity out of range")
	ErrDuplicateMember   = errors.New("user is already a team member of this reservation")

	// ErrConflict signals that a concurrent mutation invalidated the
	// precondition of a guarded write.
	ErrConflict = errors.New("conflicting concurrent update")
)
