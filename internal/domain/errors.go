package domain

import "errors"

var (
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrNotFound               = errors.New("not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrRoomUnavailable        = errors.New("room unavailable")
	ErrAlreadyCheckedIn       = errors.New("guest already checked in")
	ErrNotCheckedIn           = errors.New("guest not checked in")
	ErrNoStaffAvailable       = errors.New("no staff available")
	ErrInvalidGuest           = errors.New("invalid guest")
)

// Error kinds as they appear in structured results and problem responses.
const (
	KindNone                   = ""
	KindDuplicateKey           = "duplicate_key"
	KindNotFound               = "not_found"
	KindInvalidArgument        = "invalid_argument"
	KindInvalidStateTransition = "invalid_state_transition"
	KindRoomUnavailable        = "room_unavailable"
	KindAlreadyCheckedIn       = "already_checked_in"
	KindNotCheckedIn           = "not_checked_in"
	KindNoStaffAvailable       = "no_staff_available"
	KindInvalidGuest           = "invalid_guest"
	KindInternal               = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrDuplicateKey, KindDuplicateKey},
	{ErrNotFound, KindNotFound},
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrInvalidStateTransition, KindInvalidStateTransition},
	{ErrRoomUnavailable, KindRoomUnavailable},
	{ErrAlreadyCheckedIn, KindAlreadyCheckedIn},
	{ErrNotCheckedIn, KindNotCheckedIn},
	{ErrNoStaffAvailable, KindNoStaffAvailable},
	{ErrInvalidGuest, KindInvalidGuest},
}

// KindOf maps err onto its taxonomy kind. Errors outside the taxonomy are "internal".
func KindOf(err error) string {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
