package domain

import "time"

type EventKind string

const (
	EventRoomAdded           EventKind = "room.added"
	EventGuestAdded          EventKind = "guest.added"
	EventStaffAdded          EventKind = "staff.added"
	EventGuestReserved       EventKind = "guest.reserved"
	EventReservationCanceled EventKind = "reservation.canceled"
	EventGuestCheckedIn      EventKind = "guest.checked_in"
	EventGuestCheckedOut     EventKind = "guest.checked_out"
	EventRoomCleaned         EventKind = "room.cleaned"
	EventMealServed          EventKind = "meal.served"
)

// Event is an append-only record of a completed hotel operation.
type Event struct {
	ID         string
	Kind       EventKind
	GuestID    string
	RoomID     string
	StaffID    string
	Amount     *float64
	Payload    []byte // JSON detail, optional
	OccurredAt time.Time
}
