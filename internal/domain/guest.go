package domain

import "time"

// Person holds the attributes guests and staff share.
type Person struct {
	Name    string `json:"name"`
	Age     int    `json:"age" validate:"gte=0"`
	Contact string `json:"contact"`
}

type Guest struct {
	ID string `json:"id" validate:"required"`
	Person
	Stay        *Stay        `json:"stay,omitempty"`
	Reservation *Reservation `json:"reservation,omitempty"`
	// LastCheckOut is set by a completed check-out and survives later stays.
	LastCheckOut *time.Time `json:"last_check_out,omitempty"`
}

// Stay is an active booking. A guest holds a room exactly while Stay is set.
type Stay struct {
	RoomID           string    `json:"room_id"`
	CheckIn          time.Time `json:"check_in"`
	ExpectedCheckOut time.Time `json:"expected_check_out"`
	Nights           int       `json:"nights"`
	PeakSeason       bool      `json:"peak_season"`
}

type Reservation struct {
	RoomID     string    `json:"room_id"`
	ReservedAt time.Time `json:"reserved_at"`
}

// InHouse reports whether the guest currently occupies a room.
func (g *Guest) InHouse() bool { return g.Stay != nil }

// RoomID returns the current room reference.
func (g *Guest) RoomID() (string, bool) {
	if g.Stay == nil {
		return "", false
	}
	return g.Stay.RoomID, true
}

// StayPhase is the lifecycle state of a guest.
type StayPhase string

const (
	Unbooked   StayPhase = "unbooked"
	Reserved   StayPhase = "reserved"
	CheckedIn  StayPhase = "checked_in"
	CheckedOut StayPhase = "checked_out"
)

// Phase derives the lifecycle state from the stay fields.
func (g *Guest) Phase() StayPhase {
	switch {
	case g.Stay != nil:
		return CheckedIn
	case g.Reservation != nil:
		return Reserved
	case g.LastCheckOut != nil:
		return CheckedOut
	default:
		return Unbooked
	}
}

// StayReceipt is the structured result of a check-in or check-out.
type StayReceipt struct {
	GuestID    string    `json:"guest_id"`
	RoomID     string    `json:"room_id"`
	Nights     int       `json:"nights"`
	PeakSeason bool      `json:"peak_season"`
	Cost       float64   `json:"cost"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}
