package domain

type Occupancy string

const (
	Vacant   Occupancy = "vacant"
	Occupied Occupancy = "occupied"
)

type Cleanliness string

const (
	Clean Cleanliness = "clean"
	Dirty Cleanliness = "dirty"
)

type Room struct {
	ID          string      `json:"id" validate:"required"`
	Category    string      `json:"category"`
	NightlyRate float64     `json:"nightly_rate" validate:"gt=0"`
	Occupancy   Occupancy   `json:"occupancy"`
	Cleanliness Cleanliness `json:"cleanliness"`
}

// Available reports whether the room can take a new guest.
func (r Room) Available() bool {
	return r.Occupancy == Vacant && r.Cleanliness == Clean
}

// RoomInfo is the read-only view returned by reporting queries.
type RoomInfo struct {
	RoomID      string  `json:"room_id"`
	Category    string  `json:"category"`
	NightlyRate float64 `json:"nightly_rate"`
}
