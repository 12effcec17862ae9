package domain

import "time"

type ServiceKind string

const (
	ServiceCheckIn   ServiceKind = "check-in"
	ServiceCheckOut  ServiceKind = "check-out"
	ServiceClean     ServiceKind = "clean"
	ServiceServeMeal ServiceKind = "serve-meal"
)

// CleaningTasks are independent; any subset may be requested.
type CleaningTasks struct {
	DeepClean       bool `json:"deep_clean"`
	ChangeSheets    bool `json:"change_sheets"`
	VacuumCarpet    bool `json:"vacuum_carpet"`
	CleanBathroom   bool `json:"clean_bathroom"`
	RestockSupplies bool `json:"restock_supplies"`
}

// List names the requested tasks in a stable order.
func (t CleaningTasks) List() []string {
	var out []string
	if t.DeepClean {
		out = append(out, "deep_clean")
	}
	if t.ChangeSheets {
		out = append(out, "change_sheets")
	}
	if t.VacuumCarpet {
		out = append(out, "vacuum_carpet")
	}
	if t.CleanBathroom {
		out = append(out, "clean_bathroom")
	}
	if t.RestockSupplies {
		out = append(out, "restock_supplies")
	}
	return out
}

// ServiceParams carries the inputs of every service kind; each kind reads its own fields.
type ServiceParams struct {
	RoomID   string        `json:"room_id"`
	Nights   int           `json:"nights"`
	Tasks    CleaningTasks `json:"tasks"`
	Dish     string        `json:"dish"`
	Quantity int           `json:"quantity"`
}

type MealOrder struct {
	ID       string    `json:"id"`
	ChefID   string    `json:"chef_id"`
	GuestID  string    `json:"guest_id"`
	Dish     string    `json:"dish"`
	Quantity int       `json:"quantity"`
	ServedAt time.Time `json:"served_at"`
}

type CleaningRecord struct {
	HousekeeperID string    `json:"housekeeper_id"`
	RoomID        string    `json:"room_id"`
	Tasks         []string  `json:"tasks"`
	CleanedAt     time.Time `json:"cleaned_at"`
}

// Failure describes why a service request did not complete.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ServiceResult is what the hotel hands back for every service request.
type ServiceResult struct {
	OK        bool         `json:"ok"`
	Kind      ServiceKind  `json:"kind"`
	GuestID   string       `json:"guest_id"`
	RoomID    string       `json:"room_id,omitempty"`
	StaffID   string       `json:"staff_id,omitempty"`
	StaffName string       `json:"staff_name,omitempty"`
	Cost      *float64     `json:"cost,omitempty"`
	Receipt   *StayReceipt `json:"receipt,omitempty"`
	Meal      *MealOrder   `json:"meal,omitempty"`
	Failure   *Failure     `json:"failure,omitempty"`
}
