package domain

import "context"

// Journal receives every completed operation. Implementations must not block for long.
type Journal interface {
	Record(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Summary is the structured counterpart of the hotel info report.
type Summary struct {
	HotelName    string       `json:"hotel_name"`
	Address      string       `json:"address"`
	Rooms        int          `json:"rooms"`
	Available    int          `json:"available"`
	Occupied     int          `json:"occupied"`
	Dirty        int          `json:"dirty"`
	Guests       int          `json:"guests"`
	InHouse      int          `json:"in_house"`
	Reservations int          `json:"reservations"`
	Staff        map[Role]int `json:"staff"`
	MealsServed  int          `json:"meals_served"`
	RoomsCleaned int          `json:"rooms_cleaned"`
	Version      uint64       `json:"version"`
}
