package app

import (
	"fmt"

	"hotel_ops/internal/domain"
	"hotel_ops/internal/shared"
)

// Registry owns the rooms and their occupancy/cleanliness state.
type Registry struct {
	rooms map[string]*domain.Room
	order []string
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*domain.Room)}
}

// Add inserts room. Unset states default to vacant and clean.
func (r *Registry) Add(room domain.Room) error {
	if err := shared.ValidateStruct(room); err != nil {
		return fmt.Errorf("room: %w", err)
	}
	if _, ok := r.rooms[room.ID]; ok {
		return fmt.Errorf("room %q: %w", room.ID, domain.ErrDuplicateKey)
	}
	if room.Occupancy == "" {
		room.Occupancy = domain.Vacant
	}
	if room.Cleanliness == "" {
		room.Cleanliness = domain.Clean
	}
	if room.Occupancy != domain.Vacant && room.Occupancy != domain.Occupied {
		return fmt.Errorf("room %q: occupancy %q: %w", room.ID, room.Occupancy, domain.ErrInvalidArgument)
	}
	if room.Cleanliness != domain.Clean && room.Cleanliness != domain.Dirty {
		return fmt.Errorf("room %q: cleanliness %q: %w", room.ID, room.Cleanliness, domain.ErrInvalidArgument)
	}
	r.rooms[room.ID] = &room
	r.order = append(r.order, room.ID)
	return nil
}

func (r *Registry) Find(id string) (domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("room %q: %w", id, domain.ErrNotFound)
	}
	return *room, nil
}

func (r *Registry) MarkOccupied(id string) error { return r.setOccupancy(id, domain.Occupied) }
func (r *Registry) MarkVacant(id string) error   { return r.setOccupancy(id, domain.Vacant) }
func (r *Registry) MarkClean(id string) error    { return r.setCleanliness(id, domain.Clean) }
func (r *Registry) MarkDirty(id string) error    { return r.setCleanliness(id, domain.Dirty) }

func (r *Registry) setOccupancy(id string, to domain.Occupancy) error {
	room, ok := r.rooms[id]
	if !ok {
		return fmt.Errorf("room %q: %w", id, domain.ErrNotFound)
	}
	if room.Occupancy == to {
		return fmt.Errorf("room %q already %s: %w", id, to, domain.ErrInvalidStateTransition)
	}
	room.Occupancy = to
	return nil
}

func (r *Registry) setCleanliness(id string, to domain.Cleanliness) error {
	room, ok := r.rooms[id]
	if !ok {
		return fmt.Errorf("room %q: %w", id, domain.ErrNotFound)
	}
	if room.Cleanliness == to {
		return fmt.Errorf("room %q already %s: %w", id, to, domain.ErrInvalidStateTransition)
	}
	room.Cleanliness = to
	return nil
}

// ListAvailable returns vacant, clean rooms in insertion order. Not cached.
func (r *Registry) ListAvailable() []domain.Room {
	var out []domain.Room
	for _, id := range r.order {
		if room := r.rooms[id]; room.Available() {
			out = append(out, *room)
		}
	}
	return out
}

// All returns every room in insertion order.
func (r *Registry) All() []domain.Room {
	out := make([]domain.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.rooms[id])
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }
