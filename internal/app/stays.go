package app

import (
	"fmt"
	"strings"
	"time"

	"hotel_ops/internal/domain"
	"hotel_ops/internal/pricing"
)

const day = 24 * time.Hour

// MaxNights caps a single stay so the expected check-out stays representable.
const MaxNights = 3650

// Stays drives guests through reservation, check-in and check-out against the registry.
// Every operation validates first, then transitions state, then prices; a failed
// call leaves guest and room untouched.
type Stays struct {
	rooms   *Registry
	pricing *pricing.Policy
	season  pricing.Season
	now     func() time.Time

	held map[string]string // room id -> guest id holding a reservation
}

func NewStays(rooms *Registry, p *pricing.Policy, season pricing.Season, now func() time.Time) *Stays {
	if now == nil {
		now = time.Now
	}
	return &Stays{rooms: rooms, pricing: p, season: season, now: now, held: make(map[string]string)}
}

// CheckIn books g into roomID for nights and returns the undiscounted room cost.
func (s *Stays) CheckIn(g *domain.Guest, roomID string, nights int) (domain.StayReceipt, error) {
	room, err := s.validateCheckIn(g, roomID, nights)
	if err != nil {
		return domain.StayReceipt{}, err
	}

	at := s.now()
	peak := s.season.IsPeak(at)
	cost, err := s.pricing.RoomCost(room.NightlyRate, nights, peak)
	if err != nil {
		return domain.StayReceipt{}, err
	}

	if err := s.rooms.MarkOccupied(room.ID); err != nil {
		return domain.StayReceipt{}, err
	}
	s.dropReservation(g)
	g.Stay = &domain.Stay{
		RoomID:           room.ID,
		CheckIn:          at,
		ExpectedCheckOut: at.Add(time.Duration(nights) * day),
		Nights:           nights,
		PeakSeason:       peak,
	}

	return domain.StayReceipt{
		GuestID:    g.ID,
		RoomID:     room.ID,
		Nights:     nights,
		PeakSeason: peak,
		Cost:       cost,
		CheckIn:    at,
		CheckOut:   g.Stay.ExpectedCheckOut,
	}, nil
}

func validateCheckOut(g *domain.Guest) error {
	if err := validGuest(g); err != nil {
		return err
	}
	if g.Stay == nil {
		return fmt.Errorf("guest %q: %w", g.ID, domain.ErrNotCheckedIn)
	}
	return nil
}

func (s *Stays) validateCheckIn(g *domain.Guest, roomID string, nights int) (domain.Room, error) {
	if err := validGuest(g); err != nil {
		return domain.Room{}, err
	}
	if nights <= 0 {
		return domain.Room{}, fmt.Errorf("nights must be positive, got %d: %w", nights, domain.ErrInvalidArgument)
	}
	if nights > MaxNights {
		return domain.Room{}, fmt.Errorf("nights %d exceeds %d: %w", nights, MaxNights, domain.ErrInvalidArgument)
	}
	if current, ok := g.RoomID(); ok {
		return domain.Room{}, fmt.Errorf("guest %q holds room %q: %w", g.ID, current, domain.ErrAlreadyCheckedIn)
	}
	room, err := s.rooms.Find(roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if !room.Available() {
		return domain.Room{}, fmt.Errorf("room %q is %s and %s: %w", room.ID, room.Occupancy, room.Cleanliness, domain.ErrRoomUnavailable)
	}
	if holder, ok := s.held[room.ID]; ok && holder != g.ID {
		return domain.Room{}, fmt.Errorf("room %q is reserved: %w", room.ID, domain.ErrRoomUnavailable)
	}
	return room, nil
}

// CheckOut closes the active stay of g. At least one night is always charged.
func (s *Stays) CheckOut(g *domain.Guest) (domain.StayReceipt, error) {
	if err := validateCheckOut(g); err != nil {
		return domain.StayReceipt{}, err
	}
	stay := *g.Stay

	room, err := s.rooms.Find(stay.RoomID)
	if err != nil {
		return domain.StayReceipt{}, err
	}
	if room.Occupancy != domain.Occupied {
		return domain.StayReceipt{}, fmt.Errorf("room %q is %s: %w", room.ID, room.Occupancy, domain.ErrInvalidStateTransition)
	}

	at := s.now()
	nights := ElapsedNights(stay.CheckIn, at)
	cost, err := s.pricing.RoomCost(room.NightlyRate, nights, stay.PeakSeason)
	if err != nil {
		return domain.StayReceipt{}, err
	}

	if err := s.rooms.MarkVacant(room.ID); err != nil {
		return domain.StayReceipt{}, err
	}
	if room.Cleanliness != domain.Dirty {
		if err := s.rooms.MarkDirty(room.ID); err != nil {
			return domain.StayReceipt{}, err
		}
	}
	g.Stay = nil
	g.LastCheckOut = &at

	return domain.StayReceipt{
		GuestID:    g.ID,
		RoomID:     room.ID,
		Nights:     nights,
		PeakSeason: stay.PeakSeason,
		Cost:       cost,
		CheckIn:    stay.CheckIn,
		CheckOut:   at,
	}, nil
}

// ElapsedNights counts whole days between from and to, never less than one.
func ElapsedNights(from, to time.Time) int {
	n := int(to.Sub(from) / day)
	if n < 1 {
		return 1
	}
	return n
}

// Reserve holds roomID for g until check-in or cancellation.
func (s *Stays) Reserve(g *domain.Guest, roomID string) (domain.Reservation, error) {
	if err := validGuest(g); err != nil {
		return domain.Reservation{}, err
	}
	if g.InHouse() {
		return domain.Reservation{}, fmt.Errorf("guest %q: %w", g.ID, domain.ErrAlreadyCheckedIn)
	}
	if g.Reservation != nil {
		return domain.Reservation{}, fmt.Errorf("guest %q already holds room %q: %w", g.ID, g.Reservation.RoomID, domain.ErrInvalidStateTransition)
	}
	room, err := s.rooms.Find(roomID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !room.Available() {
		return domain.Reservation{}, fmt.Errorf("room %q: %w", room.ID, domain.ErrRoomUnavailable)
	}
	if _, ok := s.held[room.ID]; ok {
		return domain.Reservation{}, fmt.Errorf("room %q is reserved: %w", room.ID, domain.ErrRoomUnavailable)
	}

	res := domain.Reservation{RoomID: room.ID, ReservedAt: s.now()}
	s.held[room.ID] = g.ID
	g.Reservation = &res
	return res, nil
}

func (s *Stays) CancelReservation(g *domain.Guest) (domain.Reservation, error) {
	if g.Reservation == nil {
		return domain.Reservation{}, fmt.Errorf("guest %q has no reservation: %w", g.ID, domain.ErrInvalidStateTransition)
	}
	res := *g.Reservation
	s.dropReservation(g)
	return res, nil
}

// Reservations reports how many rooms are currently held.
func (s *Stays) Reservations() int { return len(s.held) }

func (s *Stays) dropReservation(g *domain.Guest) {
	if g.Reservation == nil {
		return
	}
	if s.held[g.Reservation.RoomID] == g.ID {
		delete(s.held, g.Reservation.RoomID)
	}
	g.Reservation = nil
}

func validGuest(g *domain.Guest) error {
	if g == nil || strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("guest name is empty: %w", domain.ErrInvalidGuest)
	}
	return nil
}
