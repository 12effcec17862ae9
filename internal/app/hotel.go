package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotel_ops/internal/adapters/observability"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/pricing"
	"hotel_ops/internal/shared"
)

// Options configures a Hotel. Zero values give an anonymous hotel with the default
// rate table, no peak months, the default menu and no journal.
type Options struct {
	Name    string
	Address string
	Rates   *pricing.RateTable
	Season  pricing.Season
	Menu    []string
	Journal domain.Journal
	Logger  *zerolog.Logger
	Now     func() time.Time
}

// Hotel is the façade over rooms, guests, staff and services.
// One mutex serialises every operation; journal writes happen after it is released.
type Hotel struct {
	mu sync.Mutex

	name    string
	address string

	rooms      *Registry
	pricing    *pricing.Policy
	season     pricing.Season
	stays      *Stays
	dispatcher *Dispatcher
	menu       *Menu

	guests     map[string]*domain.Guest
	guestOrder []string

	journal domain.Journal
	log     zerolog.Logger
	now     func() time.Time
	version uint64
}

func NewHotel(opts Options) *Hotel {
	rates := pricing.DefaultRateTable()
	if opts.Rates != nil {
		rates = *opts.Rates
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	rooms := NewRegistry()
	policy := pricing.New(rates)
	stays := NewStays(rooms, policy, opts.Season, now)
	hlog := logger.With().Str("component", "hotel").Logger()
	menu, err := NewMenuStrict(opts.Menu...)
	if err != nil {
		hlog.Warn().Err(err).Int("accepted", len(menu.Items())).Msg("menu entries skipped")
	}

	return &Hotel{
		name:       opts.Name,
		address:    opts.Address,
		rooms:      rooms,
		pricing:    policy,
		season:     opts.Season,
		stays:      stays,
		dispatcher: NewDispatcher(rooms, stays, menu, now),
		menu:       menu,
		guests:     make(map[string]*domain.Guest),
		journal:    opts.Journal,
		log:        hlog,
		now:        now,
	}
}

// ---- registration ----

func (h *Hotel) AddRoom(ctx context.Context, room domain.Room) error {
	h.mu.Lock()
	if err := h.rooms.Add(room); err != nil {
		h.mu.Unlock()
		return err
	}
	h.touch()
	h.mu.Unlock()

	h.log.Info().Str("room_id", room.ID).Str("category", room.Category).Float64("rate", room.NightlyRate).Msg("room added")
	h.record(ctx, domain.Event{Kind: domain.EventRoomAdded, RoomID: room.ID}, room)
	return nil
}

// AddGuest registers g. Stay fields are ignored; a guest always starts unbooked.
func (h *Hotel) AddGuest(ctx context.Context, g domain.Guest) error {
	if err := shared.ValidateStruct(g); err != nil {
		return fmt.Errorf("guest: %w", err)
	}
	g.Stay, g.Reservation, g.LastCheckOut = nil, nil, nil

	h.mu.Lock()
	if _, ok := h.guests[g.ID]; ok {
		h.mu.Unlock()
		return fmt.Errorf("guest %q: %w", g.ID, domain.ErrDuplicateKey)
	}
	h.guests[g.ID] = &g
	h.guestOrder = append(h.guestOrder, g.ID)
	h.touch()
	h.mu.Unlock()

	h.log.Info().Str("guest_id", g.ID).Msg("guest added")
	h.record(ctx, domain.Event{Kind: domain.EventGuestAdded, GuestID: g.ID}, g.Person)
	return nil
}

// AddStaff onboards m into the role pool. The profile must match role; an empty id gets a UUID.
func (h *Hotel) AddStaff(ctx context.Context, role domain.Role, m domain.StaffMember) (domain.StaffMember, error) {
	if m.Profile == nil || m.Role() != role {
		return domain.StaffMember{}, fmt.Errorf("staff profile %q does not match role %q: %w", m.Role(), role, domain.ErrInvalidArgument)
	}
	if err := shared.ValidateStruct(m.Person); err != nil {
		return domain.StaffMember{}, fmt.Errorf("staff: %w", err)
	}
	if err := shared.ValidateStruct(m.Profile); err != nil {
		return domain.StaffMember{}, fmt.Errorf("staff %s profile: %w", role, err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	member := m.Clone()

	h.mu.Lock()
	if err := h.dispatcher.Enlist(&member); err != nil {
		h.mu.Unlock()
		return domain.StaffMember{}, err
	}
	h.touch()
	out := member.Clone()
	h.mu.Unlock()

	h.log.Info().Str("staff_id", out.ID).Str("role", string(role)).Msg("staff added")
	h.record(ctx, domain.Event{Kind: domain.EventStaffAdded, StaffID: out.ID}, out)
	return out, nil
}

// ---- services ----

// RequestService resolves the guest and dispatches kind. Failures come back in the result.
func (h *Hotel) RequestService(ctx context.Context, guestID string, kind domain.ServiceKind, p domain.ServiceParams) domain.ServiceResult {
	res := domain.ServiceResult{Kind: kind, GuestID: guestID}

	h.mu.Lock()
	out, err := h.dispatch(guestID, kind, p)
	if err == nil {
		h.touch()
	}
	h.mu.Unlock()

	label := metricKind(kind)
	if err != nil {
		res.Failure = &domain.Failure{Kind: domain.KindOf(err), Message: err.Error()}
		h.log.Warn().Err(err).
			Str("guest_id", guestID).
			Str("kind", string(kind)).
			Str("error_kind", res.Failure.Kind).
			Msg("service request failed")
		observability.ObserveService(label, res.Failure.Kind, 0)
		return res
	}

	res.OK = true
	res.StaffID = out.Staff.ID
	res.StaffName = out.Staff.Name

	var ev domain.Event
	var detail any
	switch {
	case out.Receipt != nil:
		rc := *out.Receipt
		res.RoomID = rc.RoomID
		res.Cost = &rc.Cost
		res.Receipt = &rc
		ev = domain.Event{Kind: domain.EventGuestCheckedIn, RoomID: rc.RoomID, Amount: &rc.Cost}
		if kind == domain.ServiceCheckOut {
			ev.Kind = domain.EventGuestCheckedOut
		}
		detail = rc
	case out.Cleaning != nil:
		res.RoomID = out.Cleaning.RoomID
		ev = domain.Event{Kind: domain.EventRoomCleaned, RoomID: out.Cleaning.RoomID}
		detail = out.Cleaning
	case out.Meal != nil:
		res.Meal = out.Meal
		ev = domain.Event{Kind: domain.EventMealServed}
		detail = out.Meal
	}

	cost := 0.0
	if res.Cost != nil {
		cost = *res.Cost
	}
	h.log.Info().
		Str("guest_id", guestID).
		Str("kind", string(kind)).
		Str("staff_id", res.StaffID).
		Str("room_id", res.RoomID).
		Float64("cost", cost).
		Msg("service completed")
	observability.ObserveService(label, "ok", cost)

	ev.GuestID, ev.StaffID = guestID, res.StaffID
	h.record(ctx, ev, detail)
	return res
}

func (h *Hotel) dispatch(guestID string, kind domain.ServiceKind, p domain.ServiceParams) (Outcome, error) {
	g, err := h.guest(guestID)
	if err != nil {
		return Outcome{}, err
	}
	return h.dispatcher.Dispatch(g, kind, p)
}

func (h *Hotel) Reserve(ctx context.Context, guestID, roomID string) (domain.Reservation, error) {
	h.mu.Lock()
	g, err := h.guest(guestID)
	if err != nil {
		h.mu.Unlock()
		return domain.Reservation{}, err
	}
	res, err := h.stays.Reserve(g, roomID)
	if err != nil {
		h.mu.Unlock()
		return domain.Reservation{}, err
	}
	h.touch()
	h.mu.Unlock()

	h.log.Info().Str("guest_id", guestID).Str("room_id", roomID).Msg("room reserved")
	h.record(ctx, domain.Event{Kind: domain.EventGuestReserved, GuestID: guestID, RoomID: roomID}, res)
	return res, nil
}

func (h *Hotel) CancelReservation(ctx context.Context, guestID string) (domain.Reservation, error) {
	h.mu.Lock()
	g, err := h.guest(guestID)
	if err != nil {
		h.mu.Unlock()
		return domain.Reservation{}, err
	}
	res, err := h.stays.CancelReservation(g)
	if err != nil {
		h.mu.Unlock()
		return domain.Reservation{}, err
	}
	h.touch()
	h.mu.Unlock()

	h.log.Info().Str("guest_id", guestID).Str("room_id", res.RoomID).Msg("reservation canceled")
	h.record(ctx, domain.Event{Kind: domain.EventReservationCanceled, GuestID: guestID, RoomID: res.RoomID}, res)
	return res, nil
}

// ---- staff administration ----

func (h *Hotel) SetShift(id, shift string) (domain.StaffMember, error) {
	return h.updateFrontDesk(id, func(fd *domain.FrontDesk) error {
		if strings.TrimSpace(shift) == "" {
			return fmt.Errorf("shift is empty: %w", domain.ErrInvalidArgument)
		}
		fd.Shift = shift
		return nil
	})
}

func (h *Hotel) SetDuties(id string, duties []string) (domain.StaffMember, error) {
	return h.updateFrontDesk(id, func(fd *domain.FrontDesk) error {
		fd.Duties = append([]string(nil), duties...)
		return nil
	})
}

func (h *Hotel) AssignFloor(id, floor string) (domain.StaffMember, error) {
	return h.updateHousekeeping(id, func(hk *domain.Housekeeping) error {
		if strings.TrimSpace(floor) == "" {
			return fmt.Errorf("floor is empty: %w", domain.ErrInvalidArgument)
		}
		hk.Floor = floor
		return nil
	})
}

func (h *Hotel) SetAvailability(id string, available bool) (domain.StaffMember, error) {
	return h.updateHousekeeping(id, func(hk *domain.Housekeeping) error {
		hk.Available = available
		return nil
	})
}

func (h *Hotel) SetYearsOfExperience(id string, years int) (domain.StaffMember, error) {
	return h.updateStaff(id, func(p domain.Profile) error {
		c, ok := p.(*domain.Culinary)
		if !ok {
			return wrongRole(id, domain.RoleCulinary, p)
		}
		if years < 0 {
			return fmt.Errorf("years of experience must not be negative: %w", domain.ErrInvalidArgument)
		}
		c.YearsOfExperience = years
		return nil
	})
}

func (h *Hotel) updateFrontDesk(id string, fn func(*domain.FrontDesk) error) (domain.StaffMember, error) {
	return h.updateStaff(id, func(p domain.Profile) error {
		fd, ok := p.(*domain.FrontDesk)
		if !ok {
			return wrongRole(id, domain.RoleFrontDesk, p)
		}
		return fn(fd)
	})
}

func (h *Hotel) updateHousekeeping(id string, fn func(*domain.Housekeeping) error) (domain.StaffMember, error) {
	return h.updateStaff(id, func(p domain.Profile) error {
		hk, ok := p.(*domain.Housekeeping)
		if !ok {
			return wrongRole(id, domain.RoleHousekeeping, p)
		}
		return fn(hk)
	})
}

func (h *Hotel) updateStaff(id string, fn func(domain.Profile) error) (domain.StaffMember, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, err := h.dispatcher.Member(id)
	if err != nil {
		return domain.StaffMember{}, err
	}
	if err := fn(m.Profile); err != nil {
		return domain.StaffMember{}, err
	}
	h.touch()
	h.log.Info().Str("staff_id", id).Str("role", string(m.Role())).Msg("staff updated")
	return m.Clone(), nil
}

func wrongRole(id string, want domain.Role, p domain.Profile) error {
	return fmt.Errorf("staff %q is %s, not %s: %w", id, p.Role(), want, domain.ErrInvalidArgument)
}

// ---- menu ----

func (h *Hotel) Menu() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menu.Items()
}

func (h *Hotel) AddMenuItem(item string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.menu.Add(item); err != nil {
		return err
	}
	h.touch()
	return nil
}

func (h *Hotel) RemoveMenuItem(item string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.menu.Remove(item); err != nil {
		return err
	}
	h.touch()
	return nil
}

// ---- pricing ----

// Quote prices nights in roomID starting now, with the loyalty discount when loyal.
func (h *Hotel) Quote(roomID string, nights int, loyal bool) (pricing.Quote, error) {
	h.mu.Lock()
	room, err := h.rooms.Find(roomID)
	h.mu.Unlock()
	if err != nil {
		return pricing.Quote{}, err
	}
	return h.pricing.Quote(room.NightlyRate, nights, h.season.IsPeak(h.now()), loyal)
}

func (h *Hotel) Compensation(base float64, tier string) float64 {
	return h.pricing.StaffCompensation(base, tier)
}

// ---- queries ----

func (h *Hotel) Room(id string) (domain.Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Find(id)
}

func (h *Hotel) ListAvailable() []domain.Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.ListAvailable()
}

// Guest returns a copy of the guest, stay fields included.
func (h *Hotel) Guest(id string) (domain.Guest, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, err := h.guest(id)
	if err != nil {
		return domain.Guest{}, err
	}
	return cloneGuest(g), nil
}

func (h *Hotel) StaffMember(id string) (domain.StaffMember, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, err := h.dispatcher.Member(id)
	if err != nil {
		return domain.StaffMember{}, err
	}
	return m.Clone(), nil
}

func (h *Hotel) Summary() domain.Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := domain.Summary{
		HotelName:    h.name,
		Address:      h.address,
		Rooms:        h.rooms.Len(),
		Guests:       len(h.guests),
		Reservations: h.stays.Reservations(),
		Staff:        h.dispatcher.Headcount(),
		MealsServed:  h.dispatcher.MealsServed(),
		RoomsCleaned: h.dispatcher.RoomsCleaned(),
		Version:      h.version,
	}
	for _, r := range h.rooms.All() {
		if r.Available() {
			s.Available++
		}
		if r.Occupancy == domain.Occupied {
			s.Occupied++
		}
		if r.Cleanliness == domain.Dirty {
			s.Dirty++
		}
	}
	for _, g := range h.guests {
		if g.InHouse() {
			s.InHouse++
		}
	}
	return s
}

// FirstGuestRoomInfo reports the room of the first registered guest while that guest is in-house.
func (h *Hotel) FirstGuestRoomInfo() (domain.RoomInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.guestOrder) == 0 {
		return domain.RoomInfo{}, false
	}
	roomID, ok := h.guests[h.guestOrder[0]].RoomID()
	if !ok {
		return domain.RoomInfo{}, false
	}
	room, err := h.rooms.Find(roomID)
	if err != nil {
		return domain.RoomInfo{}, false
	}
	return domain.RoomInfo{RoomID: room.ID, Category: room.Category, NightlyRate: room.NightlyRate}, true
}

// Version increases on every successful mutation.
func (h *Hotel) Version() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

// RecentEvents reads the journal newest first. Without a journal it returns nothing.
func (h *Hotel) RecentEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	if h.journal == nil {
		return nil, nil
	}
	return h.journal.Recent(ctx, limit)
}

// ---- internals (callers hold mu) ----

func (h *Hotel) guest(id string) (*domain.Guest, error) {
	g, ok := h.guests[id]
	if !ok {
		return nil, fmt.Errorf("guest %q: %w", id, domain.ErrNotFound)
	}
	return g, nil
}

func (h *Hotel) touch() {
	h.version++
	var available, occupied, dirty int
	for _, r := range h.rooms.All() {
		if r.Available() {
			available++
		}
		if r.Occupancy == domain.Occupied {
			occupied++
		}
		if r.Cleanliness == domain.Dirty {
			dirty++
		}
	}
	observability.SetRoomStates(available, occupied, dirty)
}

// record appends e to the journal. Failures are logged; the in-memory state stays authoritative.
func (h *Hotel) record(ctx context.Context, e domain.Event, detail any) {
	if h.journal == nil {
		return
	}
	e.ID = uuid.NewString()
	e.OccurredAt = h.now().UTC()
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			h.log.Error().Err(err).Str("event", string(e.Kind)).Msg("marshal event payload")
		} else {
			e.Payload = b
		}
	}
	err := h.journal.Record(ctx, e)
	observability.ObserveJournal(err)
	if err != nil {
		h.log.Error().Err(err).Str("event", string(e.Kind)).Str("event_id", e.ID).Msg("journal write failed")
	}
}

func cloneGuest(g *domain.Guest) domain.Guest {
	out := *g
	if g.Stay != nil {
		s := *g.Stay
		out.Stay = &s
	}
	if g.Reservation != nil {
		r := *g.Reservation
		out.Reservation = &r
	}
	if g.LastCheckOut != nil {
		t := *g.LastCheckOut
		out.LastCheckOut = &t
	}
	return out
}

func metricKind(k domain.ServiceKind) string {
	switch k {
	case domain.ServiceCheckIn, domain.ServiceCheckOut, domain.ServiceClean, domain.ServiceServeMeal:
		return string(k)
	default:
		return "unknown"
	}
}
