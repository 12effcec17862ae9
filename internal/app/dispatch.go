package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel_ops/internal/domain"
)

// Outcome is what a dispatched service produced. Staff is a snapshot of the member that served.
type Outcome struct {
	Staff    domain.StaffMember
	Receipt  *domain.StayReceipt
	Meal     *domain.MealOrder
	Cleaning *domain.CleaningRecord
}

// Dispatcher routes a service request to the first eligible member of the matching role pool.
type Dispatcher struct {
	rooms *Registry
	stays *Stays
	menu  *Menu
	now   func() time.Time

	pools map[domain.Role][]*domain.StaffMember
	byID  map[string]*domain.StaffMember

	meals     []domain.MealOrder
	cleanings []domain.CleaningRecord
}

func NewDispatcher(rooms *Registry, stays *Stays, menu *Menu, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		rooms: rooms,
		stays: stays,
		menu:  menu,
		now:   now,
		pools: make(map[domain.Role][]*domain.StaffMember),
		byID:  make(map[string]*domain.StaffMember),
	}
}

// Enlist appends m to the pool of its role. The dispatcher keeps the pointer.
func (d *Dispatcher) Enlist(m *domain.StaffMember) error {
	if m.Profile == nil {
		return fmt.Errorf("staff %q has no role profile: %w", m.ID, domain.ErrInvalidArgument)
	}
	if _, ok := d.byID[m.ID]; ok {
		return fmt.Errorf("staff %q: %w", m.ID, domain.ErrDuplicateKey)
	}
	role := m.Role()
	d.pools[role] = append(d.pools[role], m)
	d.byID[m.ID] = m
	return nil
}

func (d *Dispatcher) Member(id string) (*domain.StaffMember, error) {
	m, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("staff %q: %w", id, domain.ErrNotFound)
	}
	return m, nil
}

// Headcount reports pool sizes per role.
func (d *Dispatcher) Headcount() map[domain.Role]int {
	out := make(map[domain.Role]int, len(domain.Roles))
	for _, r := range domain.Roles {
		out[r] = len(d.pools[r])
	}
	return out
}

func (d *Dispatcher) MealsServed() int  { return len(d.meals) }
func (d *Dispatcher) RoomsCleaned() int { return len(d.cleanings) }

// Select picks the first eligible member of role. Housekeepers must be flagged available.
func (d *Dispatcher) Select(role domain.Role) (*domain.StaffMember, error) {
	for _, m := range d.pools[role] {
		if hk, ok := m.Profile.(*domain.Housekeeping); ok && !hk.Available {
			continue
		}
		return m, nil
	}
	return nil, fmt.Errorf("%s pool: %w", role, domain.ErrNoStaffAvailable)
}

// Dispatch serves kind for g. Staff selection and input checks run before any state changes.
func (d *Dispatcher) Dispatch(g *domain.Guest, kind domain.ServiceKind, p domain.ServiceParams) (Outcome, error) {
	switch kind {
	case domain.ServiceCheckIn:
		return d.checkIn(g, p)
	case domain.ServiceCheckOut:
		return d.checkOut(g)
	case domain.ServiceClean:
		return d.clean(g, p)
	case domain.ServiceServeMeal:
		return d.serveMeal(g, p)
	default:
		return Outcome{}, fmt.Errorf("service kind %q: %w", kind, domain.ErrInvalidArgument)
	}
}

// checkIn and checkOut validate the request before picking a clerk, so a bad
// request reports its own error even when the front desk is empty.
func (d *Dispatcher) checkIn(g *domain.Guest, p domain.ServiceParams) (Outcome, error) {
	if _, err := d.stays.validateCheckIn(g, p.RoomID, p.Nights); err != nil {
		return Outcome{}, err
	}
	clerk, err := d.Select(domain.RoleFrontDesk)
	if err != nil {
		return Outcome{}, err
	}
	rc, err := d.stays.CheckIn(g, p.RoomID, p.Nights)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Staff: clerk.Clone(), Receipt: &rc}, nil
}

func (d *Dispatcher) checkOut(g *domain.Guest) (Outcome, error) {
	if err := validateCheckOut(g); err != nil {
		return Outcome{}, err
	}
	clerk, err := d.Select(domain.RoleFrontDesk)
	if err != nil {
		return Outcome{}, err
	}
	rc, err := d.stays.CheckOut(g)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Staff: clerk.Clone(), Receipt: &rc}, nil
}

// clean targets p.RoomID, falling back to the guest's current room.
func (d *Dispatcher) clean(g *domain.Guest, p domain.ServiceParams) (Outcome, error) {
	roomID := p.RoomID
	if roomID == "" {
		current, ok := g.RoomID()
		if !ok {
			return Outcome{}, fmt.Errorf("clean needs a room id: %w", domain.ErrInvalidArgument)
		}
		roomID = current
	}
	room, err := d.rooms.Find(roomID)
	if err != nil {
		return Outcome{}, err
	}
	hk, err := d.Select(domain.RoleHousekeeping)
	if err != nil {
		return Outcome{}, err
	}

	if room.Cleanliness == domain.Dirty {
		if err := d.rooms.MarkClean(room.ID); err != nil {
			return Outcome{}, err
		}
	}
	hk.Profile.(*domain.Housekeeping).RoomsCleaned++

	rec := domain.CleaningRecord{
		HousekeeperID: hk.ID,
		RoomID:        room.ID,
		Tasks:         p.Tasks.List(),
		CleanedAt:     d.now(),
	}
	d.cleanings = append(d.cleanings, rec)
	return Outcome{Staff: hk.Clone(), Cleaning: &rec}, nil
}

func (d *Dispatcher) serveMeal(g *domain.Guest, p domain.ServiceParams) (Outcome, error) {
	dish := strings.TrimSpace(p.Dish)
	if dish == "" {
		return Outcome{}, fmt.Errorf("dish is empty: %w", domain.ErrInvalidArgument)
	}
	if p.Quantity <= 0 {
		return Outcome{}, fmt.Errorf("quantity must be positive, got %d: %w", p.Quantity, domain.ErrInvalidArgument)
	}
	if d.menu != nil {
		canonical, ok := d.menu.Lookup(dish)
		if !ok {
			return Outcome{}, fmt.Errorf("dish %q is not on the menu: %w", dish, domain.ErrNotFound)
		}
		dish = canonical
	}
	chef, err := d.Select(domain.RoleCulinary)
	if err != nil {
		return Outcome{}, err
	}

	order := domain.MealOrder{
		ID:       uuid.NewString(),
		ChefID:   chef.ID,
		GuestID:  g.ID,
		Dish:     dish,
		Quantity: p.Quantity,
		ServedAt: d.now(),
	}
	d.meals = append(d.meals, order)
	return Outcome{Staff: chef.Clone(), Meal: &order}, nil
}
