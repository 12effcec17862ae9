package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
	"hotel_ops/internal/pricing"
)

// clock is a settable time source for deterministic stays.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *clock                   { return &clock{t: time.Date(2024, time.March, 1, 14, 0, 0, 0, time.UTC)} }
func guest(id, name string) *domain.Guest {
	return &domain.Guest{ID: id, Person: domain.Person{Name: name}}
}

func newStays(t *testing.T, c *clock, season pricing.Season) (*app.Stays, *app.Registry) {
	t.Helper()
	reg := app.NewRegistry()
	require.NoError(t, reg.Add(domain.Room{ID: "101", Category: "Standard Double Room", NightlyRate: 2000}))
	require.NoError(t, reg.Add(domain.Room{ID: "201", Category: "Deluxe Suite", NightlyRate: 5000}))
	return app.NewStays(reg, pricing.New(pricing.DefaultRateTable()), season, c.Now), reg
}

func TestCheckIn_Success(t *testing.T) {
	c := newClock()
	stays, reg := newStays(t, c, pricing.Season{})
	g := guest("G001", "Mr. Chen")

	rc, err := stays.CheckIn(g, "101", 3)
	require.NoError(t, err)
	assert.InDelta(t, 6000.0, rc.Cost, 1e-9)
	assert.Equal(t, c.Now().Add(72*time.Hour), rc.CheckOut)

	room, _ := reg.Find("101")
	assert.Equal(t, domain.Occupied, room.Occupancy)

	id, ok := g.RoomID()
	assert.True(t, ok)
	assert.Equal(t, "101", id)
	assert.Equal(t, domain.CheckedIn, g.Phase())
}

func TestCheckIn_PeakSeason(t *testing.T) {
	c := newClock()
	stays, _ := newStays(t, c, pricing.Season{PeakMonths: []time.Month{time.March}})

	rc, err := stays.CheckIn(guest("G001", "Mr. Chen"), "101", 3)
	require.NoError(t, err)
	assert.True(t, rc.PeakSeason)
	assert.InDelta(t, 7200.0, rc.Cost, 1e-9)
}

func TestCheckIn_Failures(t *testing.T) {
	tests := []struct {
		name   string
		guest  *domain.Guest
		room   string
		nights int
		setup  func(*app.Registry)
		want   error
	}{
		{name: "empty name", guest: guest("G1", ""), room: "101", nights: 1, want: domain.ErrInvalidGuest},
		{name: "zero nights", guest: guest("G1", "A"), room: "101", nights: 0, want: domain.ErrInvalidArgument},
		{name: "negative nights", guest: guest("G1", "A"), room: "101", nights: -2, want: domain.ErrInvalidArgument},
		{name: "nights over limit", guest: guest("G1", "A"), room: "101", nights: app.MaxNights + 1, want: domain.ErrInvalidArgument},
		{name: "nights past time range", guest: guest("G1", "A"), room: "101", nights: 200000, want: domain.ErrInvalidArgument},
		{name: "unknown room", guest: guest("G1", "A"), room: "999", nights: 1, want: domain.ErrNotFound},
		{
			name: "dirty room", guest: guest("G1", "A"), room: "101", nights: 1,
			setup: func(r *app.Registry) { _ = r.MarkDirty("101") },
			want:  domain.ErrRoomUnavailable,
		},
		{
			name: "occupied room", guest: guest("G1", "A"), room: "101", nights: 1,
			setup: func(r *app.Registry) { _ = r.MarkOccupied("101") },
			want:  domain.ErrRoomUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stays, reg := newStays(t, newClock(), pricing.Season{})
			if tt.setup != nil {
				tt.setup(reg)
			}
			before, _ := reg.Find("101")

			_, err := stays.CheckIn(tt.guest, tt.room, tt.nights)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, tt.guest.Stay)

			after, _ := reg.Find("101")
			assert.Equal(t, before, after)
		})
	}
}

func TestCheckIn_LongestStay(t *testing.T) {
	c := newClock()
	stays, _ := newStays(t, c, pricing.Season{})
	g := guest("G001", "Mr. Chen")

	rc, err := stays.CheckIn(g, "101", app.MaxNights)
	require.NoError(t, err)
	assert.True(t, rc.CheckOut.After(rc.CheckIn))
	assert.Equal(t, c.Now().AddDate(0, 0, app.MaxNights), rc.CheckOut)
}

func TestCheckIn_Twice(t *testing.T) {
	stays, reg := newStays(t, newClock(), pricing.Season{})
	g := guest("G001", "Mr. Chen")

	_, err := stays.CheckIn(g, "101", 2)
	require.NoError(t, err)

	_, err = stays.CheckIn(g, "201", 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)

	room, _ := reg.Find("201")
	assert.Equal(t, domain.Vacant, room.Occupancy)
	id, _ := g.RoomID()
	assert.Equal(t, "101", id)
}

func TestCheckOut_ChargesElapsedDays(t *testing.T) {
	c := newClock()
	stays, reg := newStays(t, c, pricing.Season{})
	g := guest("G001", "Mr. Chen")

	_, err := stays.CheckIn(g, "101", 3)
	require.NoError(t, err)
	c.Advance(2*24*time.Hour + 5*time.Hour)

	rc, err := stays.CheckOut(g)
	require.NoError(t, err)
	assert.Equal(t, 2, rc.Nights)
	assert.InDelta(t, 4000.0, rc.Cost, 1e-9)

	room, _ := reg.Find("101")
	assert.Equal(t, domain.Vacant, room.Occupancy)
	assert.Equal(t, domain.Dirty, room.Cleanliness)
	assert.Nil(t, g.Stay)
	assert.Equal(t, domain.CheckedOut, g.Phase())
}

func TestCheckOut_ImmediatelyChargesOneNight(t *testing.T) {
	stays, _ := newStays(t, newClock(), pricing.Season{})
	g := guest("G001", "Mr. Chen")

	_, err := stays.CheckIn(g, "101", 3)
	require.NoError(t, err)

	rc, err := stays.CheckOut(g)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Nights)
	assert.GreaterOrEqual(t, rc.Cost, 2000.0)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	stays, _ := newStays(t, newClock(), pricing.Season{})
	g := guest("G001", "Mr. Chen")

	_, err := stays.CheckOut(g)
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)

	_, err = stays.CheckIn(g, "101", 1)
	require.NoError(t, err)
	_, err = stays.CheckOut(g)
	require.NoError(t, err)

	_, err = stays.CheckOut(g)
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestReservation(t *testing.T) {
	stays, _ := newStays(t, newClock(), pricing.Season{})
	chen, lin := guest("G001", "Mr. Chen"), guest("G002", "Ms. Lin")

	_, err := stays.Reserve(chen, "101")
	require.NoError(t, err)
	assert.Equal(t, domain.Reserved, chen.Phase())
	assert.Equal(t, 1, stays.Reservations())

	_, err = stays.Reserve(lin, "101")
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	_, err = stays.CheckIn(lin, "101", 1)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	_, err = stays.Reserve(chen, "201")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = stays.CheckIn(chen, "101", 2)
	require.NoError(t, err)
	assert.Nil(t, chen.Reservation)
	assert.Equal(t, 0, stays.Reservations())

	_, err = stays.Reserve(chen, "201")
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
}

func TestCancelReservation(t *testing.T) {
	stays, _ := newStays(t, newClock(), pricing.Season{})
	chen, lin := guest("G001", "Mr. Chen"), guest("G002", "Ms. Lin")

	_, err := stays.CancelReservation(chen)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = stays.Reserve(chen, "101")
	require.NoError(t, err)
	res, err := stays.CancelReservation(chen)
	require.NoError(t, err)
	assert.Equal(t, "101", res.RoomID)
	assert.Equal(t, domain.Unbooked, chen.Phase())

	_, err = stays.CheckIn(lin, "101", 1)
	assert.NoError(t, err)
}

func TestElapsedNights(t *testing.T) {
	start := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, app.ElapsedNights(start, start))
	assert.Equal(t, 1, app.ElapsedNights(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, app.ElapsedNights(start, start.Add(-time.Hour)))
	assert.Equal(t, 3, app.ElapsedNights(start, start.Add(72*time.Hour)))
}
