package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_ops/internal/app"
	"hotel_ops/internal/domain"
)

func TestRegistry_AddAndFind(t *testing.T) {
	r := app.NewRegistry()
	require.NoError(t, r.Add(domain.Room{ID: "101", Category: "Standard Double Room", NightlyRate: 2000}))

	got, err := r.Find("101")
	require.NoError(t, err)
	assert.Equal(t, domain.Vacant, got.Occupancy)
	assert.Equal(t, domain.Clean, got.Cleanliness)
	assert.Equal(t, 2000.0, got.NightlyRate)

	_, err = r.Find("999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_AddRejects(t *testing.T) {
	r := app.NewRegistry()
	require.NoError(t, r.Add(domain.Room{ID: "101", NightlyRate: 2000}))

	err := r.Add(domain.Room{ID: "101", NightlyRate: 3000})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	err = r.Add(domain.Room{ID: "102", NightlyRate: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = r.Add(domain.Room{ID: "103", NightlyRate: 10, Occupancy: "haunted"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Transitions(t *testing.T) {
	r := app.NewRegistry()
	require.NoError(t, r.Add(domain.Room{ID: "101", NightlyRate: 2000}))

	require.NoError(t, r.MarkOccupied("101"))
	assert.ErrorIs(t, r.MarkOccupied("101"), domain.ErrInvalidStateTransition)

	require.NoError(t, r.MarkDirty("101"))
	assert.ErrorIs(t, r.MarkDirty("101"), domain.ErrInvalidStateTransition)

	require.NoError(t, r.MarkVacant("101"))
	assert.ErrorIs(t, r.MarkVacant("101"), domain.ErrInvalidStateTransition)

	require.NoError(t, r.MarkClean("101"))
	assert.ErrorIs(t, r.MarkOccupied("nope"), domain.ErrNotFound)
	assert.ErrorIs(t, r.MarkClean("nope"), domain.ErrNotFound)
}

func TestRegistry_ListAvailable(t *testing.T) {
	r := app.NewRegistry()
	for _, id := range []string{"101", "201", "301"} {
		require.NoError(t, r.Add(domain.Room{ID: id, NightlyRate: 1000}))
	}
	require.NoError(t, r.MarkOccupied("201"))
	require.NoError(t, r.MarkDirty("301"))

	ids := func(rs []domain.Room) []string {
		var out []string
		for _, rm := range rs {
			out = append(out, rm.ID)
		}
		return out
	}
	assert.Equal(t, []string{"101"}, ids(r.ListAvailable()))

	// recomputed on every call
	require.NoError(t, r.MarkClean("301"))
	assert.Equal(t, []string{"101", "301"}, ids(r.ListAvailable()))
	assert.Equal(t, []string{"101", "201", "301"}, ids(r.All()))
}
