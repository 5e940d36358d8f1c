package services

import (
	"testing"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	trip := &models.Trip{SeatsAvailable: 3, Status: models.TripActive}

	got, err := Reserve(trip, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, trip.SeatsAvailable)
	assert.Equal(t, models.TripActive, trip.Status)

	got, err = Reserve(trip, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 0, trip.SeatsAvailable)
	assert.Equal(t, models.TripFull, trip.Status)
}

func TestReserveFullCarTakesRemaining(t *testing.T) {
	trip := &models.Trip{SeatsAvailable: 3, Status: models.TripActive}
	got, err := Reserve(trip, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, models.TripFull, trip.Status)
}

func TestReserveRejects(t *testing.T) {
	cases := []struct {
		name      string
		available int
		requested int
		fullCar   bool
	}{
		{"zero", 3, 0, false},
		{"negative", 3, -1, false},
		{"too many", 3, 4, false},
		{"full car on empty", 0, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := &models.Trip{SeatsAvailable: tc.available, Status: models.TripActive}
			_, err := Reserve(trip, tc.requested, tc.fullCar)
			require.Error(t, err)
			assert.True(t, domain.IsConflict(err))
			assert.Equal(t, domain.MsgNotEnoughSeats, err.Error())
			assert.Equal(t, tc.available, trip.SeatsAvailable)
		})
	}
}

func TestReleaseOnlyReopensFullTrips(t *testing.T) {
	full := &models.Trip{SeatsAvailable: 0, Status: models.TripFull}
	Release(full, 2)
	assert.Equal(t, 2, full.SeatsAvailable)
	assert.Equal(t, models.TripActive, full.Status)

	for _, st := range []models.TripStatus{models.TripCancelled, models.TripCompleted, models.TripActive} {
		trip := &models.Trip{SeatsAvailable: 1, Status: st}
		Release(trip, 1)
		assert.Equal(t, 2, trip.SeatsAvailable)
		assert.Equal(t, st, trip.Status)
	}

	trip := &models.Trip{SeatsAvailable: 1, Status: models.TripActive}
	Release(trip, 0)
	assert.Equal(t, 1, trip.SeatsAvailable)
}
