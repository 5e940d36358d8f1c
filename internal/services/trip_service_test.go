package services

import (
	"context"
	"testing"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripIDs(views []models.TripView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestTripSearch(t *testing.T) {
	rt, _ := newRuntime(t)
	svc := TripService{Runtime: rt}

	cases := []struct {
		name string
		q    TripQuery
		want []string
	}{
		{"all sorted by departure", TripQuery{}, []string{"t_small", "t_bus"}},
		{"from", TripQuery{FromID: "hp_b"}, []string{"t_bus"}},
		{"to", TripQuery{ToID: "hp_b"}, []string{"t_small"}},
		{"date", TripQuery{Date: "2026-10-17"}, []string{"t_small"}},
		{"other date", TripQuery{Date: "2026-12-01"}, []string{}},
		{"vehicle type", TripQuery{Type: "BUS"}, []string{"t_bus"}},
		{"full car", TripQuery{Type: "full_car"}, []string{"t_small"}},
		{"combined miss", TripQuery{FromID: "hp_a", Type: "bus"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(tc.q)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tripIDs(got))
		})
	}

	_, err := svc.Search(TripQuery{Date: "17/10/2026"})
	assert.True(t, domain.IsValidation(err))
}

func TestTripGetHydrates(t *testing.T) {
	rt, _ := newRuntime(t)
	v, err := TripService{Runtime: rt}.Get("t_small")
	require.NoError(t, err)
	assert.Equal(t, "Akwa", v.Departure.Name)
	assert.Equal(t, "Driver One", v.Driver.Name)
	require.NotNil(t, v.Vehicle)
	assert.Equal(t, "LT-001", v.Vehicle.Plate)

	_, err = TripService{Runtime: rt}.Get("t_none")
	assert.True(t, domain.IsNotFound(err))
}

func TestTripCancelReturnsSeatsWithoutReopening(t *testing.T) {
	rt, _ := newRuntime(t)
	svc := TripService{Runtime: rt}
	ctx := context.Background()
	b := book(t, rt, "t_small", "r1", 2, models.PaymentCash)

	_, err := svc.UpdateStatus(ctx, "t_small", "r1", models.TripCancelled)
	assert.True(t, domain.IsPermission(err))

	v, err := svc.UpdateStatus(ctx, "t_small", "d1", models.TripCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.TripCancelled, v.Status)
	assert.Equal(t, 2, v.SeatsAvailable)

	got, err := BookingService{Runtime: rt}.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)

	_, err = BookingService{Runtime: rt}.Create(ctx, CreateBookingInput{
		TripID: "t_small", Passenger: PassengerInput{ID: "r2"}, Seats: 1, PaymentMethod: models.PaymentCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.MsgTripNotAvailable, err.Error())

	_, err = svc.UpdateStatus(ctx, "t_small", "d1", models.TripCompleted)
	assert.True(t, domain.IsConflict(err))
}

func TestTripCompleteClosesBookings(t *testing.T) {
	rt, _ := newRuntime(t)
	svc := TripService{Runtime: rt}
	ctx := context.Background()
	live := book(t, rt, "t_bus", "r1", 2, models.PaymentCash)
	gone := book(t, rt, "t_bus", "r2", 1, models.PaymentCash)
	_, err := BookingService{Runtime: rt}.Cancel(ctx, gone.ID, "r2")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "t_bus", "ag1", models.TripActive)
	assert.True(t, domain.IsValidation(err))

	v, err := svc.UpdateStatus(ctx, "t_bus", "ag1", models.TripCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.TripCompleted, v.Status)
	assert.Equal(t, 8, v.SeatsAvailable)

	got, _ := BookingService{Runtime: rt}.Get(live.ID)
	assert.Equal(t, models.BookingCompleted, got.Status)
	got, _ = BookingService{Runtime: rt}.Get(gone.ID)
	assert.Equal(t, models.BookingCancelled, got.Status)

	// a completed booking can no longer be cancelled
	_, err = BookingService{Runtime: rt}.Cancel(ctx, live.ID, "r1")
	assert.True(t, domain.IsConflict(err))
}
