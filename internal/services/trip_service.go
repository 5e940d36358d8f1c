package services

import (
	"context"
	"sort"
	"strings"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"
	"ridemarket/internal/mq"
	"ridemarket/internal/store"
	"ridemarket/internal/utils"
)

type TripService struct {
	Runtime
}

// TripQuery filters trip search. Empty fields match everything.
type TripQuery struct {
	FromID string
	ToID   string
	// Date is YYYY-MM-DD, compared against the local departure date.
	Date string
	// Type matches the vehicle type; "full_car" selects trips that allow it.
	Type string
}

const typeFullCar = "full_car"

// Search returns hydrated trips ordered by departure time.
func (s TripService) Search(q TripQuery) ([]models.TripView, error) {
	q.Date = strings.TrimSpace(q.Date)
	if q.Date != "" {
		if _, err := utils.ParseDate(q.Date); err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
		}
	}
	kind := strings.ToLower(strings.TrimSpace(q.Type))

	out := []models.TripView{}
	err := s.Store.View(func(tx *store.Tx) error {
		for _, t := range tx.Trips() {
			if q.FromID != "" && t.DepartureID != q.FromID {
				continue
			}
			if q.ToID != "" && t.DestinationID != q.ToID {
				continue
			}
			if q.Date != "" && utils.FormatDate(t.DepartureTime) != q.Date {
				continue
			}
			if kind == typeFullCar && !t.AllowFullCar {
				continue
			}
			if kind != "" && kind != typeFullCar {
				veh, ok := tx.Vehicle(t.VehicleID)
				if !ok || !strings.EqualFold(veh.Type, kind) {
					continue
				}
			}
			out = append(out, tripView(tx, *t))
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, err
}

func (s TripService) Get(id string) (models.TripView, error) {
	var view models.TripView
	err := s.Store.View(func(tx *store.Tx) error {
		t, ok := tx.Trip(id)
		if !ok {
			return domain.NotFoundError{Resource: "Trip"}
		}
		view = tripView(tx, *t)
		return nil
	})
	return view, err
}

// UpdateStatus lets the driver complete or cancel a trip. Completing closes
// its live bookings; cancelling cancels upcoming ones and returns their seats
// to the counter without reopening the trip.
func (s TripService) UpdateStatus(ctx context.Context, tripID, driverID string, status models.TripStatus) (models.TripView, error) {
	if status != models.TripCompleted && status != models.TripCancelled {
		return models.TripView{}, domain.ValidationError{Field: "status", Msg: "status must be completed or cancelled"}
	}
	var (
		view     models.TripView
		affected int
	)
	err := s.Store.Update(func(tx *store.Tx) error {
		t, ok := tx.Trip(tripID)
		if !ok {
			return domain.NotFoundError{Resource: "Trip"}
		}
		if t.DriverID != strings.TrimSpace(driverID) {
			return domain.PermissionError{Msg: "Only the trip's driver can change its status"}
		}
		if t.Status.Terminal() {
			return domain.ConflictError{Msg: "Trip is already " + string(t.Status)}
		}

		now := s.now()
		t.Status = status
		for _, b := range tx.Bookings() {
			if b.TripID != t.ID {
				continue
			}
			switch {
			case status == models.TripCompleted && (b.Status == models.BookingUpcoming || b.Status == models.BookingOngoing):
				b.Status = models.BookingCompleted
				affected++
			case status == models.TripCancelled && b.Status == models.BookingUpcoming:
				b.Status = models.BookingCancelled
				b.CancelledAt = &now
				Release(t, b.Seats)
				affected++
			}
		}
		view = tripView(tx, *t)
		return nil
	})
	if err != nil {
		return models.TripView{}, err
	}

	utils.LogEvent(s.RequestID, "trip", "update_status", "trip status changed",
		"trip_id", tripID, "status", status, "bookings_affected", affected)
	s.publish(ctx, mq.RKTripStatusChanged, mq.TripStatusEvent{
		TripID: tripID, DriverID: view.Driver.ID, Status: string(status), At: s.now(),
	})
	return view, nil
}
