package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"
	"ridemarket/internal/metrics"
	"ridemarket/internal/mq"
	"ridemarket/internal/store"
	"ridemarket/internal/ticket"
	"ridemarket/internal/utils"
)

type BookingService struct {
	Runtime
}

// PassengerInput is either the id of a known user or a literal passenger.
type PassengerInput struct {
	ID      string
	Literal *models.PassengerRef
}

type CreateBookingInput struct {
	TripID        string
	Passenger     PassengerInput
	Seats         int
	PaymentMethod models.PaymentMethod
	IsFullCar     bool
}

// Create books seats on a trip. Preconditions are checked in a fixed order,
// each with its own error, before anything is mutated.
func (s BookingService) Create(ctx context.Context, in CreateBookingInput) (models.BookingView, error) {
	var (
		view  models.BookingView
		event mq.BookingEvent
	)
	err := s.Store.Update(func(tx *store.Tx) error {
		trip, ok := tx.Trip(strings.TrimSpace(in.TripID))
		if !ok {
			return domain.NotFoundError{Resource: "Trip"}
		}
		if trip.Status != models.TripActive {
			return domain.ConflictError{Msg: domain.MsgTripNotAvailable}
		}
		if in.Seats <= 0 {
			return domain.ValidationError{Field: "seats", Msg: "seats must be a positive number"}
		}
		if !trip.Accepts(in.PaymentMethod) {
			return domain.ValidationError{Field: "paymentMethod", Msg: domain.MsgPaymentNotAllowed}
		}
		if in.IsFullCar && !trip.AllowFullCar {
			return domain.ValidationError{Field: "isFullCar", Msg: domain.MsgFullCarNotAllowed}
		}
		passenger, err := resolvePassenger(tx, in.Passenger)
		if err != nil {
			return err
		}
		effective := in.Seats
		if in.IsFullCar {
			effective = trip.SeatsAvailable
		}
		if effective > trip.SeatsAvailable {
			return domain.ConflictError{Msg: domain.MsgNotEnoughSeats}
		}

		granted, err := Reserve(trip, in.Seats, in.IsFullCar)
		if err != nil {
			return err
		}

		now := s.now()
		id := s.newID("b")
		issued := ticket.Issue(id, now)
		booking := models.Booking{
			ID:             id,
			TripID:         trip.ID,
			Trip:           trip.Clone(),
			Passenger:      passenger,
			Seats:          granted,
			PaymentMethod:  in.PaymentMethod,
			IsFullCar:      in.IsFullCar,
			Status:         models.BookingUpcoming,
			TicketID:       issued.TicketID,
			TicketNumber:   issued.TicketNumber,
			TicketIssuedAt: issued.IssuedAt,
			PaymentStatus:  models.PaymentStatusFor(in.PaymentMethod),
			CreatedAt:      now,
		}
		if in.PaymentMethod != models.PaymentCash {
			booking.PaymentReference = "PAY-" + strings.ToUpper(id)
		}
		stored, err := tx.InsertBooking(booking)
		if err != nil {
			return domain.InternalError{Err: err}
		}

		tx.AppendNotification(models.Notification{
			ID:        s.newID("n"),
			UserID:    trip.DriverID,
			Type:      "booking_created",
			Message:   fmt.Sprintf("%s booked %d seat(s) on trip %s", passenger.Name, granted, trip.ID),
			BookingID: id,
			CreatedAt: now,
		})

		view = bookingView(tx, *stored)
		event = mq.BookingEvent{
			BookingID: id, TripID: trip.ID, PassengerID: passenger.ID, DriverID: trip.DriverID,
			Seats: granted, SeatsAvailable: trip.SeatsAvailable, TripStatus: string(trip.Status), At: now,
		}
		return nil
	})
	if err != nil {
		return models.BookingView{}, err
	}

	metrics.BookingsCreated.Inc()
	metrics.SeatsReserved.Add(float64(event.Seats))
	utils.LogEvent(s.RequestID, "booking", "create", "booking created",
		"booking_id", view.ID, "trip_id", event.TripID, "seats", event.Seats, "seats_available", event.SeatsAvailable,
		"passenger_phone", utils.Mask(view.Passenger.Phone, 4))
	s.publish(ctx, mq.RKBookingCreated, event)
	return view, nil
}

func resolvePassenger(tx *store.Tx, in PassengerInput) (models.PassengerRef, error) {
	if in.Literal != nil {
		lit := *in.Literal
		lit.ID = strings.TrimSpace(lit.ID)
		if u, ok := tx.User(lit.ID); ok {
			return u.Ref(), nil
		}
		if lit.ID == "" || strings.TrimSpace(lit.Name) == "" {
			return models.PassengerRef{}, domain.ValidationError{Field: "passenger", Msg: "passenger must have an id and a name"}
		}
		lit.Name = utils.NormalizeSpace(lit.Name)
		return lit, nil
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return models.PassengerRef{}, domain.ValidationError{Field: "passenger", Msg: "passenger is required"}
	}
	u, ok := tx.User(id)
	if !ok {
		return models.PassengerRef{}, domain.ValidationError{Field: "passenger", Msg: "unknown passenger " + id}
	}
	return u.Ref(), nil
}

// Cancel lets the booking's passenger cancel an upcoming booking. The seats
// go back to the live trip, not to the booking's snapshot.
func (s BookingService) Cancel(ctx context.Context, bookingID, passengerID string) (models.BookingView, error) {
	var (
		view  models.BookingView
		event mq.BookingEvent
	)
	err := s.Store.Update(func(tx *store.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return domain.NotFoundError{Resource: "Booking"}
		}
		if b.Passenger.ID != strings.TrimSpace(passengerID) {
			return domain.PermissionError{Msg: domain.MsgNotBookingOwner}
		}
		if b.Status != models.BookingUpcoming {
			return domain.ConflictError{Msg: domain.MsgNotCancellable}
		}

		now := s.now()
		b.Status = models.BookingCancelled
		b.CancelledAt = &now

		trip, ok := tx.Trip(b.TripID)
		if ok {
			Release(trip, b.Seats)
			tx.AppendNotification(models.Notification{
				ID:        s.newID("n"),
				UserID:    trip.DriverID,
				Type:      "booking_cancelled",
				Message:   fmt.Sprintf("%s cancelled %d seat(s) on trip %s", b.Passenger.Name, b.Seats, trip.ID),
				BookingID: b.ID,
				CreatedAt: now,
			})
			event = mq.BookingEvent{
				BookingID: b.ID, TripID: trip.ID, PassengerID: b.Passenger.ID, DriverID: trip.DriverID,
				Seats: b.Seats, SeatsAvailable: trip.SeatsAvailable, TripStatus: string(trip.Status), At: now,
			}
		}
		view = bookingView(tx, *b)
		return nil
	})
	if err != nil {
		return models.BookingView{}, err
	}

	metrics.BookingsCancelled.Inc()
	utils.LogEvent(s.RequestID, "booking", "cancel", "booking cancelled",
		"booking_id", view.ID, "trip_id", event.TripID, "seats_available", event.SeatsAvailable)
	s.publish(ctx, mq.RKBookingCancelled, event)
	return view, nil
}

func (s BookingService) Get(bookingID string) (models.BookingView, error) {
	var view models.BookingView
	err := s.Store.View(func(tx *store.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return domain.NotFoundError{Resource: "Booking"}
		}
		view = bookingView(tx, *b)
		return nil
	})
	return view, err
}

// ListByPassenger returns the passenger's bookings, newest first.
func (s BookingService) ListByPassenger(passengerID string) ([]models.BookingView, error) {
	passengerID = strings.TrimSpace(passengerID)
	if passengerID == "" {
		return nil, domain.ValidationError{Field: "passengerId", Msg: "passengerId is required"}
	}
	out := []models.BookingView{}
	err := s.Store.View(func(tx *store.Tx) error {
		for _, b := range tx.Bookings() {
			if b.Passenger.ID == passengerID {
				out = append(out, bookingView(tx, *b))
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

type NotificationService struct {
	Runtime
}

// List returns a user's notifications, newest first.
func (s NotificationService) List(userID string) ([]models.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ValidationError{Field: "userId", Msg: "userId is required"}
	}
	out := []models.Notification{}
	err := s.Store.View(func(tx *store.Tx) error {
		for _, n := range tx.Notifications() {
			if n.UserID == userID {
				out = append(out, *n)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}
