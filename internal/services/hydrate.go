package services

import (
	"slices"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/store"
	"ridemarket/internal/ticket"

	"github.com/shopspring/decimal"
)

func hotpointOf(tx *store.Tx, id string) models.Hotpoint {
	if h, ok := tx.Hotpoint(id); ok {
		return *h
	}
	return models.Hotpoint{ID: id}
}

func userOf(tx *store.Tx, id string) models.UserSummary {
	if u, ok := tx.User(id); ok {
		return u.Summary()
	}
	return models.UserSummary{ID: id}
}

func tripView(tx *store.Tx, t models.Trip) models.TripView {
	v := models.TripView{
		ID:             t.ID,
		Departure:      hotpointOf(tx, t.DepartureID),
		Destination:    hotpointOf(tx, t.DestinationID),
		DepartureTime:  t.DepartureTime,
		ArrivalTime:    t.ArrivalTime,
		Capacity:       t.Capacity,
		SeatsAvailable: t.SeatsAvailable,
		PricePerSeat:   t.PricePerSeat,
		AllowFullCar:   t.AllowFullCar,
		PaymentMethods: slices.Clone(t.PaymentMethods),
		Status:         t.Status,
		Driver:         userOf(tx, t.DriverID),
	}
	if veh, ok := tx.Vehicle(t.VehicleID); ok {
		c := *veh
		v.Vehicle = &c
	}
	return v
}

func amountOf(t models.Trip, seats int) decimal.Decimal {
	return t.PricePerSeat.Mul(decimal.NewFromInt(int64(seats)))
}

// bookingView hydrates the booking's own trip snapshot, not the live trip.
func bookingView(tx *store.Tx, b models.Booking) models.BookingView {
	v := models.BookingView{
		ID:               b.ID,
		Trip:             tripView(tx, b.Trip),
		Passenger:        b.Passenger,
		Seats:            b.Seats,
		Amount:           amountOf(b.Trip, b.Seats),
		PaymentMethod:    b.PaymentMethod,
		IsFullCar:        b.IsFullCar,
		Status:           b.Status,
		TicketID:         b.TicketID,
		TicketNumber:     b.TicketNumber,
		TicketIssuedAt:   b.TicketIssuedAt,
		PaymentStatus:    b.PaymentStatus,
		PaymentReference: b.PaymentReference,
		CreatedAt:        b.CreatedAt,
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		v.CancelledAt = &at
	}
	return v
}

// liveTrip resolves the booking's trip from the store, falling back to the
// snapshot for a trip that no longer resolves.
func liveTrip(tx *store.Tx, b models.Booking) models.Trip {
	if t, ok := tx.Trip(b.TripID); ok {
		return *t
	}
	return b.Trip
}

// ticketClaims are the values a ticket for b must carry today. The driver is
// taken from the live trip so corrected assignments are honored.
func ticketClaims(tx *store.Tx, b models.Booking) ticket.Claims {
	return ticket.Claims{
		TicketID:    b.TicketID,
		BookingID:   b.ID,
		PassengerID: b.Passenger.ID,
		DriverID:    liveTrip(tx, b).DriverID,
		IssuedAt:    ticket.FormatIssuedAt(b.TicketIssuedAt),
	}
}

func ticketView(tx *store.Tx, b models.Booking, signer ticket.Signer) models.TicketView {
	trip := liveTrip(tx, b)
	v := models.TicketView{
		TicketID:        b.TicketID,
		TicketNumber:    b.TicketNumber,
		BookingID:       b.ID,
		TripID:          b.TripID,
		Status:          b.Status,
		IssuedAt:        b.TicketIssuedAt,
		PassengerID:     b.Passenger.ID,
		PassengerName:   b.Passenger.Name,
		DriverID:        trip.DriverID,
		DriverName:      userOf(tx, trip.DriverID).Name,
		DepartureName:   hotpointOf(tx, trip.DepartureID).Name,
		DestinationName: hotpointOf(tx, trip.DestinationID).Name,
		DepartureTime:   trip.DepartureTime,
		Seats:           b.Seats,
		Amount:          amountOf(b.Trip, b.Seats),
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		QRPayload:       ticket.Encode(ticketClaims(tx, b), signer),
	}
	if veh, ok := tx.Vehicle(trip.VehicleID); ok {
		v.VehiclePlate = veh.Plate
	}
	return v
}
