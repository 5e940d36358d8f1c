package mq

import "time"

const (
	RKBookingCreated    = "booking.created"
	RKBookingCancelled  = "booking.cancelled"
	RKTicketValidated   = "ticket.validated"
	RKDisputeUpdated    = "dispute.updated"
	RKTripStatusChanged = "trip.status_changed"
)

type BookingEvent struct {
	BookingID      string    `json:"booking_id"`
	TripID         string    `json:"trip_id"`
	PassengerID    string    `json:"passenger_id"`
	DriverID       string    `json:"driver_id"`
	Seats          int       `json:"seats"`
	SeatsAvailable int       `json:"seats_available"`
	TripStatus     string    `json:"trip_status"`
	At             time.Time `json:"at"`
}

type TicketValidatedEvent struct {
	BookingID   string    `json:"booking_id,omitempty"`
	ValidatorID string    `json:"validator_id,omitempty"`
	Valid       bool      `json:"valid"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

type DisputeEvent struct {
	DisputeID string    `json:"dispute_id"`
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

type TripStatusEvent struct {
	TripID   string    `json:"trip_id"`
	DriverID string    `json:"driver_id"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}
