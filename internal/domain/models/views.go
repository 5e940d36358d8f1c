package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go out as JSON numbers, matching what clients already parse.
	decimal.MarshalJSONWithoutQuotes = true
}

// TripView is a trip with its references resolved to full objects.
type TripView struct {
	ID             string          `json:"id"`
	Departure      Hotpoint        `json:"departure"`
	Destination    Hotpoint        `json:"destination"`
	DepartureTime  time.Time       `json:"departureTime"`
	ArrivalTime    time.Time       `json:"arrivalTime"`
	Capacity       int             `json:"capacity"`
	SeatsAvailable int             `json:"seatsAvailable"`
	PricePerSeat   decimal.Decimal `json:"pricePerSeat"`
	AllowFullCar   bool            `json:"allowFullCar"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	Status         TripStatus      `json:"status"`
	Driver         UserSummary     `json:"driver"`
	Vehicle        *Vehicle        `json:"vehicle,omitempty"`
}

// BookingView is a booking with its trip snapshot hydrated.
type BookingView struct {
	ID               string          `json:"id"`
	Trip             TripView        `json:"trip"`
	Passenger        PassengerRef    `json:"passenger"`
	Seats            int             `json:"seats"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	IsFullCar        bool            `json:"isFullCar"`
	Status           BookingStatus   `json:"status"`
	TicketID         string          `json:"ticketId"`
	TicketNumber     string          `json:"ticketNumber"`
	TicketIssuedAt   time.Time       `json:"ticketIssuedAt"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CancelledAt      *time.Time      `json:"cancelledAt,omitempty"`
}

// TicketView is the scannable ticket derived from a booking.
type TicketView struct {
	TicketID        string          `json:"ticketId"`
	TicketNumber    string          `json:"ticketNumber"`
	BookingID       string          `json:"bookingId"`
	TripID          string          `json:"tripId"`
	Status          BookingStatus   `json:"status"`
	IssuedAt        time.Time       `json:"issuedAt"`
	PassengerID     string          `json:"passengerId"`
	PassengerName   string          `json:"passengerName"`
	DriverID        string          `json:"driverId"`
	DriverName      string          `json:"driverName"`
	DepartureName   string          `json:"departureName"`
	DestinationName string          `json:"destinationName"`
	DepartureTime   time.Time       `json:"departureTime"`
	VehiclePlate    string          `json:"vehiclePlate,omitempty"`
	Seats           int             `json:"seats"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	QRPayload       string          `json:"qrPayload"`
}

// TicketValidation is the outcome of a scan. Failures are data, not errors.
type TicketValidation struct {
	Valid          bool        `json:"valid"`
	Reason         string      `json:"reason,omitempty"`
	BookingID      string      `json:"bookingId,omitempty"`
	Ticket         *TicketView `json:"ticket,omitempty"`
	ScannedAt      time.Time   `json:"scannedAt"`
	AlreadyScanned bool        `json:"alreadyScanned,omitempty"`
	FirstScannedAt *time.Time  `json:"firstScannedAt,omitempty"`
}

// DriverRatings aggregates the ratings a driver has received.
type DriverRatings struct {
	DriverID string   `json:"driverId"`
	Count    int      `json:"count"`
	Average  float64  `json:"average"`
	Ratings  []Rating `json:"ratings"`
}

// Scan failure reasons returned in TicketValidation.Reason.
const (
	ReasonMalformed      = "Malformed QR payload"
	ReasonBadChecksum    = "Invalid QR checksum"
	ReasonNotFound       = "Booking not found"
	ReasonCancelled      = "Ticket cancelled"
	ReasonOtherDriver    = "Ticket belongs to another driver"
	ReasonDataMismatch   = "Ticket data mismatch"
	ReasonAlreadyScanned = "Ticket already scanned"
)
