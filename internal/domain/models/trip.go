package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type TripStatus string

const (
	TripActive    TripStatus = "active"
	TripFull      TripStatus = "full"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Terminal reports whether no further bookings or seat changes may resurrect the trip.
func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCard        PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMobileMoney, PaymentCard:
		return true
	}
	return false
}

// Trip is a scheduled offering with fixed capacity. Foreign references are ids;
// hydration to full objects happens at the HTTP boundary.
type Trip struct {
	ID             string          `json:"id"`
	DepartureID    string          `json:"departureId"`
	DestinationID  string          `json:"destinationId"`
	DepartureTime  time.Time       `json:"departureTime"`
	ArrivalTime    time.Time       `json:"arrivalTime"`
	Capacity       int             `json:"capacity"`
	SeatsAvailable int             `json:"seatsAvailable"`
	PricePerSeat   decimal.Decimal `json:"pricePerSeat"`
	AllowFullCar   bool            `json:"allowFullCar"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	Status         TripStatus      `json:"status"`
	DriverID       string          `json:"driverId"`
	VehicleID      string          `json:"vehicleId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Accepts reports whether the trip takes the given payment method.
func (t Trip) Accepts(m PaymentMethod) bool {
	return slices.Contains(t.PaymentMethods, m)
}

// Clone returns a copy that shares no slices with t.
func (t Trip) Clone() Trip {
	t.PaymentMethods = slices.Clone(t.PaymentMethods)
	return t
}
