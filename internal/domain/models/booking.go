package models

import "time"

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingOngoing   BookingStatus = "ongoing"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentCashOnPickup PaymentStatus = "cash_on_pickup"
	PaymentPaid         PaymentStatus = "paid"
)

// PaymentStatusFor derives the payment status recorded at booking time.
func PaymentStatusFor(m PaymentMethod) PaymentStatus {
	if m == PaymentCash {
		return PaymentCashOnPickup
	}
	return PaymentPaid
}

// PassengerRef is the passenger as captured on the booking. It is either a
// copy of a known user or a literal object supplied by the caller.
type PassengerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Booking holds a copy of the trip as of creation. Only Status (and the
// cancellation timestamp) changes after creation.
type Booking struct {
	ID               string        `json:"id"`
	TripID           string        `json:"tripId"`
	Trip             Trip          `json:"trip"`
	Passenger        PassengerRef  `json:"passenger"`
	Seats            int           `json:"seats"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	IsFullCar        bool          `json:"isFullCar"`
	Status           BookingStatus `json:"status"`
	TicketID         string        `json:"ticketId"`
	TicketNumber     string        `json:"ticketNumber"`
	TicketIssuedAt   time.Time     `json:"ticketIssuedAt"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	PaymentReference string        `json:"paymentReference,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	CancelledAt      *time.Time    `json:"cancelledAt,omitempty"`
}

// Holds reports whether the booking still occupies seats on its trip.
func (b Booking) Holds() bool {
	return b.Status != BookingCancelled
}

// Clone returns a deep copy.
func (b Booking) Clone() Booking {
	b.Trip = b.Trip.Clone()
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		b.CancelledAt = &t
	}
	return b
}
