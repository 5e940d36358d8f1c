package models

import "time"

type Rating struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	TripID    string    `json:"tripId"`
	RaterID   string    `json:"raterId"`
	DriverID  string    `json:"driverId"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
