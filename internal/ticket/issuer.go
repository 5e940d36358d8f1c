// Package ticket derives ticket identities from bookings and encodes the
// pipe-delimited QR payload scanned at boarding.
package ticket

import (
	"strconv"
	"strings"
	"time"
)

const (
	idPrefix     = "tk_"
	numberPrefix = "IHT-"
)

// Identity is what a booking records about its ticket at creation time.
type Identity struct {
	TicketID     string
	TicketNumber string
	IssuedAt     time.Time
}

// Issue derives the ticket identity for a just-created booking. It is a pure
// function of the booking id and the issue time.
func Issue(bookingID string, now time.Time) Identity {
	return Identity{
		TicketID:     IDFor(bookingID),
		TicketNumber: NumberFor(bookingID, now.Year()),
		IssuedAt:     now.UTC().Truncate(time.Millisecond),
	}
}

func IDFor(bookingID string) string {
	return idPrefix + bookingID
}

// NumberFor renders IHT-<BOOKING ID>-<YEAR>; a leading "b_" becomes "B_".
func NumberFor(bookingID string, year int) string {
	id := bookingID
	if strings.HasPrefix(id, "b_") {
		id = "B_" + id[2:]
	}
	return numberPrefix + strings.ToUpper(id) + "-" + strconv.Itoa(year)
}
