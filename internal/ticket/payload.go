package ticket

import (
	"strings"
	"time"
)

// Tag is the literal first field of every QR payload.
const Tag = "IHTQR"

const (
	fieldCount = 7
	sep        = "|"

	// IssuedAtLayout is the wire format of the issuedAt field.
	IssuedAtLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Claims are the data fields of a QR payload, in wire order.
type Claims struct {
	TicketID    string
	BookingID   string
	PassengerID string
	DriverID    string
	IssuedAt    string
}

// FormatIssuedAt renders t the way it appears inside a payload.
func FormatIssuedAt(t time.Time) string {
	return t.UTC().Format(IssuedAtLayout)
}

// Message is the exact string the signature covers.
func (c Claims) Message() string {
	return strings.Join([]string{c.TicketID, c.BookingID, c.PassengerID, c.DriverID, c.IssuedAt}, sep)
}

// Encode builds IHTQR|ticketId|bookingId|passengerId|driverId|issuedAt|signature.
func Encode(c Claims, signer Signer) string {
	return Tag + sep + c.Message() + sep + signer.Sign(c.Message())
}

// Decode splits a payload into claims and the presented signature. ok is false
// when the payload does not have the expected shape. The payload is split as
// scanned; surrounding whitespace is not stripped.
func Decode(payload string) (c Claims, signature string, ok bool) {
	parts := strings.Split(payload, sep)
	if len(parts) != fieldCount || parts[0] != Tag {
		return Claims{}, "", false
	}
	c = Claims{
		TicketID:    parts[1],
		BookingID:   parts[2],
		PassengerID: parts[3],
		DriverID:    parts[4],
		IssuedAt:    parts[5],
	}
	return c, parts[6], true
}
