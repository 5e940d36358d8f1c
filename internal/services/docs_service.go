package services

import (
	"bytes"
	"fmt"
	"strings"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable e-ticket of a booking.
type DocsService struct {
	Tickets   TicketService
	RequestID string
	Loader    func(bookingID string) (models.TicketView, error)
}

func (s DocsService) GenerateETicket(bookingID string) ([]byte, string, error) {
	data, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "e-ticket rendered", "booking_id", bookingID)
	return buildETicketPDF(data)
}

func (s DocsService) load(bookingID string) (models.TicketView, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.Tickets.Ticket(bookingID)
}

func buildETicketPDF(d models.TicketView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+d.TicketNumber, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket number : %s", utils.FirstNonEmpty(d.TicketNumber, "-")),
		fmt.Sprintf("Booking       : %s", utils.FirstNonEmpty(d.BookingID, "-")),
		fmt.Sprintf("Passenger     : %s", utils.FirstNonEmpty(d.PassengerName, "-")),
		fmt.Sprintf("Route         : %s -> %s", utils.FirstNonEmpty(d.DepartureName, "-"), utils.FirstNonEmpty(d.DestinationName, "-")),
		fmt.Sprintf("Departure     : %s", utils.FormatDateTime(d.DepartureTime)),
		fmt.Sprintf("Driver        : %s", utils.FirstNonEmpty(d.DriverName, "-")),
		fmt.Sprintf("Vehicle       : %s", utils.FirstNonEmpty(d.VehiclePlate, "-")),
		fmt.Sprintf("Seats         : %d", d.Seats),
		fmt.Sprintf("Amount        : %s", utils.FormatAmount(d.Amount)),
		fmt.Sprintf("Payment       : %s (%s)", d.PaymentMethod, d.PaymentStatus),
		fmt.Sprintf("Status        : %s", d.Status),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 5, "QR: "+d.QRPayload, "1", "", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this ticket to the driver or gate agent at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.TicketNumber))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
