package services

import (
	"context"
	"strings"
	"time"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"
	"ridemarket/internal/metrics"
	"ridemarket/internal/mq"
	"ridemarket/internal/store"
	"ridemarket/internal/ticket"
	"ridemarket/internal/utils"
)

type TicketService struct {
	Runtime
	Signer ticket.Signer
	// OneTimeScan rejects a ticket whose booking was already scanned.
	OneTimeScan bool
}

func (s TicketService) signer() ticket.Signer {
	if s.Signer != nil {
		return s.Signer
	}
	return ticket.ChecksumSigner{}
}

// Ticket returns the ticket view of a booking with a freshly encoded payload.
func (s TicketService) Ticket(bookingID string) (models.TicketView, error) {
	var view models.TicketView
	err := s.Store.View(func(tx *store.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return domain.NotFoundError{Resource: "Booking"}
		}
		view = ticketView(tx, *b, s.signer())
		return nil
	})
	return view, err
}

// Validate checks a scanned payload. Every outcome is returned as data;
// ScannedAt is always set. err is reserved for store failures.
func (s TicketService) Validate(ctx context.Context, payload, validatorID string) (models.TicketValidation, error) {
	now := s.now()
	res, err := s.validate(payload, strings.TrimSpace(validatorID), now)
	if err != nil {
		return models.TicketValidation{}, err
	}
	res.ScannedAt = now

	metrics.TicketsValidated.WithLabelValues(metrics.ValidationResult(res.Valid, res.Reason)).Inc()
	utils.LogEvent(s.RequestID, "ticket", "validate", "ticket scanned",
		"valid", res.Valid, "reason", res.Reason, "booking_id", res.BookingID, "validator_id", validatorID)
	s.publish(ctx, mq.RKTicketValidated, mq.TicketValidatedEvent{
		BookingID: res.BookingID, ValidatorID: validatorID, Valid: res.Valid, Reason: res.Reason, At: now,
	})
	return res, nil
}

func (s TicketService) validate(payload, validatorID string, now time.Time) (models.TicketValidation, error) {
	claims, signature, ok := ticket.Decode(payload)
	if !ok {
		return models.TicketValidation{Reason: models.ReasonMalformed}, nil
	}
	if !s.signer().Verify(claims.Message(), signature) {
		return models.TicketValidation{Reason: models.ReasonBadChecksum}, nil
	}

	var res models.TicketValidation
	err := s.Store.Update(func(tx *store.Tx) error {
		b, ok := tx.Booking(claims.BookingID)
		if !ok {
			res = models.TicketValidation{Reason: models.ReasonNotFound}
			return nil
		}
		res.BookingID = b.ID
		if b.Status == models.BookingCancelled {
			res.Reason = models.ReasonCancelled
			return nil
		}
		expected := ticketClaims(tx, *b)
		if validatorID != "" && !canScan(tx, validatorID, expected.DriverID) {
			res.Reason = models.ReasonOtherDriver
			return nil
		}
		if claims.TicketID != expected.TicketID ||
			claims.PassengerID != expected.PassengerID ||
			claims.DriverID != expected.DriverID ||
			claims.IssuedAt != expected.IssuedAt {
			res.Reason = models.ReasonDataMismatch
			return nil
		}

		if prev, scanned := tx.ScannedAt(b.ID); scanned {
			if s.OneTimeScan {
				res.Reason = models.ReasonAlreadyScanned
				res.FirstScannedAt = &prev
				return nil
			}
			res.AlreadyScanned = true
			res.FirstScannedAt = &prev
		} else {
			first, _ := tx.MarkScanned(b.ID, now)
			res.FirstScannedAt = &first
		}
		view := ticketView(tx, *b, s.signer())
		res.Valid = true
		res.Ticket = &view
		return nil
	})
	if err != nil {
		return models.TicketValidation{}, err
	}
	return res, nil
}

// canScan: the trip's driver, or a scanner working for that driver/agency.
func canScan(tx *store.Tx, validatorID, driverID string) bool {
	if validatorID == driverID {
		return true
	}
	u, ok := tx.User(validatorID)
	if !ok {
		return false
	}
	return u.Role == models.RoleScanner && u.AgencyID != "" && u.AgencyID == driverID
}
