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
	"ridemarket/internal/utils"
)

// DisputeService runs the open -> in_review -> resolved lifecycle. Every
// operation takes the caller's scope; out-of-scope disputes read as missing.
type DisputeService struct {
	Runtime
}

type CreateDisputeInput struct {
	BookingID   string
	ReporterID  string
	Type        string
	Description string
}

// DisputePatch is the operator override. Nil fields are left unchanged.
type DisputePatch struct {
	Status     *models.DisputeStatus
	Resolution *string
	ResolvedBy *string
}

// disputeDriver resolves dispute -> booking -> trip -> driver id.
func disputeDriver(tx *store.Tx, bookingID string) (string, bool) {
	b, ok := tx.Booking(bookingID)
	if !ok {
		return "", false
	}
	return liveTrip(tx, *b).DriverID, true
}

func visibleDispute(tx *store.Tx, scope domain.Scope, id string) (*models.Dispute, error) {
	d, ok := tx.Dispute(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: "Dispute"}
	}
	if scope.Scoped() {
		driverID, ok := disputeDriver(tx, d.BookingID)
		if !ok || !scope.Allows(driverID) {
			return nil, domain.NotFoundError{Resource: "Dispute"}
		}
	}
	return d, nil
}

func (s DisputeService) List(scope domain.Scope) ([]models.Dispute, error) {
	out := []models.Dispute{}
	err := s.Store.View(func(tx *store.Tx) error {
		for _, d := range tx.Disputes() {
			if scope.Scoped() {
				driverID, ok := disputeDriver(tx, d.BookingID)
				if !ok || !scope.Allows(driverID) {
					continue
				}
			}
			out = append(out, d.Clone())
		}
		return nil
	})
	return out, err
}

func (s DisputeService) Get(scope domain.Scope, id string) (models.Dispute, error) {
	var out models.Dispute
	err := s.Store.View(func(tx *store.Tx) error {
		d, err := visibleDispute(tx, scope, id)
		if err != nil {
			return err
		}
		out = d.Clone()
		return nil
	})
	return out, err
}

// Create opens a dispute. Only the booking's passenger or the trip's driver
// may report one.
func (s DisputeService) Create(ctx context.Context, scope domain.Scope, in CreateDisputeInput) (models.Dispute, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	var out models.Dispute
	err := s.Store.Update(func(tx *store.Tx) error {
		b, ok := tx.Booking(strings.TrimSpace(in.BookingID))
		if !ok {
			return domain.NotFoundError{Resource: "Booking"}
		}
		driverID := liveTrip(tx, *b).DriverID
		if !scope.Allows(driverID) {
			return domain.NotFoundError{Resource: "Booking"}
		}
		reporter := strings.TrimSpace(in.ReporterID)
		if reporter == "" || (reporter != b.Passenger.ID && reporter != driverID) {
			return domain.PermissionError{Msg: "Only the passenger or the driver can report a dispute"}
		}
		if in.Type == "" {
			return domain.ValidationError{Field: "type", Msg: "type is required"}
		}
		if in.Description == "" {
			return domain.ValidationError{Field: "description", Msg: "description is required"}
		}
		now := s.now()
		d := tx.PutDispute(models.Dispute{
			ID:          s.newID("dp"),
			BookingID:   b.ID,
			ReporterID:  reporter,
			Type:        in.Type,
			Status:      models.DisputeOpen,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		out = d.Clone()
		return nil
	})
	if err != nil {
		return models.Dispute{}, err
	}
	s.afterChange(ctx, "create", out)
	return out, nil
}

// Review moves an open dispute to in_review.
func (s DisputeService) Review(ctx context.Context, scope domain.Scope, id string) (models.Dispute, error) {
	return s.mutate(ctx, scope, id, "review", func(d *models.Dispute, now time.Time) error {
		if d.Status != models.DisputeOpen {
			return domain.ConflictError{Msg: "Only open disputes can be moved to review"}
		}
		d.Status = models.DisputeInReview
		return nil
	})
}

// Resolve closes an open or in-review dispute with a resolution.
func (s DisputeService) Resolve(ctx context.Context, scope domain.Scope, id, resolution, resolvedBy string) (models.Dispute, error) {
	resolution = strings.TrimSpace(resolution)
	resolvedBy = strings.TrimSpace(resolvedBy)
	return s.mutate(ctx, scope, id, "resolve", func(d *models.Dispute, now time.Time) error {
		if d.Status == models.DisputeResolved {
			return domain.ConflictError{Msg: "Dispute is already resolved"}
		}
		if resolution == "" {
			return domain.ValidationError{Field: "resolution", Msg: "resolution is required"}
		}
		if resolvedBy == "" {
			return domain.ValidationError{Field: "resolvedBy", Msg: "resolvedBy is required"}
		}
		d.Status = models.DisputeResolved
		d.Resolution = resolution
		d.ResolvedBy = resolvedBy
		d.ResolvedAt = &now
		return nil
	})
}

// Patch applies the operator override: any status may be set directly.
// Entering resolved stamps resolvedAt; leaving it clears resolvedAt but keeps
// the recorded resolution text.
func (s DisputeService) Patch(ctx context.Context, scope domain.Scope, id string, p DisputePatch) (models.Dispute, error) {
	return s.mutate(ctx, scope, id, "patch", func(d *models.Dispute, now time.Time) error {
		if p.Status != nil && !p.Status.Valid() {
			return domain.ValidationError{Field: "status", Msg: "status must be one of open, in_review, resolved"}
		}
		if p.Resolution != nil {
			d.Resolution = strings.TrimSpace(*p.Resolution)
		}
		if p.ResolvedBy != nil {
			d.ResolvedBy = strings.TrimSpace(*p.ResolvedBy)
		}
		if p.Status != nil {
			prev := d.Status
			d.Status = *p.Status
			switch {
			case d.Status == models.DisputeResolved && (prev != models.DisputeResolved || d.ResolvedAt == nil):
				d.ResolvedAt = &now
			case d.Status != models.DisputeResolved:
				d.ResolvedAt = nil
			}
		}
		return nil
	})
}

func (s DisputeService) mutate(ctx context.Context, scope domain.Scope, id, action string, fn func(*models.Dispute, time.Time) error) (models.Dispute, error) {
	var out models.Dispute
	err := s.Store.Update(func(tx *store.Tx) error {
		d, err := visibleDispute(tx, scope, id)
		if err != nil {
			return err
		}
		now := s.now()
		next := d.Clone()
		if err := fn(&next, now); err != nil {
			return err
		}
		next.UpdatedAt = now
		out = tx.PutDispute(next).Clone()
		return nil
	})
	if err != nil {
		return models.Dispute{}, err
	}
	s.afterChange(ctx, action, out)
	return out, nil
}

func (s DisputeService) afterChange(ctx context.Context, action string, d models.Dispute) {
	metrics.DisputesUpdated.WithLabelValues(string(d.Status)).Inc()
	utils.LogEvent(s.RequestID, "dispute", action, "dispute updated",
		"dispute_id", d.ID, "booking_id", d.BookingID, "status", d.Status)
	s.publish(ctx, mq.RKDisputeUpdated, mq.DisputeEvent{
		DisputeID: d.ID, BookingID: d.BookingID, Status: string(d.Status), At: d.UpdatedAt,
	})
}
