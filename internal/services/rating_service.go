package services

import (
	"strings"

	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"
	"ridemarket/internal/store"
)

type RatingService struct {
	Runtime
}

type CreateRatingInput struct {
	BookingID string
	RaterID   string
	Score     int
	Comment   string
}

// Create records the passenger's rating of a completed booking, once.
func (s RatingService) Create(in CreateRatingInput) (models.Rating, error) {
	if in.Score < 1 || in.Score > 5 {
		return models.Rating{}, domain.ValidationError{Field: "score", Msg: "score must be between 1 and 5"}
	}
	var out models.Rating
	err := s.Store.Update(func(tx *store.Tx) error {
		b, ok := tx.Booking(strings.TrimSpace(in.BookingID))
		if !ok {
			return domain.NotFoundError{Resource: "Booking"}
		}
		if b.Passenger.ID != strings.TrimSpace(in.RaterID) {
			return domain.PermissionError{Msg: "Only the passenger can rate this booking"}
		}
		if b.Status != models.BookingCompleted {
			return domain.ConflictError{Msg: "Only completed bookings can be rated"}
		}
		for _, r := range tx.Ratings() {
			if r.BookingID == b.ID {
				return domain.ConflictError{Msg: "Booking has already been rated"}
			}
		}
		out = *tx.PutRating(models.Rating{
			ID:        s.newID("r"),
			BookingID: b.ID,
			TripID:    b.TripID,
			RaterID:   b.Passenger.ID,
			DriverID:  liveTrip(tx, *b).DriverID,
			Score:     in.Score,
			Comment:   strings.TrimSpace(in.Comment),
			CreatedAt: s.now(),
		})
		return nil
	})
	return out, err
}

func (s RatingService) ForDriver(driverID string) (models.DriverRatings, error) {
	out := models.DriverRatings{DriverID: driverID, Ratings: []models.Rating{}}
	err := s.Store.View(func(tx *store.Tx) error {
		if _, ok := tx.User(driverID); !ok {
			return domain.NotFoundError{Resource: "Driver"}
		}
		total := 0
		for _, r := range tx.Ratings() {
			if r.DriverID == driverID {
				out.Ratings = append(out.Ratings, *r)
				total += r.Score
			}
		}
		out.Count = len(out.Ratings)
		if out.Count > 0 {
			out.Average = float64(total) / float64(out.Count)
		}
		return nil
	})
	return out, err
}
