package store

import (
	"errors"
	"fmt"
	"time"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/ticket"

	"github.com/shopspring/decimal"
)

// Seed is the full initial content of the store. A restart reloads it.
type Seed struct {
	Hotpoints []models.Hotpoint
	Users     []models.User
	Vehicles  []models.Vehicle
	Trips     []models.Trip
	Bookings  []models.Booking
	Disputes  []models.Dispute
	Ratings   []models.Rating
}

// Normalize fills derived fields: default trip status and payment methods,
// booking trip snapshots, ticket identities and payment statuses. Bookings and
// disputes without a creation time are stamped with seededAt.
func (s Seed) Normalize(seededAt time.Time) Seed {
	seededAt = seededAt.UTC()
	trips := make(map[string]models.Trip, len(s.Trips))
	for i := range s.Trips {
		t := &s.Trips[i]
		if t.Status == "" {
			t.Status = models.TripActive
		}
		if t.Status == models.TripActive && t.SeatsAvailable == 0 {
			t.Status = models.TripFull
		}
		if len(t.PaymentMethods) == 0 {
			t.PaymentMethods = []models.PaymentMethod{models.PaymentCash}
		}
		trips[t.ID] = *t
	}
	for i := range s.Bookings {
		b := &s.Bookings[i]
		if b.Trip.ID == "" {
			if t, ok := trips[b.TripID]; ok {
				b.Trip = t.Clone()
			}
		}
		if b.Status == "" {
			b.Status = models.BookingUpcoming
		}
		if b.PaymentMethod == "" {
			b.PaymentMethod = models.PaymentCash
		}
		if b.PaymentStatus == "" {
			b.PaymentStatus = models.PaymentStatusFor(b.PaymentMethod)
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = seededAt
		}
		if b.TicketID == "" {
			id := ticket.Issue(b.ID, b.CreatedAt)
			b.TicketID, b.TicketNumber, b.TicketIssuedAt = id.TicketID, id.TicketNumber, id.IssuedAt
		}
	}
	for i := range s.Disputes {
		d := &s.Disputes[i]
		if d.Status == "" {
			d.Status = models.DisputeOpen
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = seededAt
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = d.CreatedAt
		}
	}
	return s
}

// Validate checks references and per-trip seat conservation:
// seatsAvailable + seats held by non-cancelled bookings == capacity.
func (s Seed) Validate() error {
	var errs []error
	hotpoints := map[string]bool{}
	for _, h := range s.Hotpoints {
		if h.ID == "" || hotpoints[h.ID] {
			errs = append(errs, fmt.Errorf("hotpoint %q: empty or duplicate id", h.ID))
		}
		hotpoints[h.ID] = true
	}
	users := map[string]bool{}
	for _, u := range s.Users {
		if u.ID == "" || users[u.ID] {
			errs = append(errs, fmt.Errorf("user %q: empty or duplicate id", u.ID))
		}
		users[u.ID] = true
	}
	vehicles := map[string]bool{}
	for _, v := range s.Vehicles {
		if v.ID == "" || vehicles[v.ID] {
			errs = append(errs, fmt.Errorf("vehicle %q: empty or duplicate id", v.ID))
		}
		vehicles[v.ID] = true
	}

	held := map[string]int{}
	bookings := map[string]bool{}
	tripIDs := map[string]bool{}
	for _, t := range s.Trips {
		tripIDs[t.ID] = true
	}
	for _, b := range s.Bookings {
		if b.ID == "" || bookings[b.ID] {
			errs = append(errs, fmt.Errorf("booking %q: empty or duplicate id", b.ID))
		}
		bookings[b.ID] = true
		if !tripIDs[b.TripID] {
			errs = append(errs, fmt.Errorf("booking %s: unknown trip %q", b.ID, b.TripID))
		}
		if b.Seats <= 0 {
			errs = append(errs, fmt.Errorf("booking %s: seats must be positive", b.ID))
		}
		if b.Holds() {
			held[b.TripID] += b.Seats
		}
	}

	seenTrips := map[string]bool{}
	for _, t := range s.Trips {
		if t.ID == "" || seenTrips[t.ID] {
			errs = append(errs, fmt.Errorf("trip %q: empty or duplicate id", t.ID))
		}
		seenTrips[t.ID] = true
		if !hotpoints[t.DepartureID] || !hotpoints[t.DestinationID] {
			errs = append(errs, fmt.Errorf("trip %s: unknown hotpoint", t.ID))
		}
		if !users[t.DriverID] {
			errs = append(errs, fmt.Errorf("trip %s: unknown driver %q", t.ID, t.DriverID))
		}
		if t.VehicleID != "" && !vehicles[t.VehicleID] {
			errs = append(errs, fmt.Errorf("trip %s: unknown vehicle %q", t.ID, t.VehicleID))
		}
		if t.SeatsAvailable < 0 || t.Capacity <= 0 {
			errs = append(errs, fmt.Errorf("trip %s: invalid capacity %d / seats %d", t.ID, t.Capacity, t.SeatsAvailable))
		}
		if t.PricePerSeat.IsNegative() {
			errs = append(errs, fmt.Errorf("trip %s: negative price", t.ID))
		}
		for _, m := range t.PaymentMethods {
			if !m.Valid() {
				errs = append(errs, fmt.Errorf("trip %s: unknown payment method %q", t.ID, m))
			}
		}
		if got := t.SeatsAvailable + held[t.ID]; got != t.Capacity {
			errs = append(errs, fmt.Errorf("trip %s: seats available %d + booked %d != capacity %d",
				t.ID, t.SeatsAvailable, held[t.ID], t.Capacity))
		}
	}

	for _, d := range s.Disputes {
		if !bookings[d.BookingID] {
			errs = append(errs, fmt.Errorf("dispute %s: unknown booking %q", d.ID, d.BookingID))
		}
		if !d.Status.Valid() {
			errs = append(errs, fmt.Errorf("dispute %s: invalid status %q", d.ID, d.Status))
		}
	}
	for _, r := range s.Ratings {
		if !bookings[r.BookingID] {
			errs = append(errs, fmt.Errorf("rating %s: unknown booking %q", r.ID, r.BookingID))
		}
		if r.Score < 1 || r.Score > 5 {
			errs = append(errs, fmt.Errorf("rating %s: score out of range", r.ID))
		}
	}
	return errors.Join(errs...)
}

// DefaultSeed is the built-in data set, with trip times relative to now.
func DefaultSeed(now time.Time) Seed {
	day := now.UTC().Truncate(time.Hour).Add(24 * time.Hour)
	created := now.UTC().Add(-2 * time.Hour)

	trips := []models.Trip{
		{
			ID: "t_1", DepartureID: "hp_douala", DestinationID: "hp_yaounde",
			DepartureTime: day.Add(7 * time.Hour), ArrivalTime: day.Add(11 * time.Hour),
			Capacity: 4, SeatsAvailable: 4, PricePerSeat: decimal.NewFromInt(6000),
			AllowFullCar:   true,
			PaymentMethods: []models.PaymentMethod{models.PaymentCash, models.PaymentMobileMoney},
			Status:         models.TripActive, DriverID: "u_driver_1", VehicleID: "v_1", CreatedAt: created,
		},
		{
			ID: "t_2", DepartureID: "hp_yaounde", DestinationID: "hp_bafoussam",
			DepartureTime: day.Add(8 * time.Hour), ArrivalTime: day.Add(13 * time.Hour),
			Capacity: 30, SeatsAvailable: 28, PricePerSeat: decimal.NewFromInt(4500),
			PaymentMethods: []models.PaymentMethod{models.PaymentCash, models.PaymentMobileMoney, models.PaymentCard},
			Status:         models.TripActive, DriverID: "u_agency_1", VehicleID: "v_2", CreatedAt: created,
		},
		{
			ID: "t_3", DepartureID: "hp_douala", DestinationID: "hp_kribi",
			DepartureTime: day.Add(31 * time.Hour), ArrivalTime: day.Add(34 * time.Hour),
			Capacity: 4, SeatsAvailable: 4, PricePerSeat: decimal.RequireFromString("3500.50"),
			AllowFullCar:   true,
			PaymentMethods: []models.PaymentMethod{models.PaymentCash},
			Status:         models.TripActive, DriverID: "u_driver_2", VehicleID: "v_3", CreatedAt: created,
		},
	}

	return Seed{
		Hotpoints: []models.Hotpoint{
			{ID: "hp_douala", Name: "Douala - Akwa", City: "Douala"},
			{ID: "hp_yaounde", Name: "Yaounde - Mvan", City: "Yaounde"},
			{ID: "hp_bafoussam", Name: "Bafoussam - Marche A", City: "Bafoussam"},
			{ID: "hp_kribi", Name: "Kribi - Centre", City: "Kribi"},
		},
		Users: []models.User{
			{ID: "u_rider_1", Name: "Amina Bello", Phone: "+237670000001", Role: models.RoleRider},
			{ID: "u_rider_2", Name: "Paul Ndi", Phone: "+237670000002", Role: models.RoleRider},
			{ID: "u_driver_1", Name: "Jean Mbarga", Phone: "+237690000001", Role: models.RoleDriver},
			{ID: "u_driver_2", Name: "Clarisse Ewane", Phone: "+237690000002", Role: models.RoleDriver},
			{ID: "u_agency_1", Name: "Touristique Express", Phone: "+237222000001", Role: models.RoleAgency},
			{ID: "u_scanner_1", Name: "Gate Agent Mvan", Role: models.RoleScanner, AgencyID: "u_agency_1"},
			{ID: "u_admin", Name: "Operations", Role: models.RoleAdmin},
		},
		Vehicles: []models.Vehicle{
			{ID: "v_1", OwnerID: "u_driver_1", Plate: "LT-123-AB", Model: "Toyota Corolla", Type: "car", Capacity: 4},
			{ID: "v_2", OwnerID: "u_agency_1", Plate: "CE-884-TX", Model: "Yutong ZK6", Type: "bus", Capacity: 30},
			{ID: "v_3", OwnerID: "u_driver_2", Plate: "LT-456-CD", Model: "Hyundai Elantra", Type: "car", Capacity: 4},
		},
		Trips: trips,
		Bookings: []models.Booking{
			{
				ID: "b_seed_1", TripID: "t_2",
				Passenger: models.PassengerRef{ID: "u_rider_2", Name: "Paul Ndi", Phone: "+237670000002"},
				Seats:     2, PaymentMethod: models.PaymentMobileMoney, Status: models.BookingUpcoming,
				PaymentReference: "PAY-B_SEED_1", CreatedAt: created,
			},
		},
		Disputes: []models.Dispute{
			{
				ID: "dp_1", BookingID: "b_seed_1", ReporterID: "u_rider_2", Type: "overcharge",
				Status: models.DisputeOpen, Description: "Charged twice on mobile money",
				CreatedAt: created, UpdatedAt: created,
			},
		},
	}.Normalize(now)
}
