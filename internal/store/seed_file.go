package store

import (
	"fmt"
	"os"
	"time"

	"ridemarket/internal/domain/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedFile mirrors Seed with wire-friendly scalars for YAML.
type seedFile struct {
	Hotpoints []models.Hotpoint `yaml:"hotpoints"`
	Users     []seedUser        `yaml:"users"`
	Vehicles  []seedVehicle     `yaml:"vehicles"`
	Trips     []seedTrip        `yaml:"trips"`
	Bookings  []seedBooking     `yaml:"bookings"`
	Disputes  []seedDispute     `yaml:"disputes"`
}

type seedUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	AgencyID string `yaml:"agencyId"`
}

type seedVehicle struct {
	ID       string `yaml:"id"`
	OwnerID  string `yaml:"ownerId"`
	Plate    string `yaml:"plate"`
	Model    string `yaml:"model"`
	Type     string `yaml:"type"`
	Capacity int    `yaml:"capacity"`
}

type seedTrip struct {
	ID             string   `yaml:"id"`
	DepartureID    string   `yaml:"departureId"`
	DestinationID  string   `yaml:"destinationId"`
	DepartureTime  string   `yaml:"departureTime"`
	ArrivalTime    string   `yaml:"arrivalTime"`
	Capacity       int      `yaml:"capacity"`
	SeatsAvailable *int     `yaml:"seatsAvailable"`
	PricePerSeat   string   `yaml:"pricePerSeat"`
	AllowFullCar   bool     `yaml:"allowFullCar"`
	PaymentMethods []string `yaml:"paymentMethods"`
	Status         string   `yaml:"status"`
	DriverID       string   `yaml:"driverId"`
	VehicleID      string   `yaml:"vehicleId"`
}

type seedBooking struct {
	ID            string `yaml:"id"`
	TripID        string `yaml:"tripId"`
	PassengerID   string `yaml:"passengerId"`
	Seats         int    `yaml:"seats"`
	PaymentMethod string `yaml:"paymentMethod"`
	IsFullCar     bool   `yaml:"isFullCar"`
	Status        string `yaml:"status"`
	CreatedAt     string `yaml:"createdAt"`
}

type seedDispute struct {
	ID          string `yaml:"id"`
	BookingID   string `yaml:"bookingId"`
	ReporterID  string `yaml:"reporterId"`
	Type        string `yaml:"type"`
	Status      string `yaml:"status"`
	Description string `yaml:"description"`
}

// LoadSeedFile reads a YAML seed. Times are RFC 3339; prices are decimal strings.
// When a trip omits seatsAvailable it is derived from capacity minus the seats
// of its non-cancelled seed bookings.
func LoadSeedFile(path string, now time.Time) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw, now)
}

func ParseSeed(raw []byte, now time.Time) (Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Seed{}, fmt.Errorf("parse seed file: %w", err)
	}

	out := Seed{Hotpoints: f.Hotpoints}
	users := map[string]models.User{}
	for _, u := range f.Users {
		user := models.User{ID: u.ID, Name: u.Name, Phone: u.Phone, Email: u.Email, Role: models.Role(u.Role), AgencyID: u.AgencyID}
		users[u.ID] = user
		out.Users = append(out.Users, user)
	}
	for _, v := range f.Vehicles {
		out.Vehicles = append(out.Vehicles, models.Vehicle(v))
	}

	held := map[string]int{}
	for _, b := range f.Bookings {
		created, err := parseSeedTime(b.CreatedAt, now)
		if err != nil {
			return Seed{}, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		passenger := models.PassengerRef{ID: b.PassengerID}
		if u, ok := users[b.PassengerID]; ok {
			passenger = u.Ref()
		}
		booking := models.Booking{
			ID: b.ID, TripID: b.TripID, Passenger: passenger, Seats: b.Seats,
			PaymentMethod: models.PaymentMethod(b.PaymentMethod), IsFullCar: b.IsFullCar,
			Status: models.BookingStatus(b.Status), CreatedAt: created,
		}
		if booking.Holds() {
			held[b.TripID] += b.Seats
		}
		out.Bookings = append(out.Bookings, booking)
	}

	for _, t := range f.Trips {
		dep, err := parseSeedTime(t.DepartureTime, now)
		if err != nil {
			return Seed{}, fmt.Errorf("trip %s: %w", t.ID, err)
		}
		arr, err := parseSeedTime(t.ArrivalTime, dep)
		if err != nil {
			return Seed{}, fmt.Errorf("trip %s: %w", t.ID, err)
		}
		price := decimal.Zero
		if t.PricePerSeat != "" {
			if price, err = decimal.NewFromString(t.PricePerSeat); err != nil {
				return Seed{}, fmt.Errorf("trip %s: price: %w", t.ID, err)
			}
		}
		seats := t.Capacity - held[t.ID]
		if t.SeatsAvailable != nil {
			seats = *t.SeatsAvailable
		}
		methods := make([]models.PaymentMethod, 0, len(t.PaymentMethods))
		for _, m := range t.PaymentMethods {
			methods = append(methods, models.PaymentMethod(m))
		}
		out.Trips = append(out.Trips, models.Trip{
			ID: t.ID, DepartureID: t.DepartureID, DestinationID: t.DestinationID,
			DepartureTime: dep, ArrivalTime: arr, Capacity: t.Capacity, SeatsAvailable: seats,
			PricePerSeat: price, AllowFullCar: t.AllowFullCar, PaymentMethods: methods,
			Status: models.TripStatus(t.Status), DriverID: t.DriverID, VehicleID: t.VehicleID,
			CreatedAt: now.UTC(),
		})
	}

	for _, d := range f.Disputes {
		out.Disputes = append(out.Disputes, models.Dispute{
			ID: d.ID, BookingID: d.BookingID, ReporterID: d.ReporterID, Type: d.Type,
			Status: models.DisputeStatus(d.Status), Description: d.Description,
			CreatedAt: now.UTC(), UpdatedAt: now.UTC(),
		})
	}
	return out.Normalize(now), nil
}

func parseSeedTime(v string, fallback time.Time) (time.Time, error) {
	if v == "" {
		return fallback.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
