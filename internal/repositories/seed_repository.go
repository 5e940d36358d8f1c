package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "ridemarket/internal/db"
	"ridemarket/internal/domain/models"
	"ridemarket/internal/store"
)

// SeedRepository imports the catalog (hotpoints, users, vehicles, trips)
// from a MySQL schema. Bookings are not imported, so every trip starts with
// its full capacity available.
type SeedRepository struct {
	DB *sql.DB
}

func (r SeedRepository) Load(ctx context.Context, now time.Time) (store.Seed, error) {
	if r.DB == nil {
		return store.Seed{}, fmt.Errorf("seed repository: no database")
	}
	var (
		seed store.Seed
		err  error
	)
	if seed.Hotpoints, err = r.hotpoints(ctx); err != nil {
		return store.Seed{}, fmt.Errorf("load hotpoints: %w", err)
	}
	if seed.Users, err = r.users(ctx); err != nil {
		return store.Seed{}, fmt.Errorf("load users: %w", err)
	}
	if seed.Vehicles, err = r.vehicles(ctx); err != nil {
		return store.Seed{}, fmt.Errorf("load vehicles: %w", err)
	}
	if seed.Trips, err = r.trips(ctx, now); err != nil {
		return store.Seed{}, fmt.Errorf("load trips: %w", err)
	}
	return seed.Normalize(now), nil
}

// columns returns nil when the table is absent.
func (r SeedRepository) columns(ctx context.Context, table string) (map[string]bool, error) {
	if !intdb.HasTable(ctx, r.DB, table) {
		return nil, nil
	}
	return intdb.Columns(ctx, r.DB, table)
}

func (r SeedRepository) hotpoints(ctx context.Context) ([]models.Hotpoint, error) {
	cols, err := r.columns(ctx, "hotpoints")
	if err != nil || cols == nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, %s, %s, %s, %s FROM hotpoints ORDER BY id ASC`,
		intdb.ColumnOr(cols, "name", "''"),
		intdb.ColumnOr(cols, "city", "''"),
		intdb.ColumnOr(cols, "latitude", "NULL"),
		intdb.ColumnOr(cols, "longitude", "NULL"),
	)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Hotpoint{}
	for rows.Next() {
		var (
			h        models.Hotpoint
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &lat, &lng); err != nil {
			return nil, err
		}
		if lat.Valid {
			h.Latitude = &lat.Float64
		}
		if lng.Valid {
			h.Longitude = &lng.Float64
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r SeedRepository) users(ctx context.Context) ([]models.User, error) {
	cols, err := r.columns(ctx, "users")
	if err != nil || cols == nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, %s, %s, %s, %s, %s FROM users ORDER BY id ASC`,
		intdb.ColumnOr(cols, "name", "''"),
		intdb.ColumnOr(cols, "phone", "''"),
		intdb.ColumnOr(cols, "email", "''"),
		intdb.ColumnOr(cols, "role", "'rider'"),
		intdb.ColumnOr(cols, "agency_id", "''"),
	)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var (
			u    models.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &role, &u.AgencyID); err != nil {
			return nil, err
		}
		u.Role = models.Role(strings.ToLower(strings.TrimSpace(role)))
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r SeedRepository) vehicles(ctx context.Context) ([]models.Vehicle, error) {
	cols, err := r.columns(ctx, "vehicles")
	if err != nil || cols == nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, %s, %s, %s, %s, %s FROM vehicles ORDER BY id ASC`,
		intdb.ColumnOr(cols, "owner_id", "''"),
		intdb.ColumnOr(cols, "plate", "''"),
		intdb.ColumnOr(cols, "model", "''"),
		intdb.ColumnOr(cols, "type", "'car'"),
		intdb.ColumnOr(cols, "capacity", "0"),
	)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Plate, &v.Model, &v.Type, &v.Capacity); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r SeedRepository) trips(ctx context.Context, now time.Time) ([]models.Trip, error) {
	cols, err := r.columns(ctx, "trips")
	if err != nil || cols == nil {
		return nil, err
	}
	for _, required := range []string{"departure_id", "destination_id", "departure_time", "capacity", "driver_id"} {
		if !cols[required] {
			return nil, fmt.Errorf("trips.%s column missing", required)
		}
	}
	query := fmt.Sprintf(`SELECT id, departure_id, destination_id, departure_time, %s, capacity, %s, %s, %s, %s, driver_id, %s
		FROM trips ORDER BY departure_time ASC, id ASC`,
		intdb.ColumnOr(cols, "arrival_time", "departure_time"),
		intdb.ColumnOr(cols, "price_per_seat", "0"),
		intdb.ColumnOr(cols, "allow_full_car", "0"),
		intdb.ColumnOr(cols, "payment_methods", "'cash'"),
		intdb.ColumnOr(cols, "status", "'active'"),
		intdb.ColumnOr(cols, "vehicle_id", "''"),
	)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var (
			t       models.Trip
			methods string
			status  string
		)
		if err := rows.Scan(
			&t.ID,
			&t.DepartureID,
			&t.DestinationID,
			&t.DepartureTime,
			&t.ArrivalTime,
			&t.Capacity,
			&t.PricePerSeat,
			&t.AllowFullCar,
			&methods,
			&status,
			&t.DriverID,
			&t.VehicleID,
		); err != nil {
			return nil, err
		}
		t.DepartureTime = t.DepartureTime.UTC()
		t.ArrivalTime = t.ArrivalTime.UTC()
		t.SeatsAvailable = t.Capacity
		t.PaymentMethods = parsePaymentMethods(methods)
		t.Status = importedStatus(status)
		t.CreatedAt = now.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// parsePaymentMethods reads a comma separated list, e.g. "cash,mobile_money".
func parsePaymentMethods(raw string) []models.PaymentMethod {
	out := []models.PaymentMethod{}
	for _, part := range strings.Split(raw, ",") {
		m := models.PaymentMethod(strings.ToLower(strings.TrimSpace(part)))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// importedStatus keeps terminal statuses; anything else starts active since
// no bookings are imported.
func importedStatus(raw string) models.TripStatus {
	s := models.TripStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s.Terminal() {
		return s
	}
	return models.TripActive
}
