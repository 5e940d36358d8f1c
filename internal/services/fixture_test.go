package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/store"
	"ridemarket/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	// trip search compares local dates
	time.Local = time.UTC
	utils.SetLogger(zap.NewNop().Sugar())
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

type recordedEvent struct {
	Key     string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Key: key, Payload: v})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Key)
	}
	return out
}

func testSeed() store.Seed {
	return store.Seed{
		Hotpoints: []models.Hotpoint{
			{ID: "hp_a", Name: "Akwa", City: "Douala"},
			{ID: "hp_b", Name: "Mvan", City: "Yaounde"},
		},
		Users: []models.User{
			{ID: "r1", Name: "Rider One", Phone: "+237600000001", Role: models.RoleRider},
			{ID: "r2", Name: "Rider Two", Role: models.RoleRider},
			{ID: "d1", Name: "Driver One", Role: models.RoleDriver},
			{ID: "ag1", Name: "Agency One", Role: models.RoleAgency},
			{ID: "s1", Name: "Scanner One", Role: models.RoleScanner, AgencyID: "ag1"},
			{ID: "s2", Name: "Scanner Two", Role: models.RoleScanner, AgencyID: "ag2"},
		},
		Vehicles: []models.Vehicle{
			{ID: "v1", OwnerID: "d1", Plate: "LT-001", Type: "car", Capacity: 2},
			{ID: "v2", OwnerID: "ag1", Plate: "CE-002", Type: "bus", Capacity: 10},
		},
		Trips: []models.Trip{
			{
				ID: "t_small", DepartureID: "hp_a", DestinationID: "hp_b",
				DepartureTime: fixedNow.Add(24 * time.Hour), ArrivalTime: fixedNow.Add(28 * time.Hour),
				Capacity: 2, SeatsAvailable: 2, PricePerSeat: decimal.NewFromInt(6000),
				AllowFullCar:   true,
				PaymentMethods: []models.PaymentMethod{models.PaymentCash, models.PaymentMobileMoney},
				DriverID:       "d1", VehicleID: "v1",
			},
			{
				ID: "t_bus", DepartureID: "hp_b", DestinationID: "hp_a",
				DepartureTime: fixedNow.Add(48 * time.Hour), ArrivalTime: fixedNow.Add(53 * time.Hour),
				Capacity: 10, SeatsAvailable: 10, PricePerSeat: decimal.RequireFromString("4500.25"),
				PaymentMethods: []models.PaymentMethod{models.PaymentCash, models.PaymentMobileMoney, models.PaymentCard},
				DriverID:       "ag1", VehicleID: "v2",
			},
		},
	}
}

// newRuntime loads the test seed with a fixed clock and sequential ids.
func newRuntime(t *testing.T) (Runtime, *recordingPublisher) {
	t.Helper()
	st := store.New()
	if err := st.Load(testSeed()); err != nil {
		t.Fatalf("load seed: %v", err)
	}
	var (
		mu  sync.Mutex
		seq = map[string]int{}
	)
	pub := &recordingPublisher{}
	return Runtime{
		Store:     st,
		Publisher: pub,
		Clock:     func() time.Time { return fixedNow },
		IDGen: func(prefix string) string {
			mu.Lock()
			defer mu.Unlock()
			seq[prefix]++
			return fmt.Sprintf("%s_%d", prefix, seq[prefix])
		},
		RequestID: "req-test",
	}, pub
}

func liveTripOf(t *testing.T, rt Runtime, id string) models.Trip {
	t.Helper()
	var out models.Trip
	_ = rt.Store.View(func(tx *store.Tx) error {
		trip, ok := tx.Trip(id)
		if !ok {
			t.Fatalf("trip %s missing", id)
		}
		out = trip.Clone()
		return nil
	})
	return out
}

// heldSeats sums seats of non-cancelled bookings on a trip.
func heldSeats(rt Runtime, tripID string) int {
	n := 0
	_ = rt.Store.View(func(tx *store.Tx) error {
		for _, b := range tx.Bookings() {
			if b.TripID == tripID && b.Holds() {
				n += b.Seats
			}
		}
		return nil
	})
	return n
}

func book(t *testing.T, rt Runtime, tripID, passengerID string, seats int, method models.PaymentMethod) models.BookingView {
	t.Helper()
	v, err := BookingService{Runtime: rt}.Create(context.Background(), CreateBookingInput{
		TripID:        tripID,
		Passenger:     PassengerInput{ID: passengerID},
		Seats:         seats,
		PaymentMethod: method,
	})
	if err != nil {
		t.Fatalf("book %s: %v", tripID, err)
	}
	return v
}
