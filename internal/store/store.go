// Package store is the in-memory authoritative entity store. All reads and
// writes go through View/Update so every engine operation runs under one
// store-wide lock.
package store

import (
	"fmt"
	"sync"
	"time"

	"ridemarket/internal/domain/models"
)

type collection[T any] struct {
	byID  map[string]*T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: map[string]*T{}}
}

func (c *collection[T]) get(id string) (*T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) *T {
	if cur, ok := c.byID[id]; ok {
		*cur = v
		return cur
	}
	p := &v
	c.byID[id] = p
	c.order = append(c.order, id)
	return p
}

func (c *collection[T]) all() []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Store owns every mutable entity. Entities are never deleted.
type Store struct {
	mu sync.RWMutex

	hotpoints     *collection[models.Hotpoint]
	users         *collection[models.User]
	vehicles      *collection[models.Vehicle]
	trips         *collection[models.Trip]
	bookings      *collection[models.Booking]
	disputes      *collection[models.Dispute]
	ratings       *collection[models.Rating]
	notifications *collection[models.Notification]
	scanned       map[string]time.Time
}

func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.hotpoints = newCollection[models.Hotpoint]()
	s.users = newCollection[models.User]()
	s.vehicles = newCollection[models.Vehicle]()
	s.trips = newCollection[models.Trip]()
	s.bookings = newCollection[models.Booking]()
	s.disputes = newCollection[models.Dispute]()
	s.ratings = newCollection[models.Rating]()
	s.notifications = newCollection[models.Notification]()
	s.scanned = map[string]time.Time{}
}

// View runs fn under the read lock. Pointers handed out by tx must not be
// mutated or retained after fn returns.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{s: s})
}

// Update runs fn under the write lock. There is no rollback: fn must finish
// its checks before it mutates anything.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s, writable: true})
}

// Load replaces the whole store content with seed. The seed is checked for
// dangling references and seat conservation first; on error the store is
// left untouched. Load normalizes seed in place, stamping undated records
// with the load time.
func (s *Store) Load(seed Seed) error {
	seed = seed.Normalize(time.Now())
	if err := seed.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	for _, h := range seed.Hotpoints {
		s.hotpoints.put(h.ID, h)
	}
	for _, u := range seed.Users {
		s.users.put(u.ID, u)
	}
	for _, v := range seed.Vehicles {
		s.vehicles.put(v.ID, v)
	}
	for _, t := range seed.Trips {
		s.trips.put(t.ID, t.Clone())
	}
	for _, b := range seed.Bookings {
		s.bookings.put(b.ID, b.Clone())
	}
	for _, d := range seed.Disputes {
		s.disputes.put(d.ID, d.Clone())
	}
	for _, r := range seed.Ratings {
		s.ratings.put(r.ID, r)
	}
	return nil
}

// Tx is a handle valid only inside View or Update.
type Tx struct {
	s        *Store
	writable bool
}

func (tx *Tx) mustWrite() {
	if !tx.writable {
		panic("store: write inside a read-only transaction")
	}
}

func (tx *Tx) Hotpoint(id string) (*models.Hotpoint, bool) { return tx.s.hotpoints.get(id) }
func (tx *Tx) Hotpoints() []*models.Hotpoint               { return tx.s.hotpoints.all() }
func (tx *Tx) User(id string) (*models.User, bool)         { return tx.s.users.get(id) }
func (tx *Tx) Users() []*models.User                       { return tx.s.users.all() }
func (tx *Tx) Vehicle(id string) (*models.Vehicle, bool)   { return tx.s.vehicles.get(id) }
func (tx *Tx) Trip(id string) (*models.Trip, bool)         { return tx.s.trips.get(id) }
func (tx *Tx) Trips() []*models.Trip                       { return tx.s.trips.all() }
func (tx *Tx) Booking(id string) (*models.Booking, bool)   { return tx.s.bookings.get(id) }
func (tx *Tx) Bookings() []*models.Booking                 { return tx.s.bookings.all() }
func (tx *Tx) Dispute(id string) (*models.Dispute, bool)   { return tx.s.disputes.get(id) }
func (tx *Tx) Disputes() []*models.Dispute                 { return tx.s.disputes.all() }
func (tx *Tx) Ratings() []*models.Rating                   { return tx.s.ratings.all() }
func (tx *Tx) Notifications() []*models.Notification       { return tx.s.notifications.all() }

func (tx *Tx) PutTrip(t models.Trip) *models.Trip {
	tx.mustWrite()
	return tx.s.trips.put(t.ID, t)
}

// InsertBooking adds a new booking. Bookings are never replaced wholesale.
func (tx *Tx) InsertBooking(b models.Booking) (*models.Booking, error) {
	tx.mustWrite()
	if _, exists := tx.s.bookings.get(b.ID); exists {
		return nil, fmt.Errorf("booking %s already exists", b.ID)
	}
	return tx.s.bookings.put(b.ID, b), nil
}

func (tx *Tx) PutDispute(d models.Dispute) *models.Dispute {
	tx.mustWrite()
	return tx.s.disputes.put(d.ID, d)
}

func (tx *Tx) PutRating(r models.Rating) *models.Rating {
	tx.mustWrite()
	return tx.s.ratings.put(r.ID, r)
}

func (tx *Tx) AppendNotification(n models.Notification) {
	tx.mustWrite()
	tx.s.notifications.put(n.ID, n)
}

// MarkScanned records the first scan of a booking's ticket. The marker is
// never cleared; later calls return the original time and first=false.
func (tx *Tx) MarkScanned(bookingID string, at time.Time) (firstAt time.Time, first bool) {
	tx.mustWrite()
	if prev, ok := tx.s.scanned[bookingID]; ok {
		return prev, false
	}
	tx.s.scanned[bookingID] = at
	return at, true
}

// ScannedAt returns when the booking's ticket was first scanned.
func (tx *Tx) ScannedAt(bookingID string) (time.Time, bool) {
	at, ok := tx.s.scanned[bookingID]
	return at, ok
}
