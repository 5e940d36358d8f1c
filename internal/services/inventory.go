package services

import (
	"ridemarket/internal/domain"
	"ridemarket/internal/domain/models"
)

// Reserve takes seats from trip. A full-car request takes every remaining
// seat and ignores requested. The caller must hold the store write lock.
func Reserve(trip *models.Trip, requested int, fullCar bool) (int, error) {
	granted := requested
	if fullCar {
		granted = trip.SeatsAvailable
	}
	if granted <= 0 || granted > trip.SeatsAvailable {
		return 0, domain.CapacityError{Requested: granted, Available: trip.SeatsAvailable}
	}
	trip.SeatsAvailable -= granted
	if trip.SeatsAvailable == 0 {
		trip.Status = models.TripFull
	}
	return granted, nil
}

// Release returns seats to trip. Only a full trip becomes active again;
// completed and cancelled trips keep their status.
func Release(trip *models.Trip, seats int) {
	if seats <= 0 {
		return
	}
	trip.SeatsAvailable += seats
	if trip.Status == models.TripFull {
		trip.Status = models.TripActive
	}
}
