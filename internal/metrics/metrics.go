// Package metrics holds the Prometheus collectors of the booking engine.
package metrics

import (
	"ridemarket/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ridemarket"

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "The total number of bookings created",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "The total number of bookings cancelled by passengers",
	})

	SeatsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seats_reserved_total",
		Help:      "The total number of seats granted by trip inventory",
	})

	TicketsValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_validated_total",
		Help:      "Ticket scans by outcome",
	}, []string{"result"})

	DisputesUpdated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "disputes_updated_total",
		Help:      "Dispute status changes by target status",
	}, []string{"status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ValidationResult maps a scan reason to a low-cardinality label.
func ValidationResult(valid bool, reason string) string {
	if valid {
		return "valid"
	}
	switch reason {
	case models.ReasonMalformed:
		return "malformed"
	case models.ReasonBadChecksum:
		return "bad_checksum"
	case models.ReasonNotFound:
		return "not_found"
	case models.ReasonCancelled:
		return "cancelled"
	case models.ReasonOtherDriver:
		return "forbidden"
	case models.ReasonDataMismatch:
		return "mismatch"
	case models.ReasonAlreadyScanned:
		return "replayed"
	}
	return "other"
}
