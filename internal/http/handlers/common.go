package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/http/middleware"
	"ridemarket/internal/services"
	"ridemarket/internal/ticket"

	"github.com/gin-gonic/gin"
)

// Handlers binds the engine services to gin. Services are rebuilt per request
// so log lines carry the request id.
type Handlers struct {
	Runtime     services.Runtime
	Signer      ticket.Signer
	OneTimeScan bool
}

func (h Handlers) runtime(c *gin.Context) services.Runtime {
	return h.Runtime.WithRequestID(middleware.GetRequestID(c))
}

func (h Handlers) trips(c *gin.Context) services.TripService {
	return services.TripService{Runtime: h.runtime(c)}
}

func (h Handlers) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{Runtime: h.runtime(c)}
}

func (h Handlers) tickets(c *gin.Context) services.TicketService {
	return services.TicketService{Runtime: h.runtime(c), Signer: h.Signer, OneTimeScan: h.OneTimeScan}
}

func (h Handlers) disputes(c *gin.Context) services.DisputeService {
	return services.DisputeService{Runtime: h.runtime(c)}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// passengerField accepts either a user id string or a passenger object.
type passengerField struct {
	ID      string
	Literal *models.PassengerRef
}

func (p *passengerField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*p = passengerField{}
		return nil
	case b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*p = passengerField{ID: strings.TrimSpace(id)}
		return nil
	case b[0] == '{':
		var ref models.PassengerRef
		if err := json.Unmarshal(b, &ref); err != nil {
			return err
		}
		*p = passengerField{Literal: &ref}
		return nil
	default:
		return errors.New("passenger must be an id or an object")
	}
}

func (p passengerField) input() services.PassengerInput {
	return services.PassengerInput{ID: p.ID, Literal: p.Literal}
}
