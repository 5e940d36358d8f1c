package handlers

import (
	"net/http"
	"strings"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	TripID        string         `json:"tripId"`
	Passenger     passengerField `json:"passenger"`
	Seats         int            `json:"seats"`
	PaymentMethod string         `json:"paymentMethod"`
	IsFullCar     bool           `json:"isFullCar"`
}

// CreateBooking handles POST /api/bookings.
func (h Handlers) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.bookings(c).Create(c.Request.Context(), services.CreateBookingInput{
		TripID:        req.TripID,
		Passenger:     req.Passenger.input(),
		Seats:         req.Seats,
		PaymentMethod: models.PaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod))),
		IsFullCar:     req.IsFullCar,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListBookings handles GET /api/bookings?passengerId=.
func (h Handlers) ListBookings(c *gin.Context) {
	out, err := h.bookings(c).ListByPassenger(c.Query("passengerId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetBooking(c *gin.Context) {
	out, err := h.bookings(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type cancelBookingRequest struct {
	PassengerID string `json:"passengerId"`
}

func (h Handlers) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.PassengerID) == "" {
		respondError(c, http.StatusBadRequest, "passengerId is required")
		return
	}
	out, err := h.bookings(c).Cancel(c.Request.Context(), c.Param("id"), req.PassengerID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetTicket(c *gin.Context) {
	out, err := h.tickets(c).Ticket(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListNotifications handles GET /api/notifications?userId=.
func (h Handlers) ListNotifications(c *gin.Context) {
	out, err := services.NotificationService{Runtime: h.runtime(c)}.List(c.Query("userId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
