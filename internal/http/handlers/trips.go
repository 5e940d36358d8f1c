package handlers

import (
	"net/http"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchTrips handles GET /api/trips?fromId&toId&date&type.
func (h Handlers) SearchTrips(c *gin.Context) {
	out, err := h.trips(c).Search(services.TripQuery{
		FromID: c.Query("fromId"),
		ToID:   c.Query("toId"),
		Date:   c.Query("date"),
		Type:   c.Query("type"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetTrip(c *gin.Context) {
	out, err := h.trips(c).Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type tripStatusRequest struct {
	DriverID string `json:"driverId"`
	Status   string `json:"status"`
}

func (h Handlers) UpdateTripStatus(c *gin.Context) {
	var req tripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.trips(c).UpdateStatus(c.Request.Context(), c.Param("id"), req.DriverID, models.TripStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
