package handlers

import (
	"net/http"

	"ridemarket/internal/services"

	"github.com/gin-gonic/gin"
)

type createRatingRequest struct {
	BookingID string `json:"bookingId"`
	RaterID   string `json:"raterId"`
	Score     int    `json:"score"`
	Comment   string `json:"comment"`
}

func (h Handlers) CreateRating(c *gin.Context) {
	var req createRatingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := services.RatingService{Runtime: h.runtime(c)}.Create(services.CreateRatingInput(req))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) DriverRatings(c *gin.Context) {
	out, err := services.RatingService{Runtime: h.runtime(c)}.ForDriver(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
