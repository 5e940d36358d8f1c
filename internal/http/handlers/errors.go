package handlers

import (
	"net/http"

	"ridemarket/internal/domain"
	"ridemarket/internal/http/middleware"
	"ridemarket/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the only error body the API emits.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// RespondDomainError maps domain errors to HTTP responses. Conflicts are
// client errors of the booking flow and surface as 400.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case domain.IsPermission(err):
		respondError(c, http.StatusForbidden, err.Error())
	case domain.IsValidation(err), domain.IsConflict(err):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		utils.Logger().Errorw("request failed", "request_id", middleware.GetRequestID(c), "error", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
