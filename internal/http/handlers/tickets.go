package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type validateTicketRequest struct {
	Payload         string `json:"payload"`
	ValidatorUserID string `json:"validatorUserId"`
}

// ValidateTicket answers 200 for every scan outcome: a failed scan is a business outcome.
// An unreadable body is reported as a malformed payload.
func (h Handlers) ValidateTicket(c *gin.Context) {
	var req validateTicketRequest
	_ = c.ShouldBindJSON(&req)
	out, err := h.tickets(c).Validate(c.Request.Context(), req.Payload, req.ValidatorUserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
