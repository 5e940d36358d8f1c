package handlers

import (
	"net/http"

	"ridemarket/internal/http/middleware"
	"ridemarket/internal/services"

	"github.com/gin-gonic/gin"
)

// GetETicketPDF returns the booking's printable e-ticket (inline).
func (h Handlers) GetETicketPDF(c *gin.Context) {
	svc := services.DocsService{
		Tickets:   h.tickets(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateETicket(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
