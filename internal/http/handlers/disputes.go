package handlers

import (
	"net/http"

	"ridemarket/internal/domain/models"
	"ridemarket/internal/http/middleware"
	"ridemarket/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListDisputes(c *gin.Context) {
	out, err := h.disputes(c).List(middleware.GetScope(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetDispute(c *gin.Context) {
	out, err := h.disputes(c).Get(middleware.GetScope(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createDisputeRequest struct {
	BookingID   string `json:"bookingId"`
	ReporterID  string `json:"reporterId"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (h Handlers) CreateDispute(c *gin.Context) {
	var req createDisputeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.disputes(c).Create(c.Request.Context(), middleware.GetScope(c), services.CreateDisputeInput(req))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) ReviewDispute(c *gin.Context) {
	out, err := h.disputes(c).Review(c.Request.Context(), middleware.GetScope(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
	ResolvedBy string `json:"resolvedBy"`
}

func (h Handlers) ResolveDispute(c *gin.Context) {
	var req resolveDisputeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.disputes(c).Resolve(c.Request.Context(), middleware.GetScope(c), c.Param("id"), req.Resolution, req.ResolvedBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type patchDisputeRequest struct {
	Status     *string `json:"status"`
	Resolution *string `json:"resolution"`
	ResolvedBy *string `json:"resolvedBy"`
}

// PatchDispute is the operator override: any status may be set.
func (h Handlers) PatchDispute(c *gin.Context) {
	var req patchDisputeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	patch := services.DisputePatch{Resolution: req.Resolution, ResolvedBy: req.ResolvedBy}
	if req.Status != nil {
		st := models.DisputeStatus(*req.Status)
		patch.Status = &st
	}
	out, err := h.disputes(c).Patch(c.Request.Context(), middleware.GetScope(c), c.Param("id"), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
