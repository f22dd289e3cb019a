package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// ShiftHandler serves the roster endpoints.
type ShiftHandler struct {
	shiftSvc *service.ShiftService
}

func NewShiftHandler(shiftSvc *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// List handles GET /api/v1/shifts.
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid query parameters")
		return
	}

	shifts, err := h.shiftSvc.List(c.Request.Context(), &req)
	if err != nil {
		writeError(c, 12000, err)
		return
	}

	response.OK(c, gin.H{"list": toShiftResponses(shifts)})
}

// Get handles GET /api/v1/shifts/:id.
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.shiftSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, 12000, err)
		return
	}

	response.OK(c, toShiftResponse(shift))
}

// Reassign handles PUT /api/v1/shifts/:id/owner (admin).
func (h *ShiftHandler) Reassign(c *gin.Context) {
	var req dto.ReassignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request parameters")
		return
	}

	shift, err := h.shiftSvc.Reassign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, 12000, err)
		return
	}

	response.OK(c, toShiftResponse(shift))
}

// MarkOpen handles POST /api/v1/shifts/:id/open (admin).
func (h *ShiftHandler) MarkOpen(c *gin.Context) {
	shift, err := h.shiftSvc.MarkOpen(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, 12000, err)
		return
	}

	response.OK(c, toShiftResponse(shift))
}

// MarkPlanned handles POST /api/v1/shifts/:id/planned (admin).
func (h *ShiftHandler) MarkPlanned(c *gin.Context) {
	shift, err := h.shiftSvc.MarkPlanned(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, 12000, err)
		return
	}

	response.OK(c, toShiftResponse(shift))
}
