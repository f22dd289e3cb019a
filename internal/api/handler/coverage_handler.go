package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// CoverageHandler serves the coverage gap endpoints.
type CoverageHandler struct {
	coverageSvc *service.CoverageService
}

func NewCoverageHandler(coverageSvc *service.CoverageService) *CoverageHandler {
	return &CoverageHandler{coverageSvc: coverageSvc}
}

// Gaps handles GET /api/v1/coverage/gaps.
func (h *CoverageHandler) Gaps(c *gin.Context) {
	var req dto.CoverageGapsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid query parameters")
		return
	}

	report, err := h.coverageSvc.GetGaps(c.Request.Context(), &req)
	if err != nil {
		writeError(c, 16000, err)
		return
	}

	response.OK(c, report)
}

// Daily handles GET /api/v1/coverage/daily.
func (h *CoverageHandler) Daily(c *gin.Context) {
	var req dto.DailyCoverageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid query parameters")
		return
	}

	reports, err := h.coverageSvc.GetDailyCoverage(c.Request.Context(), &req)
	if err != nil {
		writeError(c, 16000, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}
