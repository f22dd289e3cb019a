package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// ExchangeHandler serves the direct transfer/swap endpoints.
type ExchangeHandler struct {
	exchangeSvc *service.ExchangeService
}

func NewExchangeHandler(exchangeSvc *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeSvc: exchangeSvc}
}

// Create handles POST /api/v1/exchanges.
func (h *ExchangeHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request parameters")
		return
	}

	exchange, err := h.exchangeSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.Created(c, toExchangeResponse(exchange))
}

// ListMine handles GET /api/v1/exchanges/my.
func (h *ExchangeHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reqs, err := h.exchangeSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OK(c, gin.H{"list": toExchangeResponses(reqs)})
}

// ListPending handles GET /api/v1/exchanges/pending (admin/supervisor).
func (h *ExchangeHandler) ListPending(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	reqs, err := h.exchangeSvc.ListPendingForApprover(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OK(c, gin.H{"list": toExchangeResponses(reqs)})
}

// ListAll handles GET /api/v1/exchanges (admin).
func (h *ExchangeHandler) ListAll(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 13001, "invalid query parameters")
		return
	}

	reqs, total, err := h.exchangeSvc.ListAll(c.Request.Context(), page.GetPage(), page.GetPageSize())
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OKPage(c, toExchangeResponses(reqs), total, page.GetPage(), page.GetPageSize())
}

// Approve handles POST /api/v1/exchanges/:id/approve (admin/supervisor).
func (h *ExchangeHandler) Approve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request parameters")
		return
	}

	exchange, err := h.exchangeSvc.Approve(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OK(c, toExchangeResponse(exchange))
}

// Reject handles POST /api/v1/exchanges/:id/reject (admin/supervisor).
func (h *ExchangeHandler) Reject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request parameters")
		return
	}

	exchange, err := h.exchangeSvc.Reject(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OK(c, toExchangeResponse(exchange))
}

// Cancel handles POST /api/v1/exchanges/:id/cancel.
func (h *ExchangeHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exchange, err := h.exchangeSvc.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, 13000, err)
		return
	}

	response.OK(c, toExchangeResponse(exchange))
}
