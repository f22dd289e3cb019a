package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// BidHandler serves the open-shift bid endpoints.
type BidHandler struct {
	bidSvc *service.BidService
}

func NewBidHandler(bidSvc *service.BidService) *BidHandler {
	return &BidHandler{bidSvc: bidSvc}
}

// Place handles POST /api/v1/bids.
func (h *BidHandler) Place(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request parameters")
		return
	}

	bid, err := h.bidSvc.PlaceBid(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, 15000, err)
		return
	}

	response.Created(c, toBidResponse(bid))
}

// ListMine handles GET /api/v1/bids/my.
func (h *BidHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bids, err := h.bidSvc.ListMyBids(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 15000, err)
		return
	}

	response.OK(c, gin.H{"list": toBidResponses(bids)})
}

// ListForShift handles GET /api/v1/shifts/:id/bids (admin/supervisor).
func (h *BidHandler) ListForShift(c *gin.Context) {
	bids, err := h.bidSvc.ListBidsForShift(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, 15000, err)
		return
	}

	response.OK(c, gin.H{"list": toBidResponses(bids)})
}

// Withdraw handles POST /api/v1/bids/:id/withdraw.
func (h *BidHandler) Withdraw(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bid, err := h.bidSvc.WithdrawBid(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, 15000, err)
		return
	}

	response.OK(c, toBidResponse(bid))
}

// Resolve handles POST /api/v1/bids/:id/resolve (admin/supervisor).
func (h *BidHandler) Resolve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bid, err := h.bidSvc.ResolveBid(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, 15000, err)
		return
	}

	response.OK(c, toBidResponse(bid))
}
