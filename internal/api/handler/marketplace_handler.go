package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/service"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// MarketplaceHandler serves the open marketplace endpoints.
type MarketplaceHandler struct {
	marketSvc *service.MarketplaceService
}

func NewMarketplaceHandler(marketSvc *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketSvc: marketSvc}
}

// OpenShift handles POST /api/v1/open-swaps.
func (h *MarketplaceHandler) OpenShift(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	listing, err := h.marketSvc.OpenShift(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.Created(c, toOpenSwapResponse(listing))
}

// ListOpen handles GET /api/v1/open-swaps.
func (h *MarketplaceHandler) ListOpen(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listings, err := h.marketSvc.ListOpen(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, gin.H{"list": toOpenSwapResponses(listings)})
}

// ListMine handles GET /api/v1/open-swaps/my.
func (h *MarketplaceHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listings, err := h.marketSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, gin.H{"list": toOpenSwapResponses(listings)})
}

// ListMyOffers handles GET /api/v1/open-swaps/offers/my.
func (h *MarketplaceHandler) ListMyOffers(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	offers, err := h.marketSvc.ListMyOffers(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, gin.H{"list": toSwapOfferResponses(offers)})
}

// ListPending handles GET /api/v1/open-swaps/pending (admin/supervisor).
func (h *MarketplaceHandler) ListPending(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listings, err := h.marketSvc.ListPendingForApprover(c.Request.Context(), userID)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, gin.H{"list": toOpenSwapResponses(listings)})
}

// SubmitOffer handles POST /api/v1/open-swaps/:id/offers.
func (h *MarketplaceHandler) SubmitOffer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	offer, err := h.marketSvc.SubmitOffer(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.Created(c, toSwapOfferResponse(offer))
}

// SubmitOffers handles POST /api/v1/open-swaps/:id/offers/batch. Items
// are attempted independently; the response reports per-item outcomes.
func (h *MarketplaceHandler) SubmitOffers(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BatchOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	result, err := h.marketSvc.SubmitOffers(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, result)
}

// WithdrawOffer handles POST /api/v1/open-swaps/offers/:offerId/withdraw.
func (h *MarketplaceHandler) WithdrawOffer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	offer, err := h.marketSvc.WithdrawOffer(c.Request.Context(), userID, c.Param("offerId"))
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, toSwapOfferResponse(offer))
}

// SelectOffer handles POST /api/v1/open-swaps/:id/select.
func (h *MarketplaceHandler) SelectOffer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SelectOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	listing, err := h.marketSvc.SelectOffer(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, toOpenSwapResponse(listing))
}

// Approve handles POST /api/v1/open-swaps/:id/approve (admin/supervisor).
func (h *MarketplaceHandler) Approve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	listing, err := h.marketSvc.Approve(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, toOpenSwapResponse(listing))
}

// Reject handles POST /api/v1/open-swaps/:id/reject (admin/supervisor).
func (h *MarketplaceHandler) Reject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	listing, err := h.marketSvc.Reject(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, toOpenSwapResponse(listing))
}

// Cancel handles POST /api/v1/open-swaps/:id/cancel.
func (h *MarketplaceHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	listing, err := h.marketSvc.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, 14000, err)
		return
	}

	response.OK(c, toOpenSwapResponse(listing))
}
