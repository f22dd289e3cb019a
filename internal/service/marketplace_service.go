package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// MarketplaceService runs the open marketplace state machine:
// open -> offer_selected -> approved | rejected, or open -> cancelled.
type MarketplaceService struct {
	repo      *repository.Repository
	directory Directory
	approvals *ApprovalGateway
	settings  *SettingsService
	notifier  *Notifier
	logger    *zap.Logger
}

func NewMarketplaceService(repo *repository.Repository, directory Directory, approvals *ApprovalGateway, settings *SettingsService, notifier *Notifier, logger *zap.Logger) *MarketplaceService {
	return &MarketplaceService{
		repo:      repo,
		directory: directory,
		approvals: approvals,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
	}
}

// OpenShift releases an owned shift onto the marketplace. At most one
// non-terminal listing may exist per shift; the check runs inside the
// creation transaction and the partial unique index backstops it.
func (s *MarketplaceService) OpenShift(ctx context.Context, requesterID string, req *dto.OpenShiftRequest) (*model.OpenSwapRequest, error) {
	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	if !shift.OwnedBy(requesterID) {
		return nil, apperrors.Validation("shift is not assigned to you")
	}
	if !shift.StartTime.After(time.Now()) {
		return nil, apperrors.Validation("shift must be in the future")
	}
	if err := s.settings.RequireShiftSwapEnabled(ctx, shift.StationID); err != nil {
		return nil, err
	}

	listing := &model.OpenSwapRequest{
		RequesterID:   requesterID,
		ShiftID:       req.ShiftID,
		StationID:     shift.StationID,
		RequesterNote: req.Note,
		IsOpen:        true,
		Status:        model.OpenSwapStatusOpen,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		active, err := tx.OpenSwapRequest.HasActiveForShift(ctx, req.ShiftID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.InvalidState("shift already has an active listing")
		}
		if err := tx.Shift.SetStatusIf(ctx, req.ShiftID,
			[]string{model.ShiftStatusPlanned}, model.ShiftStatusOpen); err != nil {
			return err
		}
		return tx.OpenSwapRequest.Create(ctx, listing)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift listed on marketplace",
		zap.String("request_id", listing.OpenSwapRequestID),
		zap.String("shift_id", req.ShiftID))
	s.notifier.Event(ctx, "open_swap_created", requesterID, "open_swap_request", listing.OpenSwapRequestID)

	return s.repo.OpenSwapRequest.GetByID(ctx, listing.OpenSwapRequestID)
}

// SubmitOffer places one offer on an open listing. Concurrent offers are
// expected; no lock is taken here.
func (s *MarketplaceService) SubmitOffer(ctx context.Context, offererID, requestID string, req *dto.SubmitOfferRequest) (*model.SwapOffer, error) {
	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	if listing.Status != model.OpenSwapStatusOpen {
		return nil, apperrors.InvalidState("request is no longer open for offers")
	}
	if listing.RequesterID == offererID {
		return nil, apperrors.Validation("you cannot offer on your own request")
	}

	if req.OffererShiftID != nil {
		ownShift, err := s.repo.Shift.GetByID(ctx, *req.OffererShiftID)
		if err != nil {
			return nil, asNotFound(err, "offered shift not found")
		}
		if !ownShift.OwnedBy(offererID) {
			return nil, apperrors.Validation("offered shift is not assigned to you")
		}
		if !ownShift.StartTime.After(time.Now()) {
			return nil, apperrors.Validation("offered shift must be in the future")
		}
	}

	dup, err := s.repo.SwapOffer.HasDuplicate(ctx, requestID, offererID, req.OffererShiftID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apperrors.Validation("an identical offer is already pending")
	}

	offer := &model.SwapOffer{
		OpenSwapRequestID: requestID,
		OffererID:         offererID,
		OffererShiftID:    req.OffererShiftID,
		Note:              req.Note,
		Status:            model.OfferStatusPending,
	}
	if err := s.repo.SwapOffer.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, listing.RequesterID, "swap_offer_received",
		"New offer on your shift",
		"A colleague placed an offer on your open shift.",
		"swap_offer", offer.SwapOfferID)

	return s.repo.SwapOffer.GetByID(ctx, offer.SwapOfferID)
}

// SubmitOffers attempts a batch of offers, each independently. A failed
// item never rolls back an earlier success.
func (s *MarketplaceService) SubmitOffers(ctx context.Context, offererID, requestID string, req *dto.BatchOffersRequest) (*dto.BatchOffersResponse, error) {
	resp := &dto.BatchOffersResponse{
		Attempted: len(req.Offers),
		Results:   make([]dto.OfferAttemptResult, 0, len(req.Offers)),
	}
	for i := range req.Offers {
		item := req.Offers[i]
		result := dto.OfferAttemptResult{OffererShiftID: item.OffererShiftID}

		offer, err := s.SubmitOffer(ctx, offererID, requestID, &item)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.OfferID = offer.SwapOfferID
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

// WithdrawOffer retires a pending offer while the parent request is still
// open.
func (s *MarketplaceService) WithdrawOffer(ctx context.Context, offererID, offerID string) (*model.SwapOffer, error) {
	offer, err := s.repo.SwapOffer.GetByID(ctx, offerID)
	if err != nil {
		return nil, asNotFound(err, "offer not found")
	}
	if offer.OffererID != offererID {
		return nil, apperrors.Unauthorized("only the offerer may withdraw")
	}

	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, offer.OpenSwapRequestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	if listing.Status != model.OpenSwapStatusOpen {
		return nil, apperrors.InvalidState("offers can no longer be withdrawn")
	}

	if err := s.repo.SwapOffer.UpdateStatusIf(ctx, offerID,
		[]string{model.OfferStatusPending}, model.OfferStatusWithdrawn); err != nil {
		return nil, err
	}
	return s.repo.SwapOffer.GetByID(ctx, offerID)
}

// SelectOffer is the requester choosing the winning offer. One
// transaction accepts the winner, retires the accepted offerer's other
// pending offers as withdrawn, rejects everyone else's, and advances the
// request to offer_selected.
func (s *MarketplaceService) SelectOffer(ctx context.Context, selectorID, requestID string, req *dto.SelectOfferRequest) (*model.OpenSwapRequest, error) {
	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	if listing.RequesterID != selectorID {
		return nil, apperrors.Unauthorized("only the requester may select an offer")
	}

	offer, err := s.repo.SwapOffer.GetByID(ctx, req.OfferID)
	if err != nil {
		return nil, asNotFound(err, "offer not found")
	}
	if offer.OpenSwapRequestID != requestID {
		return nil, apperrors.Validation("offer does not belong to this request")
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.SwapOffer.UpdateStatusIf(ctx, req.OfferID,
			[]string{model.OfferStatusPending}, model.OfferStatusAccepted); err != nil {
			return err
		}
		if err := tx.SwapOffer.WithdrawPendingByOfferer(ctx, requestID, offer.OffererID, req.OfferID); err != nil {
			return err
		}
		if err := tx.SwapOffer.RejectOtherPending(ctx, requestID, req.OfferID); err != nil {
			return err
		}
		return tx.OpenSwapRequest.UpdateStatusIf(ctx, requestID,
			[]string{model.OpenSwapStatusOpen}, model.OpenSwapStatusOfferSelected)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("offer selected",
		zap.String("request_id", requestID),
		zap.String("offer_id", req.OfferID))
	s.notifier.Notify(ctx, offer.OffererID, "swap_offer_accepted",
		"Your offer was selected",
		"The requester selected your offer. It now awaits approval.",
		"swap_offer", req.OfferID)

	return s.repo.OpenSwapRequest.GetByID(ctx, requestID)
}

// Approve finalizes an offer_selected request, handing the listed shift
// to the accepted offerer and, for a reciprocal offer, the offered shift
// to the requester.
func (s *MarketplaceService) Approve(ctx context.Context, approverID, requestID string, req *dto.ReviewRequest) (*model.OpenSwapRequest, error) {
	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	accepted, err := s.repo.SwapOffer.GetAcceptedByRequest(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "no accepted offer on this request")
	}
	if err := s.approvals.Authorize(ctx, approverID, listing.StationID, accepted.OffererID); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.OpenSwapRequest.Finalize(ctx, requestID,
			[]string{model.OpenSwapStatusOfferSelected},
			model.OpenSwapStatusApproved, approverID, req.AdminNote); err != nil {
			return err
		}
		if err := tx.Shift.ReassignOwner(ctx, listing.ShiftID, &accepted.OffererID); err != nil {
			return err
		}
		if err := tx.Shift.SetStatusIf(ctx, listing.ShiftID,
			[]string{model.ShiftStatusOpen}, model.ShiftStatusPlanned); err != nil {
			return err
		}
		if accepted.OffererShiftID != nil {
			return tx.Shift.ReassignOwner(ctx, *accepted.OffererShiftID, &listing.RequesterID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("open swap approved",
		zap.String("request_id", requestID),
		zap.String("approver_id", approverID))
	s.notifier.Notify(ctx, listing.RequesterID, "open_swap_approved",
		"Shift handover approved",
		"Your marketplace listing was approved and the shift reassigned.",
		"open_swap_request", requestID)
	s.notifier.Notify(ctx, accepted.OffererID, "open_swap_approved",
		"Shift takeover approved",
		"Your accepted offer was approved. The shift is now yours.",
		"open_swap_request", requestID)

	return s.repo.OpenSwapRequest.GetByID(ctx, requestID)
}

// Reject finalizes an offer_selected request without moving any shift.
// The listed shift returns to its owner's plan and the accepted offer is
// closed out.
func (s *MarketplaceService) Reject(ctx context.Context, approverID, requestID string, req *dto.ReviewRequest) (*model.OpenSwapRequest, error) {
	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	accepted, err := s.repo.SwapOffer.GetAcceptedByRequest(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "no accepted offer on this request")
	}
	if err := s.approvals.Authorize(ctx, approverID, listing.StationID, accepted.OffererID); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.OpenSwapRequest.Finalize(ctx, requestID,
			[]string{model.OpenSwapStatusOfferSelected},
			model.OpenSwapStatusRejected, approverID, req.AdminNote); err != nil {
			return err
		}
		if err := tx.SwapOffer.UpdateStatusIf(ctx, accepted.SwapOfferID,
			[]string{model.OfferStatusAccepted}, model.OfferStatusRejected); err != nil {
			return err
		}
		return tx.Shift.SetStatusIf(ctx, listing.ShiftID,
			[]string{model.ShiftStatusOpen}, model.ShiftStatusPlanned)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, listing.RequesterID, "open_swap_rejected",
		"Shift handover rejected",
		"Your marketplace listing was rejected. You keep the shift.",
		"open_swap_request", requestID)
	s.notifier.Notify(ctx, accepted.OffererID, "open_swap_rejected",
		"Shift takeover rejected",
		"The approval for your accepted offer was declined.",
		"open_swap_request", requestID)

	return s.repo.OpenSwapRequest.GetByID(ctx, requestID)
}

// Cancel is the requester pulling the listing while still open. Pending
// offers are rejected and the shift returns to the plan.
func (s *MarketplaceService) Cancel(ctx context.Context, requesterID, requestID string) (*model.OpenSwapRequest, error) {
	listing, err := s.repo.OpenSwapRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "open swap request not found")
	}
	if listing.RequesterID != requesterID {
		return nil, apperrors.Unauthorized("only the requester may cancel")
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.OpenSwapRequest.UpdateStatusIf(ctx, requestID,
			[]string{model.OpenSwapStatusOpen}, model.OpenSwapStatusCancelled); err != nil {
			return err
		}
		if err := tx.SwapOffer.RejectOtherPending(ctx, requestID, ""); err != nil {
			return err
		}
		return tx.Shift.SetStatusIf(ctx, listing.ShiftID,
			[]string{model.ShiftStatusOpen}, model.ShiftStatusPlanned)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Event(ctx, "open_swap_cancelled", requesterID, "open_swap_request", requestID)
	return s.repo.OpenSwapRequest.GetByID(ctx, requestID)
}

// ListOpen returns the open listings visible to the user (their own
// station's marketplace).
func (s *MarketplaceService) ListOpen(ctx context.Context, userID string) ([]model.OpenSwapRequest, error) {
	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.OpenSwapRequest.ListOpen(ctx, user.StationID)
}

// ListMine returns the user's own listings, offers included.
func (s *MarketplaceService) ListMine(ctx context.Context, requesterID string) ([]model.OpenSwapRequest, error) {
	return s.repo.OpenSwapRequest.ListByRequester(ctx, requesterID)
}

// ListMyOffers returns the offers the user placed across all listings.
func (s *MarketplaceService) ListMyOffers(ctx context.Context, offererID string) ([]model.SwapOffer, error) {
	return s.repo.SwapOffer.ListByOfferer(ctx, offererID)
}

// ListPendingForApprover returns offer_selected requests in every station
// the approver can administer.
func (s *MarketplaceService) ListPendingForApprover(ctx context.Context, approverID string) ([]model.OpenSwapRequest, error) {
	ok, err := s.directory.HasRole(ctx, approverID, model.RoleAdmin, model.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Unauthorized("approval queue requires an admin or supervisor role")
	}

	stationIDs, err := s.directory.AccessibleStationIDs(ctx, approverID)
	if err != nil {
		return nil, err
	}

	var out []model.OpenSwapRequest
	for _, stationID := range stationIDs {
		reqs, err := s.repo.OpenSwapRequest.ListPendingApproval(ctx, stationID)
		if err != nil {
			return nil, err
		}
		out = append(out, reqs...)
	}
	return out, nil
}
