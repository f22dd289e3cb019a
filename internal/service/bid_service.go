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

// BidService handles single-party claims on unfilled open shifts. Sibling
// bids are not eagerly cancelled when one wins; resolution re-checks that
// the shift is still unowned, which makes stale bids fail on their own.
type BidService struct {
	repo      *repository.Repository
	approvals *ApprovalGateway
	settings  *SettingsService
	notifier  *Notifier
	logger    *zap.Logger
}

func NewBidService(repo *repository.Repository, approvals *ApprovalGateway, settings *SettingsService, notifier *Notifier, logger *zap.Logger) *BidService {
	return &BidService{
		repo:      repo,
		approvals: approvals,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
	}
}

// PlaceBid claims an unfilled open shift. Multiple concurrent pending
// bids per shift are expected.
func (s *BidService) PlaceBid(ctx context.Context, bidderID string, req *dto.PlaceBidRequest) (*model.ShiftBid, error) {
	shift, err := s.repo.Shift.GetByID(ctx, req.ShiftID)
	if err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	if shift.Status != model.ShiftStatusOpen || !shift.Unfilled() {
		return nil, apperrors.InvalidState("shift is not open for bidding")
	}
	if !shift.StartTime.After(time.Now()) {
		return nil, apperrors.Validation("shift must be in the future")
	}
	if err := s.settings.RequireShiftSwapEnabled(ctx, shift.StationID); err != nil {
		return nil, err
	}

	pending, err := s.repo.ShiftBid.HasPending(ctx, req.ShiftID, bidderID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.Validation("you already have a pending bid on this shift")
	}

	bid := &model.ShiftBid{
		ShiftID:  req.ShiftID,
		BidderID: bidderID,
		Status:   model.BidStatusPending,
	}
	if err := s.repo.ShiftBid.Create(ctx, bid); err != nil {
		return nil, err
	}

	s.notifier.Event(ctx, "shift_bid_placed", bidderID, "shift_bid", bid.ShiftBidID)
	return s.repo.ShiftBid.GetByID(ctx, bid.ShiftBidID)
}

// WithdrawBid is the bidder pulling a pending bid.
func (s *BidService) WithdrawBid(ctx context.Context, bidderID, bidID string) (*model.ShiftBid, error) {
	bid, err := s.repo.ShiftBid.GetByID(ctx, bidID)
	if err != nil {
		return nil, asNotFound(err, "bid not found")
	}
	if bid.BidderID != bidderID {
		return nil, apperrors.Unauthorized("only the bidder may withdraw")
	}

	if err := s.repo.ShiftBid.UpdateStatusIf(ctx, bidID,
		[]string{model.BidStatusPending}, model.BidStatusWithdrawn); err != nil {
		return nil, err
	}
	return s.repo.ShiftBid.GetByID(ctx, bidID)
}

// ResolveBid is the admin assigning the shift to one bidder. The claim
// only succeeds while the shift is still open and unowned, so a bid that
// lost the race fails here with a conflict instead of double-assigning.
func (s *BidService) ResolveBid(ctx context.Context, adminID, bidID string) (*model.ShiftBid, error) {
	bid, err := s.repo.ShiftBid.GetByID(ctx, bidID)
	if err != nil {
		return nil, asNotFound(err, "bid not found")
	}
	shift, err := s.repo.Shift.GetByID(ctx, bid.ShiftID)
	if err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	if err := s.approvals.Authorize(ctx, adminID, shift.StationID, bid.BidderID); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.ClaimIfUnfilled(ctx, bid.ShiftID, bid.BidderID); err != nil {
			return err
		}
		if err := tx.ShiftBid.UpdateStatusIf(ctx, bidID,
			[]string{model.BidStatusPending}, model.BidStatusAssigned); err != nil {
			return err
		}
		return tx.ShiftBid.RejectOtherPending(ctx, bid.ShiftID, bidID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift bid resolved",
		zap.String("bid_id", bidID),
		zap.String("shift_id", bid.ShiftID),
		zap.String("bidder_id", bid.BidderID))
	s.notifier.Notify(ctx, bid.BidderID, "shift_bid_assigned",
		"Open shift assigned to you",
		"Your bid was selected. The shift is now on your roster.",
		"shift_bid", bidID)

	return s.repo.ShiftBid.GetByID(ctx, bidID)
}

// ListBidsForShift is the admin view of all bids on one shift.
func (s *BidService) ListBidsForShift(ctx context.Context, shiftID string) ([]model.ShiftBid, error) {
	return s.repo.ShiftBid.ListByShift(ctx, shiftID)
}

// ListMyBids returns the user's bids across all shifts.
func (s *BidService) ListMyBids(ctx context.Context, bidderID string) ([]model.ShiftBid, error) {
	return s.repo.ShiftBid.ListByBidder(ctx, bidderID)
}
