package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// ShiftBidRepository is the open-shift bid data-access interface.
type ShiftBidRepository interface {
	Create(ctx context.Context, bid *model.ShiftBid) error
	GetByID(ctx context.Context, id string) (*model.ShiftBid, error)
	ListByShift(ctx context.Context, shiftID string) ([]model.ShiftBid, error)
	ListByBidder(ctx context.Context, bidderID string) ([]model.ShiftBid, error)
	HasPending(ctx context.Context, shiftID, bidderID string) (bool, error)
	UpdateStatusIf(ctx context.Context, id string, from []string, to string) error
	RejectOtherPending(ctx context.Context, shiftID, exceptBidID string) error
}

type shiftBidRepo struct {
	db *gorm.DB
}

func NewShiftBidRepo(db *gorm.DB) ShiftBidRepository {
	return &shiftBidRepo{db: db}
}

func (r *shiftBidRepo) Create(ctx context.Context, bid *model.ShiftBid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *shiftBidRepo) GetByID(ctx context.Context, id string) (*model.ShiftBid, error) {
	var bid model.ShiftBid
	err := r.db.WithContext(ctx).
		Preload("Bidder").
		Preload("Shift").
		Where("shift_bid_id = ?", id).
		First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *shiftBidRepo) ListByShift(ctx context.Context, shiftID string) ([]model.ShiftBid, error) {
	var bids []model.ShiftBid
	err := r.db.WithContext(ctx).
		Preload("Bidder").
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&bids).Error
	return bids, err
}

func (r *shiftBidRepo) ListByBidder(ctx context.Context, bidderID string) ([]model.ShiftBid, error) {
	var bids []model.ShiftBid
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Where("bidder_id = ?", bidderID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

func (r *shiftBidRepo) HasPending(ctx context.Context, shiftID, bidderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftBid{}).
		Where("shift_id = ? AND bidder_id = ? AND status = ?",
			shiftID, bidderID, model.BidStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *shiftBidRepo) UpdateStatusIf(ctx context.Context, id string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ShiftBid{}).
		Where("shift_bid_id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// RejectOtherPending closes the losing bids once a winner claims the
// shift.
func (r *shiftBidRepo) RejectOtherPending(ctx context.Context, shiftID, exceptBidID string) error {
	return r.db.WithContext(ctx).
		Model(&model.ShiftBid{}).
		Where("shift_id = ? AND shift_bid_id <> ? AND status = ?",
			shiftID, exceptBidID, model.BidStatusPending).
		Update("status", model.BidStatusRejected).Error
}
