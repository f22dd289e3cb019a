package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// SwapOfferRepository is the marketplace offer data-access interface.
type SwapOfferRepository interface {
	Create(ctx context.Context, offer *model.SwapOffer) error
	GetByID(ctx context.Context, id string) (*model.SwapOffer, error)
	ListByRequest(ctx context.Context, requestID string) ([]model.SwapOffer, error)
	ListByOfferer(ctx context.Context, offererID string) ([]model.SwapOffer, error)
	HasDuplicate(ctx context.Context, requestID, offererID string, offererShiftID *string) (bool, error)
	UpdateStatusIf(ctx context.Context, id string, from []string, to string) error
	RejectOtherPending(ctx context.Context, requestID, exceptOfferID string) error
	WithdrawPendingByOfferer(ctx context.Context, requestID, offererID, exceptOfferID string) error
	GetAcceptedByRequest(ctx context.Context, requestID string) (*model.SwapOffer, error)
}

type swapOfferRepo struct {
	db *gorm.DB
}

func NewSwapOfferRepo(db *gorm.DB) SwapOfferRepository {
	return &swapOfferRepo{db: db}
}

func (r *swapOfferRepo) Create(ctx context.Context, offer *model.SwapOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *swapOfferRepo) GetByID(ctx context.Context, id string) (*model.SwapOffer, error) {
	var offer model.SwapOffer
	err := r.db.WithContext(ctx).
		Preload("Offerer").
		Preload("OffererShift").
		Where("swap_offer_id = ?", id).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *swapOfferRepo) ListByRequest(ctx context.Context, requestID string) ([]model.SwapOffer, error) {
	var offers []model.SwapOffer
	err := r.db.WithContext(ctx).
		Preload("Offerer").
		Preload("OffererShift").
		Where("open_swap_request_id = ?", requestID).
		Order("created_at ASC").
		Find(&offers).Error
	return offers, err
}

func (r *swapOfferRepo) ListByOfferer(ctx context.Context, offererID string) ([]model.SwapOffer, error) {
	var offers []model.SwapOffer
	err := r.db.WithContext(ctx).
		Preload("OffererShift").
		Where("offerer_id = ?", offererID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

// HasDuplicate reports whether the offerer already has a live offer with
// the same counter-shift on this request. A NULL counter-shift only
// collides with another NULL one.
func (r *swapOfferRepo) HasDuplicate(ctx context.Context, requestID, offererID string, offererShiftID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.SwapOffer{}).
		Where("open_swap_request_id = ? AND offerer_id = ? AND status = ?",
			requestID, offererID, model.OfferStatusPending)
	if offererShiftID == nil {
		q = q.Where("offerer_shift_id IS NULL")
	} else {
		q = q.Where("offerer_shift_id = ?", *offererShiftID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *swapOfferRepo) UpdateStatusIf(ctx context.Context, id string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&model.SwapOffer{}).
		Where("swap_offer_id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// RejectOtherPending closes every pending offer on the request except the
// selected one. Zero rows affected is fine here, the selected offer may
// have been the only one.
func (r *swapOfferRepo) RejectOtherPending(ctx context.Context, requestID, exceptOfferID string) error {
	return r.db.WithContext(ctx).
		Model(&model.SwapOffer{}).
		Where("open_swap_request_id = ? AND swap_offer_id <> ? AND status = ?",
			requestID, exceptOfferID, model.OfferStatusPending).
		Update("status", model.OfferStatusRejected).Error
}

// WithdrawPendingByOfferer retires the accepted offerer's remaining
// pending offers on the same request.
func (r *swapOfferRepo) WithdrawPendingByOfferer(ctx context.Context, requestID, offererID, exceptOfferID string) error {
	return r.db.WithContext(ctx).
		Model(&model.SwapOffer{}).
		Where("open_swap_request_id = ? AND offerer_id = ? AND swap_offer_id <> ? AND status = ?",
			requestID, offererID, exceptOfferID, model.OfferStatusPending).
		Update("status", model.OfferStatusWithdrawn).Error
}

func (r *swapOfferRepo) GetAcceptedByRequest(ctx context.Context, requestID string) (*model.SwapOffer, error) {
	var offer model.SwapOffer
	err := r.db.WithContext(ctx).
		Preload("Offerer").
		Preload("OffererShift").
		Where("open_swap_request_id = ? AND status = ?", requestID, model.OfferStatusAccepted).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}
