package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// OpenSwapRequestRepository is the marketplace listing data-access
// interface.
type OpenSwapRequestRepository interface {
	Create(ctx context.Context, req *model.OpenSwapRequest) error
	GetByID(ctx context.Context, id string) (*model.OpenSwapRequest, error)
	HasActiveForShift(ctx context.Context, shiftID string) (bool, error)
	ListOpen(ctx context.Context, stationID string) ([]model.OpenSwapRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.OpenSwapRequest, error)
	ListPendingApproval(ctx context.Context, stationID string) ([]model.OpenSwapRequest, error)
	UpdateStatusIf(ctx context.Context, id string, from []string, to string) error
	Finalize(ctx context.Context, id string, from []string, to, approverID, adminNote string) error
}

type openSwapRequestRepo struct {
	db *gorm.DB
}

func NewOpenSwapRequestRepo(db *gorm.DB) OpenSwapRequestRepository {
	return &openSwapRequestRepo{db: db}
}

func (r *openSwapRequestRepo) Create(ctx context.Context, req *model.OpenSwapRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *openSwapRequestRepo) GetByID(ctx context.Context, id string) (*model.OpenSwapRequest, error) {
	var req model.OpenSwapRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").Preload("Shift.User").
		Preload("Offers").
		Preload("Offers.Offerer").
		Preload("Offers.OffererShift").
		Where("open_swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// HasActiveForShift reports whether a non-terminal listing already exists
// for the shift. The partial unique index backs this up inside the
// creation transaction.
func (r *openSwapRequestRepo) HasActiveForShift(ctx context.Context, shiftID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OpenSwapRequest{}).
		Where("shift_id = ? AND status IN ?", shiftID,
			[]string{model.OpenSwapStatusOpen, model.OpenSwapStatusOfferSelected}).
		Count(&count).Error
	return count > 0, err
}

func (r *openSwapRequestRepo) ListOpen(ctx context.Context, stationID string) ([]model.OpenSwapRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").
		Where("status = ?", model.OpenSwapStatusOpen)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	var reqs []model.OpenSwapRequest
	err := q.Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *openSwapRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.OpenSwapRequest, error) {
	var reqs []model.OpenSwapRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Offers").
		Preload("Offers.Offerer").
		Preload("Offers.OffererShift").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *openSwapRequestRepo) ListPendingApproval(ctx context.Context, stationID string) ([]model.OpenSwapRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Shift").
		Preload("Offers").
		Preload("Offers.Offerer").
		Preload("Offers.OffererShift").
		Where("status = ?", model.OpenSwapStatusOfferSelected)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	var reqs []model.OpenSwapRequest
	err := q.Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *openSwapRequestRepo) UpdateStatusIf(ctx context.Context, id string, from []string, to string) error {
	updates := map[string]interface{}{"status": to}
	if to != model.OpenSwapStatusOpen {
		updates["is_open"] = false
	}
	result := r.db.WithContext(ctx).
		Model(&model.OpenSwapRequest{}).
		Where("open_swap_request_id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *openSwapRequestRepo) Finalize(ctx context.Context, id string, from []string, to, approverID, adminNote string) error {
	result := r.db.WithContext(ctx).
		Model(&model.OpenSwapRequest{}).
		Where("open_swap_request_id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":      to,
			"is_open":     false,
			"approved_by": approverID,
			"admin_note":  adminNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}
