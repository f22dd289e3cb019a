package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// ExchangeRequestRepository is the direct-exchange data-access interface.
type ExchangeRequestRepository interface {
	Create(ctx context.Context, req *model.ExchangeRequest) error
	GetByID(ctx context.Context, id string) (*model.ExchangeRequest, error)
	ListByParticipant(ctx context.Context, userID string) ([]model.ExchangeRequest, error)
	ListPending(ctx context.Context, stationID string) ([]model.ExchangeRequest, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.ExchangeRequest, int64, error)
	UpdateStatusIf(ctx context.Context, id string, from []string, to string) error
	Finalize(ctx context.Context, id string, from []string, to, approverID, adminNote string) error
}

type exchangeRequestRepo struct {
	db *gorm.DB
}

func NewExchangeRequestRepo(db *gorm.DB) ExchangeRequestRepository {
	return &exchangeRequestRepo{db: db}
}

func (r *exchangeRequestRepo) Create(ctx context.Context, req *model.ExchangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *exchangeRequestRepo) GetByID(ctx context.Context, id string) (*model.ExchangeRequest, error) {
	var req model.ExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("RequesterShift").
		Preload("TargetUser").
		Preload("TargetShift").
		Where("exchange_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *exchangeRequestRepo) ListByParticipant(ctx context.Context, userID string) ([]model.ExchangeRequest, error) {
	var reqs []model.ExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("RequesterShift").
		Preload("TargetUser").
		Preload("TargetShift").
		Where("requester_id = ? OR target_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *exchangeRequestRepo) ListPending(ctx context.Context, stationID string) ([]model.ExchangeRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("RequesterShift").
		Preload("TargetUser").
		Preload("TargetShift").
		Where("status = ?", model.ExchangeStatusPending)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	var reqs []model.ExchangeRequest
	err := q.Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *exchangeRequestRepo) ListAll(ctx context.Context, offset, limit int) ([]model.ExchangeRequest, int64, error) {
	var reqs []model.ExchangeRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ExchangeRequest{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Requester").
		Preload("RequesterShift").
		Preload("TargetUser").
		Preload("TargetShift").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, total, err
}

// UpdateStatusIf transitions the status only from one of the expected
// values. Zero rows affected means a concurrent transition won the race.
func (r *exchangeRequestRepo) UpdateStatusIf(ctx context.Context, id string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExchangeRequest{}).
		Where("exchange_request_id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// Finalize is UpdateStatusIf plus the approver fields, in one statement.
func (r *exchangeRequestRepo) Finalize(ctx context.Context, id string, from []string, to, approverID, adminNote string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExchangeRequest{}).
		Where("exchange_request_id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":      to,
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
