package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// ShiftRepository is the shift data-access interface. Owner mutations run
// only from the approval/resolution transactions in the service layer.
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListByDate(ctx context.Context, date time.Time, shiftType, stationID string) ([]model.Shift, error)
	ListByMonth(ctx context.Context, month, year int, stationID string) ([]model.Shift, error)
	ReassignOwner(ctx context.Context, shiftID string, newOwnerID *string) error
	SetStatusIf(ctx context.Context, shiftID string, from []string, to string) error
	ClaimIfUnfilled(ctx context.Context, shiftID, ownerID string) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) ListByDate(ctx context.Context, date time.Time, shiftType, stationID string) ([]model.Shift, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("date = ?", date.Format("2006-01-02"))
	if shiftType != "" {
		q = q.Where("type = ?", shiftType)
	}
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	var shifts []model.Shift
	err := q.Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByMonth(ctx context.Context, month, year int, stationID string) ([]model.Shift, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	q := r.db.WithContext(ctx).
		Preload("User").
		Where("date >= ? AND date < ?", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	var shifts []model.Shift
	err := q.Order("date ASC, start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ReassignOwner(ctx context.Context, shiftID string, newOwnerID *string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ?", shiftID).
		Update("user_id", newOwnerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatusIf flips the shift status only when it currently holds one of
// the expected values. Zero rows affected means a concurrent transition
// won.
func (r *shiftRepo) SetStatusIf(ctx context.Context, shiftID string, from []string, to string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ? AND status IN ?", shiftID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// ClaimIfUnfilled assigns an owner only while the shift is still open and
// unowned. This is the check-and-set that makes stale bids moot.
func (r *shiftRepo) ClaimIfUnfilled(ctx context.Context, shiftID, ownerID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("shift_id = ? AND status = ? AND user_id IS NULL", shiftID, model.ShiftStatusOpen).
		Updates(map[string]interface{}{
			"user_id": ownerID,
			"status":  model.ShiftStatusPlanned,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}
