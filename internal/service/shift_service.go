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

// ShiftService exposes the roster read paths plus the manual admin
// mutations that live outside the exchange flows.
type ShiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewShiftService(repo *repository.Repository, logger *zap.Logger) *ShiftService {
	return &ShiftService{repo: repo, logger: logger}
}

// List returns shifts for one date or one month.
func (s *ShiftService) List(ctx context.Context, req *dto.ShiftListRequest) ([]model.Shift, error) {
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperrors.Validation("invalid date")
		}
		return s.repo.Shift.ListByDate(ctx, date, req.Type, req.StationID)
	}
	if req.Month == 0 || req.Year == 0 {
		return nil, apperrors.Validation("either date or month and year are required")
	}
	return s.repo.Shift.ListByMonth(ctx, req.Month, req.Year, req.StationID)
}

// Get returns one shift.
func (s *ShiftService) Get(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	return shift, nil
}

// Reassign is the manual admin owner change. A nil user releases the
// shift back to unfilled open; assigning a user plans it.
func (s *ShiftService) Reassign(ctx context.Context, shiftID string, req *dto.ReassignShiftRequest) (*model.Shift, error) {
	if _, err := s.repo.Shift.GetByID(ctx, shiftID); err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	if req.UserID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.UserID); err != nil {
			return nil, asNotFound(err, "user not found")
		}
	}

	newStatus := model.ShiftStatusPlanned
	if req.UserID == nil {
		newStatus = model.ShiftStatusOpen
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Shift.ReassignOwner(ctx, shiftID, req.UserID); err != nil {
			return err
		}
		return tx.Shift.SetStatusIf(ctx, shiftID,
			[]string{model.ShiftStatusPlanned, model.ShiftStatusOpen}, newStatus)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift reassigned", zap.String("shift_id", shiftID))
	return s.repo.Shift.GetByID(ctx, shiftID)
}

// MarkOpen flags a planned shift as open without touching its owner.
func (s *ShiftService) MarkOpen(ctx context.Context, shiftID string) (*model.Shift, error) {
	if err := s.repo.Shift.SetStatusIf(ctx, shiftID,
		[]string{model.ShiftStatusPlanned}, model.ShiftStatusOpen); err != nil {
		return nil, err
	}
	return s.repo.Shift.GetByID(ctx, shiftID)
}

// MarkPlanned flags an open shift as planned again.
func (s *ShiftService) MarkPlanned(ctx context.Context, shiftID string) (*model.Shift, error) {
	if err := s.repo.Shift.SetStatusIf(ctx, shiftID,
		[]string{model.ShiftStatusOpen}, model.ShiftStatusPlanned); err != nil {
		return nil, err
	}
	return s.repo.Shift.GetByID(ctx, shiftID)
}
