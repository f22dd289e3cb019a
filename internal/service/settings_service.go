package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// SettingsService manages per-station policy switches. A station without
// a settings row runs on defaults (shift exchange enabled).
type SettingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewSettingsService(repo *repository.Repository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the station's settings, with defaults for stations that
// never saved any.
func (s *SettingsService) Get(ctx context.Context, stationID string) (*model.StationSettings, error) {
	settings, err := s.repo.StationSettings.Get(ctx, stationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.StationSettings{StationID: stationID, ShiftSwapEnabled: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Update saves the station's settings. The station must exist.
func (s *SettingsService) Update(ctx context.Context, stationID string, req *dto.UpdateStationSettingsRequest) (*model.StationSettings, error) {
	if _, err := s.repo.Station.GetByID(ctx, stationID); err != nil {
		return nil, asNotFound(err, "station not found")
	}

	settings, err := s.Get(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if req.ShiftSwapEnabled != nil {
		settings.ShiftSwapEnabled = *req.ShiftSwapEnabled
	}
	if err := s.repo.StationSettings.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("station settings updated",
		zap.String("station_id", stationID),
		zap.Bool("shift_swap_enabled", settings.ShiftSwapEnabled))
	return settings, nil
}

// RequireShiftSwapEnabled gates request creation on the station policy.
func (s *SettingsService) RequireShiftSwapEnabled(ctx context.Context, stationID string) error {
	settings, err := s.Get(ctx, stationID)
	if err != nil {
		return err
	}
	if !settings.ShiftSwapEnabled {
		return apperrors.Validation("shift exchange is disabled for this station")
	}
	return nil
}
