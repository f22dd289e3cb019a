package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
)

// StationRepository is the station data-access interface.
type StationRepository interface {
	GetByID(ctx context.Context, id string) (*model.Station, error)
	List(ctx context.Context) ([]model.Station, error)
}

// StationSettingsRepository is the per-station policy data-access
// interface.
type StationSettingsRepository interface {
	Get(ctx context.Context, stationID string) (*model.StationSettings, error)
	Upsert(ctx context.Context, settings *model.StationSettings) error
}

// ── Station ──

type stationRepo struct {
	db *gorm.DB
}

func NewStationRepo(db *gorm.DB) StationRepository {
	return &stationRepo{db: db}
}

func (r *stationRepo) GetByID(ctx context.Context, id string) (*model.Station, error) {
	var station model.Station
	err := r.db.WithContext(ctx).
		Where("station_id = ?", id).
		First(&station).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func (r *stationRepo) List(ctx context.Context) ([]model.Station, error) {
	var stations []model.Station
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&stations).Error
	return stations, err
}

// ── StationSettings ──

type stationSettingsRepo struct {
	db *gorm.DB
}

func NewStationSettingsRepo(db *gorm.DB) StationSettingsRepository {
	return &stationSettingsRepo{db: db}
}

func (r *stationSettingsRepo) Get(ctx context.Context, stationID string) (*model.StationSettings, error) {
	var settings model.StationSettings
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *stationSettingsRepo) Upsert(ctx context.Context, settings *model.StationSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
