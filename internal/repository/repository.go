package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	db *gorm.DB

	User            UserRepository
	Station         StationRepository
	StationSettings StationSettingsRepository
	Shift           ShiftRepository
	ExchangeRequest ExchangeRequestRepository
	OpenSwapRequest OpenSwapRequestRepository
	SwapOffer       SwapOfferRepository
	ShiftBid        ShiftBidRepository
	Notification    NotificationRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		User:            NewUserRepo(db),
		Station:         NewStationRepo(db),
		StationSettings: NewStationSettingsRepo(db),
		Shift:           NewShiftRepo(db),
		ExchangeRequest: NewExchangeRequestRepo(db),
		OpenSwapRequest: NewOpenSwapRequestRepo(db),
		SwapOffer:       NewSwapOfferRepo(db),
		ShiftBid:        NewShiftBidRepo(db),
		Notification:    NewNotificationRepo(db),
	}
}

// Transaction runs fn inside one database transaction; every repository
// call made through the passed aggregate shares it. Aggregates assembled
// without a db (unit tests) run fn inline.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
