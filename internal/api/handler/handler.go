package handler

import "github.com/colson89/ambulance-planning-sub001/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth         *AuthHandler
	Shift        *ShiftHandler
	Exchange     *ExchangeHandler
	Marketplace  *MarketplaceHandler
	Bid          *BidHandler
	Coverage     *CoverageHandler
	Settings     *SettingsHandler
	Notification *NotificationHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Shift:        NewShiftHandler(svc.Shift),
		Exchange:     NewExchangeHandler(svc.Exchange),
		Marketplace:  NewMarketplaceHandler(svc.Marketplace),
		Bid:          NewBidHandler(svc.Bid),
		Coverage:     NewCoverageHandler(svc.Coverage),
		Settings:     NewSettingsHandler(svc.Settings),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
