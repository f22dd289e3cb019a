package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colson89/ambulance-planning-sub001/config"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
	"github.com/colson89/ambulance-planning-sub001/pkg/jwt"
	"github.com/colson89/ambulance-planning-sub001/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth         *AuthService
	Shift        *ShiftService
	Coverage     *CoverageService
	Exchange     *ExchangeService
	Marketplace  *MarketplaceService
	Bid          *BidService
	Settings     *SettingsService
	Notification *NotificationService
}

// NewService wires the services. rdb may be nil; token blacklisting and
// event publishing then degrade to no-ops.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	directory := NewDirectory(repo.User)
	approvals := NewApprovalGateway(directory)

	var events EventPublisher
	if rdb != nil {
		events = rdb
	}
	notifier := NewNotifier(repo.Notification, events, cfg.Redis.EventChannel, logger)

	settings := NewSettingsService(repo, logger)

	return &Service{
		Auth:         NewAuthService(&cfg.Auth, repo, jwtMgr, rdb, logger),
		Shift:        NewShiftService(repo, logger),
		Coverage:     NewCoverageService(repo, logger),
		Exchange:     NewExchangeService(repo, directory, approvals, settings, notifier, logger),
		Marketplace:  NewMarketplaceService(repo, directory, approvals, settings, notifier, logger),
		Bid:          NewBidService(repo, approvals, settings, notifier, logger),
		Settings:     settings,
		Notification: NewNotificationService(repo, logger),
	}
}

// asNotFound converts a missing-record lookup into a business error; other
// errors pass through as infrastructure failures.
func asNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(msg)
	}
	return err
}
