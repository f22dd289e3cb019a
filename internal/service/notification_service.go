package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
)

// NotificationService is the read side of the notification feed.
type NotificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewNotificationService(repo *repository.Repository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// ListMine returns the user's notifications, newest first.
func (s *NotificationService) ListMine(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]model.Notification, int64, error) {
	page := req.GetPage()
	pageSize := req.GetPageSize()
	return s.repo.Notification.ListByUser(ctx, userID, req.UnreadOnly, (page-1)*pageSize, pageSize)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := s.repo.Notification.MarkRead(ctx, notificationID, userID)
	return asNotFound(err, "notification not found")
}

// MarkAllRead marks the user's entire feed as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}
