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

// ExchangeService runs the direct transfer/swap state machine:
// pending -> approved | rejected | cancelled.
type ExchangeService struct {
	repo      *repository.Repository
	directory Directory
	approvals *ApprovalGateway
	settings  *SettingsService
	notifier  *Notifier
	logger    *zap.Logger
}

func NewExchangeService(repo *repository.Repository, directory Directory, approvals *ApprovalGateway, settings *SettingsService, notifier *Notifier, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{
		repo:      repo,
		directory: directory,
		approvals: approvals,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create opens a pending request aimed at a named colleague. Omitting the
// target shift makes it a pure takeover.
func (s *ExchangeService) Create(ctx context.Context, requesterID string, req *dto.CreateExchangeRequest) (*model.ExchangeRequest, error) {
	shift, err := s.repo.Shift.GetByID(ctx, req.RequesterShiftID)
	if err != nil {
		return nil, asNotFound(err, "shift not found")
	}
	if !shift.OwnedBy(requesterID) {
		return nil, apperrors.Validation("shift is not assigned to you")
	}
	if !shift.StartTime.After(time.Now()) {
		return nil, apperrors.Validation("shift must be in the future")
	}
	if err := s.settings.RequireShiftSwapEnabled(ctx, shift.StationID); err != nil {
		return nil, err
	}

	if req.TargetUserID == requesterID {
		return nil, apperrors.Validation("target must be a different worker")
	}
	if _, err := s.directory.GetUser(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	if req.TargetShiftID != nil {
		targetShift, err := s.repo.Shift.GetByID(ctx, *req.TargetShiftID)
		if err != nil {
			return nil, asNotFound(err, "target shift not found")
		}
		if !targetShift.OwnedBy(req.TargetUserID) {
			return nil, apperrors.Validation("target shift is not assigned to the target worker")
		}
		if !targetShift.StartTime.After(time.Now()) {
			return nil, apperrors.Validation("target shift must be in the future")
		}
		if targetShift.StationID != shift.StationID {
			return nil, apperrors.Validation("target shift belongs to a different station")
		}
	}

	exchange := &model.ExchangeRequest{
		RequesterID:      requesterID,
		RequesterShiftID: req.RequesterShiftID,
		TargetUserID:     req.TargetUserID,
		TargetShiftID:    req.TargetShiftID,
		StationID:        shift.StationID,
		RequesterNote:    req.Note,
		Status:           model.ExchangeStatusPending,
	}
	if err := s.repo.ExchangeRequest.Create(ctx, exchange); err != nil {
		return nil, err
	}

	s.logger.Info("exchange request created",
		zap.String("request_id", exchange.ExchangeRequestID),
		zap.String("requester_id", requesterID),
		zap.Bool("swap", exchange.IsSwap()))
	s.notifier.Notify(ctx, req.TargetUserID, "exchange_request_created",
		"Shift exchange requested",
		"A colleague asked you to take over or swap a shift.",
		"exchange_request", exchange.ExchangeRequestID)

	return s.repo.ExchangeRequest.GetByID(ctx, exchange.ExchangeRequestID)
}

// Approve finalizes a pending request and moves the shift owner(s). The
// status check-and-set and the ownership mutations share one transaction,
// so a racing second approval fails instead of double-applying.
func (s *ExchangeService) Approve(ctx context.Context, approverID, requestID string, req *dto.ReviewRequest) (*model.ExchangeRequest, error) {
	exchange, err := s.repo.ExchangeRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "exchange request not found")
	}
	if err := s.approvals.Authorize(ctx, approverID, exchange.StationID, exchange.TargetUserID); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.ExchangeRequest.Finalize(ctx, requestID,
			[]string{model.ExchangeStatusPending},
			model.ExchangeStatusApproved, approverID, req.AdminNote); err != nil {
			return err
		}
		if err := tx.Shift.ReassignOwner(ctx, exchange.RequesterShiftID, &exchange.TargetUserID); err != nil {
			return err
		}
		if exchange.IsSwap() {
			return tx.Shift.ReassignOwner(ctx, *exchange.TargetShiftID, &exchange.RequesterID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("exchange request approved",
		zap.String("request_id", requestID),
		zap.String("approver_id", approverID))
	s.notifier.Notify(ctx, exchange.RequesterID, "exchange_request_approved",
		"Shift exchange approved",
		"Your shift exchange request was approved.",
		"exchange_request", requestID)
	s.notifier.Notify(ctx, exchange.TargetUserID, "exchange_request_approved",
		"Shift exchange approved",
		"A shift exchange involving you was approved.",
		"exchange_request", requestID)

	return s.repo.ExchangeRequest.GetByID(ctx, requestID)
}

// Reject finalizes a pending request without touching any shift.
func (s *ExchangeService) Reject(ctx context.Context, approverID, requestID string, req *dto.ReviewRequest) (*model.ExchangeRequest, error) {
	exchange, err := s.repo.ExchangeRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "exchange request not found")
	}
	if err := s.approvals.Authorize(ctx, approverID, exchange.StationID, exchange.TargetUserID); err != nil {
		return nil, err
	}

	if err := s.repo.ExchangeRequest.Finalize(ctx, requestID,
		[]string{model.ExchangeStatusPending},
		model.ExchangeStatusRejected, approverID, req.AdminNote); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, exchange.RequesterID, "exchange_request_rejected",
		"Shift exchange rejected",
		"Your shift exchange request was rejected.",
		"exchange_request", requestID)

	return s.repo.ExchangeRequest.GetByID(ctx, requestID)
}

// Cancel is the requester-initiated withdrawal while pending.
func (s *ExchangeService) Cancel(ctx context.Context, requesterID, requestID string) (*model.ExchangeRequest, error) {
	exchange, err := s.repo.ExchangeRequest.GetByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err, "exchange request not found")
	}
	if exchange.RequesterID != requesterID {
		return nil, apperrors.Unauthorized("only the requester may cancel")
	}

	if err := s.repo.ExchangeRequest.UpdateStatusIf(ctx, requestID,
		[]string{model.ExchangeStatusPending},
		model.ExchangeStatusCancelled); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, exchange.TargetUserID, "exchange_request_cancelled",
		"Shift exchange cancelled",
		"A shift exchange request aimed at you was withdrawn.",
		"exchange_request", requestID)

	return s.repo.ExchangeRequest.GetByID(ctx, requestID)
}

// ListMine returns the requests the user is a party to.
func (s *ExchangeService) ListMine(ctx context.Context, userID string) ([]model.ExchangeRequest, error) {
	return s.repo.ExchangeRequest.ListByParticipant(ctx, userID)
}

// ListPendingForApprover returns pending requests in every station the
// approver can administer.
func (s *ExchangeService) ListPendingForApprover(ctx context.Context, approverID string) ([]model.ExchangeRequest, error) {
	ok, err := s.directory.HasRole(ctx, approverID, model.RoleAdmin, model.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Unauthorized("approval queue requires an admin or supervisor role")
	}

	stationIDs, err := s.directory.AccessibleStationIDs(ctx, approverID)
	if err != nil {
		return nil, err
	}

	var out []model.ExchangeRequest
	for _, stationID := range stationIDs {
		reqs, err := s.repo.ExchangeRequest.ListPending(ctx, stationID)
		if err != nil {
			return nil, err
		}
		out = append(out, reqs...)
	}
	return out, nil
}

// ListAll is the paginated admin overview.
func (s *ExchangeService) ListAll(ctx context.Context, page, pageSize int) ([]model.ExchangeRequest, int64, error) {
	return s.repo.ExchangeRequest.ListAll(ctx, (page-1)*pageSize, pageSize)
}
