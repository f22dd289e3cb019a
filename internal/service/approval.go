package service

import (
	"context"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

// ApprovalGateway is the single authorization chokepoint for finalizing
// exchange and marketplace requests.
type ApprovalGateway struct {
	directory Directory
}

func NewApprovalGateway(directory Directory) *ApprovalGateway {
	return &ApprovalGateway{directory: directory}
}

// Authorize checks that the approver holds an admin or supervisor role
// and has station access to the request's station. Cross-team exception:
// access to a counterparty's home station also suffices, so a supervisor
// can finalize a request pulling one of their own workers into another
// station.
func (g *ApprovalGateway) Authorize(ctx context.Context, approverID, stationID string, counterpartyIDs ...string) error {
	approver, err := g.directory.GetUser(ctx, approverID)
	if err != nil {
		return err
	}
	if approver.Role != model.RoleAdmin && approver.Role != model.RoleSupervisor {
		return apperrors.Unauthorized("approval requires an admin or supervisor role")
	}

	accessible := make(map[string]bool)
	for _, id := range approver.AccessibleStationIDs() {
		accessible[id] = true
	}
	if accessible[stationID] {
		return nil
	}

	for _, counterpartyID := range counterpartyIDs {
		if counterpartyID == "" {
			continue
		}
		counterparty, err := g.directory.GetUser(ctx, counterpartyID)
		if err != nil {
			return err
		}
		if accessible[counterparty.StationID] {
			return nil
		}
	}

	return apperrors.Unauthorized("no station access for this request")
}
