package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/colson89/ambulance-planning-sub001/internal/dto"
	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
)

func mustKind(t *testing.T, err error, want apperrors.Kind) {
	t.Helper()
	kind, ok := apperrors.KindOf(err)
	if !ok {
		t.Fatalf("expected a business error, got %v", err)
	}
	if kind != want {
		t.Fatalf("expected kind %v, got %v (%v)", want, kind, err)
	}
}

func TestExchangeCreateTakeover(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	req, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
		Note:             "family thing",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.Status != model.ExchangeStatusPending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if req.IsSwap() {
		t.Error("takeover must not be a swap")
	}
	if len(env.notifs.notifications) != 1 || env.notifs.notifications[0].UserID != "u2" {
		t.Error("target should have been notified")
	}
}

func TestExchangeCreateRejectsForeignShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u2", "st1", model.ShiftTypeDay, 48*time.Hour)

	_, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})
	mustKind(t, err, apperrors.KindValidation)
}

func TestExchangeCreateRejectsPastShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, -48*time.Hour)

	_, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})
	mustKind(t, err, apperrors.KindValidation)
}

func TestExchangeCreateRejectsWhenSwapDisabled(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)
	env.settings.settings["st1"] = &model.StationSettings{StationID: "st1", ShiftSwapEnabled: false}

	_, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})
	mustKind(t, err, apperrors.KindValidation)
}

func TestExchangeCreateRejectsTargetShiftNotOwnedByTarget(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("u3", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)
	env.addShift("s2", "u3", "st1", model.ShiftTypeDay, 72*time.Hour)

	targetShift := "s2"
	_, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
		TargetShiftID:    &targetShift,
	})
	mustKind(t, err, apperrors.KindValidation)
}

func TestExchangeApproveSwapSymmetry(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleSupervisor, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)
	env.addShift("s2", "u2", "st1", model.ShiftTypeNight, 72*time.Hour)
	env.addShift("s3", "u2", "st1", model.ShiftTypeDay, 96*time.Hour)

	targetShift := "s2"
	req, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
		TargetShiftID:    &targetShift,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved, err := env.exchange.Approve(context.Background(), "boss", req.ExchangeRequestID, &dto.ReviewRequest{AdminNote: "ok"})
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != model.ExchangeStatusApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}
	if owner := env.shifts.shifts["s1"].UserID; owner == nil || *owner != "u2" {
		t.Error("s1 should now belong to u2")
	}
	if owner := env.shifts.shifts["s2"].UserID; owner == nil || *owner != "u1" {
		t.Error("s2 should now belong to u1")
	}
	// No other shift may be touched.
	if owner := env.shifts.shifts["s3"].UserID; owner == nil || *owner != "u2" {
		t.Error("s3 must be untouched")
	}
}

func TestExchangeApproveTakeoverMovesOneShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleAdmin, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)
	env.addShift("s2", "u2", "st1", model.ShiftTypeDay, 72*time.Hour)

	req, _ := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})

	if _, err := env.exchange.Approve(context.Background(), "boss", req.ExchangeRequestID, &dto.ReviewRequest{}); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if owner := env.shifts.shifts["s1"].UserID; owner == nil || *owner != "u2" {
		t.Error("s1 should now belong to u2")
	}
	if owner := env.shifts.shifts["s2"].UserID; owner == nil || *owner != "u2" {
		t.Error("u2's prior shift must be unaffected")
	}
}

func TestExchangeDoubleApprovalFailsOnce(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleAdmin, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	req, _ := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})

	if _, err := env.exchange.Approve(context.Background(), "boss", req.ExchangeRequestID, &dto.ReviewRequest{}); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	_, err := env.exchange.Approve(context.Background(), "boss", req.ExchangeRequestID, &dto.ReviewRequest{})
	if !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Fatalf("second approval must hit the status guard, got %v", err)
	}
	if owner := env.shifts.shifts["s1"].UserID; owner == nil || *owner != "u2" {
		t.Error("owner must have changed exactly once")
	}
}

func TestExchangeCrossTeamAuthorization(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st2")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	// outsider has neither the request's station nor the target's.
	env.addUser("outsider", model.RoleAdmin, "st3")
	// targetBoss administers the target worker's home station only.
	env.addUser("targetBoss", model.RoleSupervisor, "st2")

	req, err := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = env.exchange.Approve(context.Background(), "outsider", req.ExchangeRequestID, &dto.ReviewRequest{})
	mustKind(t, err, apperrors.KindUnauthorized)

	if _, err := env.exchange.Approve(context.Background(), "targetBoss", req.ExchangeRequestID, &dto.ReviewRequest{}); err != nil {
		t.Fatalf("cross-team approval via the target's station must pass: %v", err)
	}
}

func TestExchangeApproveRequiresRole(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	req, _ := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})

	_, err := env.exchange.Approve(context.Background(), "u2", req.ExchangeRequestID, &dto.ReviewRequest{})
	mustKind(t, err, apperrors.KindUnauthorized)
}

func TestExchangeRejectLeavesShiftsAlone(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleSupervisor, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	req, _ := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})

	rejected, err := env.exchange.Reject(context.Background(), "boss", req.ExchangeRequestID, &dto.ReviewRequest{AdminNote: "coverage"})
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != model.ExchangeStatusRejected {
		t.Errorf("expected rejected, got %s", rejected.Status)
	}
	if owner := env.shifts.shifts["s1"].UserID; owner == nil || *owner != "u1" {
		t.Error("rejection must not move the shift")
	}
}

func TestExchangeCancelByRequesterOnly(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u1", "st1", model.ShiftTypeDay, 48*time.Hour)

	req, _ := env.exchange.Create(context.Background(), "u1", &dto.CreateExchangeRequest{
		RequesterShiftID: "s1",
		TargetUserID:     "u2",
	})

	_, err := env.exchange.Cancel(context.Background(), "u2", req.ExchangeRequestID)
	mustKind(t, err, apperrors.KindUnauthorized)

	cancelled, err := env.exchange.Cancel(context.Background(), "u1", req.ExchangeRequestID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != model.ExchangeStatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
}
