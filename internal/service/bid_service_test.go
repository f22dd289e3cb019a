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

func TestPlaceBidOnUnfilledShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addShift("s1", "", "st1", model.ShiftTypeDay, 48*time.Hour)

	bid, err := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if bid.Status != model.BidStatusPending {
		t.Errorf("expected pending, got %s", bid.Status)
	}

	// One pending bid per bidder per shift.
	_, err = env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})
	mustKind(t, err, apperrors.KindValidation)
}

func TestPlaceBidRejectsOwnedShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "u2", "st1", model.ShiftTypeDay, 48*time.Hour)

	_, err := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})
	mustKind(t, err, apperrors.KindInvalidState)
}

func TestResolveBidAssignsShift(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleAdmin, "st1")
	env.addShift("s1", "", "st1", model.ShiftTypeNight, 48*time.Hour)

	bid, _ := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})

	resolved, err := env.bid.ResolveBid(context.Background(), "boss", bid.ShiftBidID)
	if err != nil {
		t.Fatalf("ResolveBid: %v", err)
	}
	if resolved.Status != model.BidStatusAssigned {
		t.Errorf("expected assigned, got %s", resolved.Status)
	}
	shift := env.shifts.shifts["s1"]
	if shift.UserID == nil || *shift.UserID != "u1" {
		t.Error("shift must belong to the bidder")
	}
	if shift.Status != model.ShiftStatusPlanned {
		t.Error("claimed shift must be planned")
	}
}

func TestResolveStaleBidFails(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addUser("boss", model.RoleAdmin, "st1")
	env.addShift("s1", "", "st1", model.ShiftTypeNight, 48*time.Hour)

	winner, _ := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})
	loser, _ := env.bid.PlaceBid(context.Background(), "u2", &dto.PlaceBidRequest{ShiftID: "s1"})

	if _, err := env.bid.ResolveBid(context.Background(), "boss", winner.ShiftBidID); err != nil {
		t.Fatalf("ResolveBid: %v", err)
	}

	// The sibling bid is moot once the shift has an owner.
	_, err := env.bid.ResolveBid(context.Background(), "boss", loser.ShiftBidID)
	if !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Fatalf("stale bid resolution must hit the ownership guard, got %v", err)
	}
	shift := env.shifts.shifts["s1"]
	if shift.UserID == nil || *shift.UserID != "u1" {
		t.Error("owner must not change on a stale resolution")
	}
}

func TestResolveBidRequiresStationScope(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("outsider", model.RoleAdmin, "st2")
	env.addShift("s1", "", "st1", model.ShiftTypeDay, 48*time.Hour)

	bid, _ := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})

	_, err := env.bid.ResolveBid(context.Background(), "outsider", bid.ShiftBidID)
	mustKind(t, err, apperrors.KindUnauthorized)
}

func TestResolveCrossTeamBid(t *testing.T) {
	env := newTestEnv()
	// Bidder from st2 claims an open shift at st1; their own supervisor
	// may resolve it.
	env.addUser("u1", model.RoleAmbulancier, "st2")
	env.addUser("bidderBoss", model.RoleSupervisor, "st2")
	env.addShift("s1", "", "st1", model.ShiftTypeDay, 48*time.Hour)

	bid, _ := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})

	if _, err := env.bid.ResolveBid(context.Background(), "bidderBoss", bid.ShiftBidID); err != nil {
		t.Fatalf("cross-team resolution via the bidder's station must pass: %v", err)
	}
}

func TestWithdrawBid(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1", model.RoleAmbulancier, "st1")
	env.addUser("u2", model.RoleAmbulancier, "st1")
	env.addShift("s1", "", "st1", model.ShiftTypeDay, 48*time.Hour)

	bid, _ := env.bid.PlaceBid(context.Background(), "u1", &dto.PlaceBidRequest{ShiftID: "s1"})

	_, err := env.bid.WithdrawBid(context.Background(), "u2", bid.ShiftBidID)
	mustKind(t, err, apperrors.KindUnauthorized)

	withdrawn, err := env.bid.WithdrawBid(context.Background(), "u1", bid.ShiftBidID)
	if err != nil {
		t.Fatalf("WithdrawBid: %v", err)
	}
	if withdrawn.Status != model.BidStatusWithdrawn {
		t.Errorf("expected withdrawn, got %s", withdrawn.Status)
	}
}
