package service

import (
	"context"

	"github.com/colson89/ambulance-planning-sub001/internal/model"
	"github.com/colson89/ambulance-planning-sub001/internal/repository"
)

// Directory resolves worker identities and station scopes for
// authorization decisions. Kept as an interface so the user store can
// live in another system later without touching the engines.
type Directory interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	HasRole(ctx context.Context, userID string, roles ...string) (bool, error)
	AccessibleStationIDs(ctx context.Context, userID string) ([]string, error)
	SameStation(ctx context.Context, userA, userB string) (bool, error)
}

type repoDirectory struct {
	users repository.UserRepository
}

// NewDirectory returns a Directory backed by the local user repository.
func NewDirectory(users repository.UserRepository) Directory {
	return &repoDirectory{users: users}
}

func (d *repoDirectory) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	return user, nil
}

func (d *repoDirectory) HasRole(ctx context.Context, userID string, roles ...string) (bool, error) {
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if user.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (d *repoDirectory) AccessibleStationIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.AccessibleStationIDs(), nil
}

func (d *repoDirectory) SameStation(ctx context.Context, userA, userB string) (bool, error) {
	a, err := d.GetUser(ctx, userA)
	if err != nil {
		return false, err
	}
	b, err := d.GetUser(ctx, userB)
	if err != nil {
		return false, err
	}
	return a.StationID == b.StationID, nil
}
