package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamnote/teamnote/internal/policy"
)

// Service holds the team directory and membership rules. All storage access
// goes through the injected Repository so tests can substitute fakes.
type Service struct {
	repo Repository
}

// NewService creates a new team Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create makes a new team owned by ownerID. A fresh join code is generated;
// if it collides with an existing one the storage layer reports the unique
// violation and generation is retried with a new code.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, name, description string, profile *string) (*Team, error) {
	for {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating join code: %w", err)
		}

		t := &Team{
			Code:        code,
			Name:        name,
			Description: description,
			Profile:     profile,
			OwnerID:     ownerID,
		}

		err = s.repo.Create(ctx, t)
		if errors.Is(err, ErrDuplicateTeamCode) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return t, nil
	}
}

// Get retrieves a team by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Team, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all teams.
func (s *Service) List(ctx context.Context) ([]Team, error) {
	return s.repo.List(ctx)
}

// Members retrieves the member set of a team.
func (s *Service) Members(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	return s.repo.ListMembers(ctx, teamID)
}

// Update mutates a team's name, description or profile. Only the owner may;
// the join code is not part of UpdateFields and cannot change.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, fields UpdateFields) (*Team, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyTeam(actorID, t.OwnerID) {
		return nil, ErrNotOwner
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete removes a team and, through the storage layer, every note bound to
// it. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModifyTeam(actorID, t.OwnerID) {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}

// Join adds the actor to the team identified by code. The owner counts as an
// implicit member, so joining one's own team reports ErrAlreadyMember. The
// explicit pre-checks give callers precise errors; the membership primary key
// backstops the race between concurrent joins by the same user.
func (s *Service) Join(ctx context.Context, code string, actorID uuid.UUID) (*Team, error) {
	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if t.OwnerID == actorID {
		return nil, ErrAlreadyMember
	}

	isMember, err := s.repo.IsMember(ctx, t.ID, actorID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.repo.AddMember(ctx, t.ID, actorID); err != nil {
		return nil, err
	}

	return t, nil
}

// Leave removes the actor from the team's member set. The owner can never
// leave their own team, regardless of the members set.
func (s *Service) Leave(ctx context.Context, teamID, actorID uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}

	if t.OwnerID == actorID {
		return ErrOwnerCannotLeave
	}

	isMember, err := s.repo.IsMember(ctx, t.ID, actorID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotAMember
	}

	return s.repo.RemoveMember(ctx, t.ID, actorID)
}
