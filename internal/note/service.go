package note

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamnote/teamnote/internal/policy"
	"github.com/teamnote/teamnote/internal/team"
)

// TeamDirectory is the slice of the team repository the note rules need:
// resolving a team reference before binding a note to it.
type TeamDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error)
}

// Service holds the note ownership rules. Storage access goes through the
// injected Repository and TeamDirectory so tests can substitute fakes.
type Service struct {
	repo  Repository
	teams TeamDirectory
}

// NewService creates a new note Service.
func NewService(repo Repository, teams TeamDirectory) *Service {
	return &Service{repo: repo, teams: teams}
}

// Create makes a new note bound to the given team and owner. The team is
// resolved first so a dangling reference fails the whole operation before
// anything is written; the FK constraint covers the window between the check
// and the insert.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, title, body string, teamID uuid.UUID) (*Note, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	n := &Note{
		Title:   title,
		Body:    body,
		TeamID:  teamID,
		OwnerID: ownerID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Get retrieves a note by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves notes, optionally filtered by team.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Note, error) {
	return s.repo.List(ctx, filter)
}

// Update mutates a note's title or body. Only the owner may; the team binding
// is not part of UpdateFields and cannot change.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, fields UpdateFields) (*Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModifyNote(actorID, n.OwnerID) {
		return nil, ErrNotOwner
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete removes a note. Only the owner may.
func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModifyNote(actorID, n.OwnerID) {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}
