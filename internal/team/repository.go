package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrDuplicateTeamName is returned when a team with the same name already exists.
var ErrDuplicateTeamName = errors.New("team name already exists")

// ErrDuplicateTeamCode is returned when a generated join code collides with an
// existing one. Callers retry with a fresh code.
var ErrDuplicateTeamCode = errors.New("team code already exists")

// ErrAlreadyMember is returned when a user attempts to join a team they
// already belong to.
var ErrAlreadyMember = errors.New("user is already a member")

// ErrNotAMember is returned when a user attempts to leave a team they do not
// belong to.
var ErrNotAMember = errors.New("user is not a member")

// ErrOwnerCannotLeave is returned when the owner attempts to leave their own team.
var ErrOwnerCannotLeave = errors.New("owner cannot leave their own team")

// ErrNotOwner is returned when a non-owner attempts to mutate or delete a team.
var ErrNotOwner = errors.New("user is not the team owner")

// Repository provides operations on the teams and team_members tables.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	GetByCode(ctx context.Context, code string) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}
