package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table. Code is the 8-character join
// token; it is set once at creation and never changes afterwards.
type Team struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description string
	Profile     *string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member is a user's membership in a team, joined with the user record for
// serialization.
type Member struct {
	UserID     uuid.UUID
	Username   string
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	JoinedAt   time.Time
}

// UpdateFields holds owner-updatable fields on a team record. Nil fields are
// not updated. Code is deliberately absent: it is immutable after creation.
type UpdateFields struct {
	Name        *string
	Description *string
	Profile     *string
}
