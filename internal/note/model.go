package note

import (
	"time"

	"github.com/google/uuid"
)

// Note represents a row in the notes table. TeamID and OwnerID are set at
// creation and never change.
type Note struct {
	ID        uuid.UUID
	Title     string
	Body      string
	TeamID    uuid.UUID
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter holds optional filters for listing notes.
type ListFilter struct {
	TeamID *uuid.UUID
}

// UpdateFields holds owner-updatable fields on a note record. Nil fields are
// not updated. TeamID is deliberately absent: a note's team binding is
// write-once.
type UpdateFields struct {
	Title *string
	Body  *string
}
