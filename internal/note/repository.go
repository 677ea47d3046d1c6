package note

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoteNotFound is returned when a note record is not found.
var ErrNoteNotFound = errors.New("note not found")

// ErrNotOwner is returned when a non-owner attempts to mutate or delete a note.
var ErrNotOwner = errors.New("user is not the note owner")

// Repository provides operations on the notes table.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)
	List(ctx context.Context, filter ListFilter) ([]Note, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
