package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CreateNoteRequest mirrors the fields needed for create note validation.
type CreateNoteRequest struct {
	Title  string
	Body   string
	TeamID string
}

// UpdateNoteRequest mirrors the fields needed for update note validation.
// The team binding is not an updatable field and so has no place here.
type UpdateNoteRequest struct {
	Title *string
	Body  *string
}

// ValidateCreateNoteRequest validates the fields of a create note request.
func ValidateCreateNoteRequest(req CreateNoteRequest) []FieldError {
	var errs []FieldError

	errs = append(errs, validateNoteTitle(req.Title)...)

	if req.TeamID == "" {
		errs = append(errs, FieldError{Field: "team", Message: "team is required"})
	} else if _, err := uuid.Parse(req.TeamID); err != nil {
		errs = append(errs, FieldError{Field: "team", Message: "team must be a valid UUID"})
	}

	return errs
}

// ValidateUpdateNoteRequest validates the present fields of an update note request.
func ValidateUpdateNoteRequest(req UpdateNoteRequest) []FieldError {
	var errs []FieldError

	if req.Title != nil {
		errs = append(errs, validateNoteTitle(*req.Title)...)
	}

	return errs
}

func validateNoteTitle(title string) []FieldError {
	var errs []FieldError

	title = strings.TrimSpace(title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(title) > 100 {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 100 characters"})
	}

	return errs
}
