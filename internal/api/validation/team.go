package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name        string
	Description string
	Profile     *string
}

// UpdateTeamRequest mirrors the fields needed for update team validation.
// Nil fields are absent from the payload.
type UpdateTeamRequest struct {
	Name        *string
	Description *string
	Profile     *string
}

// JoinTeamRequest mirrors the fields needed for join validation.
type JoinTeamRequest struct {
	Code string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []FieldError {
	var errs []FieldError

	errs = append(errs, validateTeamName(req.Name)...)

	if req.Profile != nil {
		errs = append(errs, validateProfile(*req.Profile)...)
	}

	return errs
}

// ValidateUpdateTeamRequest validates the present fields of an update team request.
func ValidateUpdateTeamRequest(req UpdateTeamRequest) []FieldError {
	var errs []FieldError

	if req.Name != nil {
		errs = append(errs, validateTeamName(*req.Name)...)
	}
	if req.Profile != nil {
		errs = append(errs, validateProfile(*req.Profile)...)
	}

	return errs
}

// ValidateJoinTeamRequest validates the fields of a join request.
func ValidateJoinTeamRequest(req JoinTeamRequest) []FieldError {
	var errs []FieldError

	code := strings.TrimSpace(req.Code)
	if code == "" {
		errs = append(errs, FieldError{Field: "code", Message: "code is required"})
	} else if len(code) != 8 {
		errs = append(errs, FieldError{Field: "code", Message: "code must be exactly 8 characters"})
	}

	return errs
}

func validateTeamName(name string) []FieldError {
	var errs []FieldError

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if utf8.RuneCountInString(name) > 20 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 20 characters"})
	}

	return errs
}

func validateProfile(profile string) []FieldError {
	if profile == "" {
		return nil
	}

	u, err := url.Parse(profile)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []FieldError{{Field: "profile", Message: "profile must be a valid URL"}}
	}

	return nil
}
