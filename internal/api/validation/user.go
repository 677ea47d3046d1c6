package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// RegisterRequest mirrors the fields needed for registration validation.
type RegisterRequest struct {
	Username   string
	Email      string
	Password   string
	RePassword string
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Username string
	Password string
}

// ValidateRegisterRequest validates the fields of a registration request,
// including the password confirmation.
func ValidateRegisterRequest(req RegisterRequest) []FieldError {
	var errs []FieldError

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if utf8.RuneCountInString(username) > 150 {
		errs = append(errs, FieldError{Field: "username", Message: "username must be at most 150 characters"})
	}

	if req.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if utf8.RuneCountInString(req.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if req.Password != "" && req.Password != req.RePassword {
		errs = append(errs, FieldError{Field: "rePassword", Message: "passwords do not match"})
	}

	return errs
}

// ValidateLoginRequest validates the fields of a login request.
func ValidateLoginRequest(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}
