package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamnote/teamnote/internal/api/validation"
)

func TestValidateRegisterRequest_Valid(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "correct horse",
		RePassword: "correct horse",
	})

	assert.Empty(t, errs)
}

func TestValidateRegisterRequest_PasswordMismatch(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "correct horse",
		RePassword: "battery staple",
	})

	assert.Contains(t, fieldNames(errs), "rePassword")
}

func TestValidateRegisterRequest_BadEmail(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   "alice",
		Email:      "not-an-email",
		Password:   "correct horse",
		RePassword: "correct horse",
	})

	assert.Contains(t, fieldNames(errs), "email")
}

func TestValidateRegisterRequest_MultibyteFieldsCountedInRunes(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   strings.Repeat("ü", 150),
		Email:      "ulrike@example.com",
		Password:   "correct horse",
		RePassword: "correct horse",
	})
	assert.Empty(t, errs)

	errs = validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   strings.Repeat("ü", 151),
		Email:      "ulrike@example.com",
		Password:   "correct horse",
		RePassword: "correct horse",
	})
	assert.Contains(t, fieldNames(errs), "username")

	// an 8-character password is long enough no matter how it is encoded
	errs = validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   "ulrike",
		Email:      "ulrike@example.com",
		Password:   "πρόσβαση",
		RePassword: "πρόσβαση",
	})
	assert.Empty(t, errs)
}

func TestValidateRegisterRequest_ShortPassword(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "short",
		RePassword: "short",
	})

	assert.Contains(t, fieldNames(errs), "password")
}

func TestValidateLoginRequest(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validation.ValidateLoginRequest(validation.LoginRequest{Username: "alice", Password: "pw"}))

	errs := validation.ValidateLoginRequest(validation.LoginRequest{})
	names := fieldNames(errs)
	assert.Contains(t, names, "username")
	assert.Contains(t, names, "password")
}

func TestSanitize_StripsMarkup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", validation.Sanitize("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain text", validation.Sanitize("plain text"))
	assert.Equal(t, "bold", validation.Sanitize("<b>bold</b>"))
}
