package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamnote/teamnote/internal/api/validation"
)

func fieldNames(errs []validation.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func TestValidateCreateTeamRequest_Valid(t *testing.T) {
	t.Parallel()

	profile := "https://example.com/logo.png"
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:        "Alpha",
		Description: "first team",
		Profile:     &profile,
	})

	assert.Empty(t, errs)
}

func TestValidateCreateTeamRequest_MissingName(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{})

	assert.Contains(t, fieldNames(errs), "name")
}

func TestValidateCreateTeamRequest_NameTooLong(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name: strings.Repeat("a", 21),
	})

	assert.Contains(t, fieldNames(errs), "name")
}

func TestValidateCreateTeamRequest_MultibyteNameCountedInRunes(t *testing.T) {
	t.Parallel()

	// 12 characters, 23 bytes
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name: "Ομάδα Ελλάδα",
	})
	assert.Empty(t, errs)

	errs = validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name: strings.Repeat("ω", 21),
	})
	assert.Contains(t, fieldNames(errs), "name")
}

func TestValidateCreateTeamRequest_BadProfileURL(t *testing.T) {
	t.Parallel()

	profile := "not a url"
	errs := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:    "Alpha",
		Profile: &profile,
	})

	assert.Contains(t, fieldNames(errs), "profile")
}

func TestValidateUpdateTeamRequest_AbsentFieldsSkipped(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{})

	assert.Empty(t, errs)
}

func TestValidateUpdateTeamRequest_PresentNameChecked(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("b", 30)
	errs := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{Name: &name})

	assert.Contains(t, fieldNames(errs), "name")
}

func TestValidateJoinTeamRequest(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{Code: "ABCD1234"}))
	assert.Contains(t, fieldNames(validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{})), "code")
	assert.Contains(t, fieldNames(validation.ValidateJoinTeamRequest(validation.JoinTeamRequest{Code: "short"})), "code")
}
