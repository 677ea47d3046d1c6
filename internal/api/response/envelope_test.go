package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamnote/teamnote/internal/api/response"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.Success(w, http.StatusOK, map[string]string{"hello": "world"}, "req-123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decode(t, w)
	assert.Nil(t, env["error"])
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "world", data["hello"])

	meta := env["meta"].(map[string]interface{})
	assert.Equal(t, "req-123", meta["requestId"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestSuccessList(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.SuccessList(w, http.StatusOK, []string{"a", "b"}, 2, "req-123")

	env := decode(t, w)
	meta := env["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])
}

func TestErr(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", "req-123")

	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decode(t, w)
	assert.Nil(t, env["data"])
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "NOT_FOUND", errObj["code"])
	assert.Equal(t, "Team not found", errObj["message"])
}

func TestErrWithDetails(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	details := []map[string]string{{"field": "name", "message": "name is required"}}
	response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", details, "")

	env := decode(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.NotNil(t, errObj["details"])

	// a request ID is generated when none was provided
	meta := env["meta"].(map[string]interface{})
	assert.NotEmpty(t, meta["requestId"])
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	response.NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
