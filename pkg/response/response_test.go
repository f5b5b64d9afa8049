package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tukarin/pkg/errors"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessPaginatedComputesPageFromOffset(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, SuccessPaginated(c, []string{"a", "b"}, 45, 20, 40))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(45), data["total"])
	assert.Equal(t, float64(3), data["page"])
	assert.Equal(t, float64(20), data["pageSize"])
	assert.Equal(t, float64(3), data["totalPages"])
}

func TestSuccessPaginatedZeroLimit(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, SuccessPaginated(c, nil, 0, 0, 0))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(0), data["totalPages"])
}

func TestErrorMapsAppErrorStatus(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Error(c, apperrors.Unavailable("Chat store is unavailable", nil)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])

	errInfo := body["error"].(map[string]interface{})
	assert.Equal(t, "UNAVAILABLE", errInfo["code"])
}

func TestErrorFallsBackToInternal(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Error(c, assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	errInfo := decodeBody(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errInfo["code"])
}
