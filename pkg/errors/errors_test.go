package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCodeAndStatus(t *testing.T) {
	cause := fmt.Errorf("rpc error")

	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Chat", cause), "NOT_FOUND", http.StatusNotFound},
		{BadRequest("bad input", cause), "BAD_REQUEST", http.StatusBadRequest},
		{Unauthorized("no token", cause), "UNAUTHORIZED", http.StatusUnauthorized},
		{Forbidden("not yours", cause), "FORBIDDEN", http.StatusForbidden},
		{Conflict("already reviewed"), "CONFLICT", http.StatusConflict},
		{Unavailable("Chat store is unavailable", cause), "UNAVAILABLE", http.StatusServiceUnavailable},
		{Internal("boom", cause), "INTERNAL_ERROR", http.StatusInternalServerError},
		{TooManyRequests("slow down", nil), "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.Status)
		assert.True(t, Is(tc.err, tc.code))
	}
}

func TestUnavailableWrapsCause(t *testing.T) {
	cause := fmt.Errorf("firestore: transient outage")
	err := Unavailable("Chat store is unavailable", cause)

	require.ErrorContains(t, err, "UNAVAILABLE")
	assert.Equal(t, cause, err.Unwrap())
	assert.False(t, Is(err, "INTERNAL_ERROR"))
}

func TestIsRejectsForeignErrors(t *testing.T) {
	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))
	assert.False(t, Is(nil, "NOT_FOUND"))
}
