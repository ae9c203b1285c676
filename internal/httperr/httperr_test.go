package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKindSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Conflict("time_conflict", "taken"))

	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindValidation))
	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestUnavailableUnwrapsCause(t *testing.T) {
	err := Unavailable(context.DeadlineExceeded)

	assert.True(t, IsKind(err, KindUnavailable))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("invalid_date", "bad date"), http.StatusBadRequest, "invalid_date"},
		{"conflict", Conflict("time_conflict", "taken"), http.StatusConflict, "time_conflict"},
		{"not found", NotFound("service_not_found", "missing"), http.StatusNotFound, "service_not_found"},
		{"transition", InvalidTransition("invalid_transition", "no"), http.StatusConflict, "invalid_transition"},
		{"unavailable", Unavailable(errors.New("lock timeout")), http.StatusServiceUnavailable, "store_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			FromError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Code)

			if tc.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, RetryAfterSeconds, w.Header().Get("Retry-After"))
			}
		})
	}
}
