// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() Checker { return pingFunc(func(context.Context) error { return nil }) }

func failing() Checker {
	return pingFunc(func(context.Context) error { return errors.New("down") })
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   map[string]Checker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all healthy",
			checkers:   map[string]Checker{"database": healthy(), "redis": healthy()},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "redis down",
			checkers:   map[string]Checker{"database": healthy(), "redis": failing()},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
		{
			name:       "unconfigured",
			checkers:   map[string]Checker{"database": nil},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.checkers)
			rec := httptest.NewRecorder()

			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
			assert.Len(t, body.Checks, len(tt.checkers))
		})
	}
}

func TestShutdownFlipsProbes(t *testing.T) {
	h := NewHandler(map[string]Checker{"database": healthy()})
	h.SetShutdown(true)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
