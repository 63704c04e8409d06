package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error { return p.err }

func TestHealthChecker_Liveness(t *testing.T) {
	checker := NewHealthChecker(&fakePinger{})

	recorder := httptest.NewRecorder()
	checker.Liveness(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHealthChecker_ReadinessHealthy(t *testing.T) {
	checker := NewHealthChecker(&fakePinger{})

	recorder := httptest.NewRecorder()
	checker.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), StatusHealthy)
}

func TestHealthChecker_ReadinessUnhealthy(t *testing.T) {
	checker := NewHealthChecker(&fakePinger{err: errors.New("connection refused")})

	recorder := httptest.NewRecorder()
	checker.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

func TestHealthChecker_Check(t *testing.T) {
	status := NewHealthChecker(&fakePinger{}).Check(context.Background())
	require.Contains(t, status.Dependencies, "storage")
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusHealthy, status.Dependencies["storage"].Status)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("unknown"))
}
