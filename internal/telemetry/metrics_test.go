package telemetry_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/pig-go/internal/telemetry"
)

func TestMetrics_ObserveSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveSolve(2*time.Millisecond, false)
	m.ObserveSolve(0, true)
	m.ObserveSolve(0, true)

	count, err := testutil.GatherAndCount(reg, "pig_solve_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per cached label value")

	hist, err := testutil.GatherAndCount(reg, "pig_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, hist)
}

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := telemetry.NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveRequest(http.MethodGet, "/v1/score", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/v1/score", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/v1/score", http.StatusBadRequest, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "pig_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := telemetry.NewMetrics(reg)
	require.NoError(t, err)

	_, err = telemetry.NewMetrics(reg)
	assert.Error(t, err)
}
