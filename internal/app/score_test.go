package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/pig-go/internal/app"
	"github.com/randomtoy/pig-go/internal/domain"
	"github.com/randomtoy/pig-go/internal/ports"
)

type mapCache struct {
	scores map[int]float64
	hits   int
}

func newMapCache() *mapCache { return &mapCache{scores: make(map[int]float64)} }

func (m *mapCache) Get(target int) (float64, bool) {
	v, ok := m.scores[target]
	if ok {
		m.hits++
	}
	return v, ok
}

func (m *mapCache) Add(target int, score float64) { m.scores[target] = score }

type countingObserver struct {
	cached, computed int
}

func (o *countingObserver) ObserveSolve(_ time.Duration, cached bool) {
	if cached {
		o.cached++
	} else {
		o.computed++
	}
}

type mockRenderer struct {
	got    domain.Curve
	format ports.ChartFormat
	err    error
}

func (r *mockRenderer) Render(_ context.Context, w io.Writer, curve domain.Curve, format ports.ChartFormat) error {
	r.got = curve
	r.format = format
	if r.err != nil {
		return r.err
	}
	_, err := w.Write([]byte("chart"))
	return err
}

var testLimits = app.Limits{MaxTarget: 100, MaxCurvePoints: 60}

func TestExpectedScore_Success(t *testing.T) {
	svc := app.NewScoreService(newMapCache(), nil, nil, testLimits)

	resp, err := svc.ExpectedScore(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Target)
	assert.InDelta(t, 20.0/6, resp.Expected, 1e-12)
	assert.False(t, resp.Cached)
}

func TestExpectedScore_UsesCache(t *testing.T) {
	cache := newMapCache()
	obs := &countingObserver{}
	svc := app.NewScoreService(cache, nil, obs, testLimits)

	first, err := svc.ExpectedScore(context.Background(), 20)
	require.NoError(t, err)
	second, err := svc.ExpectedScore(context.Background(), 20)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Expected, second.Expected)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, obs.computed)
	assert.Equal(t, 1, obs.cached)
}

func TestExpectedScore_InvalidTarget(t *testing.T) {
	svc := app.NewScoreService(nil, nil, nil, testLimits)

	_, err := svc.ExpectedScore(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = svc.ExpectedScore(context.Background(), 101)
	assert.ErrorIs(t, err, domain.ErrTargetTooLarge)
}

func TestExpectedScore_CanceledContext(t *testing.T) {
	svc := app.NewScoreService(nil, nil, nil, testLimits)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExpectedScore(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutcome(t *testing.T) {
	svc := app.NewScoreService(nil, nil, nil, testLimits)

	out, err := svc.Outcome(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Target)
	assert.InDelta(t, 23.0/6, out.Expected, 1e-12)
	assert.Len(t, out.Distribution, 10)

	_, err = svc.Outcome(context.Background(), 500)
	assert.ErrorIs(t, err, domain.ErrTargetTooLarge)
}

func TestCurve_Success(t *testing.T) {
	cache := newMapCache()
	svc := app.NewScoreService(cache, nil, nil, testLimits)

	resp, err := svc.Curve(context.Background(), app.CurveRequest{From: 0, To: 49})
	require.NoError(t, err)
	require.Len(t, resp.Points, 50)
	assert.Equal(t, 0, resp.Points[0].Target)
	assert.Equal(t, 49, resp.Points[49].Target)
	assert.Contains(t, []int{20, 21}, resp.Best.Target)
	assert.Len(t, cache.scores, 50)
}

func TestCurve_Limits(t *testing.T) {
	svc := app.NewScoreService(nil, nil, nil, testLimits)

	_, err := svc.Curve(context.Background(), app.CurveRequest{From: 0, To: 60})
	assert.ErrorIs(t, err, domain.ErrTooManyPoints)

	_, err = svc.Curve(context.Background(), app.CurveRequest{From: 10, To: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.Curve(context.Background(), app.CurveRequest{From: 90, To: 110})
	assert.ErrorIs(t, err, domain.ErrTargetTooLarge)
}

func TestRenderCurve(t *testing.T) {
	r := &mockRenderer{}
	svc := app.NewScoreService(nil, r, nil, testLimits)

	var buf bytes.Buffer
	err := svc.RenderCurve(context.Background(), &buf, app.CurveRequest{From: 0, To: 9}, ports.ChartSVG)
	require.NoError(t, err)
	assert.Equal(t, "chart", buf.String())
	assert.Len(t, r.got.Points, 10)
	assert.Equal(t, ports.ChartSVG, r.format)
}

func TestRenderCurve_RendererFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := app.NewScoreService(nil, &mockRenderer{err: boom}, nil, testLimits)

	err := svc.RenderCurve(context.Background(), io.Discard, app.CurveRequest{From: 0, To: 3}, ports.ChartPNG)
	assert.ErrorIs(t, err, boom)
}

func TestCurve_HugeRangeRejected(t *testing.T) {
	r := &mockRenderer{}
	svc := app.NewScoreService(nil, r, nil, testLimits)

	_, err := svc.Curve(context.Background(), app.CurveRequest{From: 0, To: math.MaxInt})
	assert.ErrorIs(t, err, domain.ErrTooManyPoints)

	err = svc.RenderCurve(context.Background(), io.Discard, app.CurveRequest{From: 0, To: math.MaxInt}, ports.ChartPNG)
	assert.ErrorIs(t, err, domain.ErrTooManyPoints)
	assert.Empty(t, r.got.Points)
}

func TestCurve_ExactlyMaxPoints(t *testing.T) {
	svc := app.NewScoreService(nil, nil, nil, testLimits)

	resp, err := svc.Curve(context.Background(), app.CurveRequest{From: 0, To: 59})
	require.NoError(t, err)
	assert.Len(t, resp.Points, 60)
}
