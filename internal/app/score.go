package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/randomtoy/pig-go/internal/domain"
	"github.com/randomtoy/pig-go/internal/ports"
)

// Limits bound the work a single request may ask for.
type Limits struct {
	MaxTarget      int
	MaxCurvePoints int
}

// CurveRequest is the application-level input for curve sampling (no HTTP types).
type CurveRequest struct {
	From int
	To   int
}

// CurveResponse is the sampled curve plus its best point.
type CurveResponse struct {
	Points    []domain.Point
	Best      domain.Point
	LatencyMS int64
}

// ScoreResponse is the application-level output for a single target.
type ScoreResponse struct {
	Target    int
	Expected  float64
	Cached    bool
	LatencyMS int64
}

// ScoreService wraps the expected-score solver with caching, limits and metrics.
type ScoreService struct {
	cache    ports.ScoreCache
	renderer ports.ChartRenderer
	observer ports.SolveObserver
	limits   Limits
}

func NewScoreService(cache ports.ScoreCache, renderer ports.ChartRenderer, observer ports.SolveObserver, limits Limits) *ScoreService {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &ScoreService{
		cache:    cache,
		renderer: renderer,
		observer: observer,
		limits:   limits,
	}
}

func (s *ScoreService) ExpectedScore(ctx context.Context, target int) (ScoreResponse, error) {
	start := time.Now()
	score, cached, err := s.expectedScore(ctx, target)
	if err != nil {
		return ScoreResponse{}, err
	}
	return ScoreResponse{
		Target:    target,
		Expected:  score,
		Cached:    cached,
		LatencyMS: time.Since(start).Milliseconds(),
	}, nil
}

func (s *ScoreService) expectedScore(ctx context.Context, target int) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if err := s.checkTarget(target); err != nil {
		return 0, false, err
	}

	start := time.Now()
	if s.cache != nil {
		if score, ok := s.cache.Get(target); ok {
			s.observer.ObserveSolve(time.Since(start), true)
			return score, true, nil
		}
	}

	score, err := domain.ExpectedScore(target)
	if err != nil {
		return 0, false, fmt.Errorf("expected score: %w", err)
	}
	s.observer.ObserveSolve(time.Since(start), false)

	if s.cache != nil {
		s.cache.Add(target, score)
	}
	return score, false, nil
}

// Outcome returns the full absorption distribution for target. It bypasses
// the cache, which only stores the scalar expectation.
func (s *ScoreService) Outcome(ctx context.Context, target int) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}
	if err := s.checkTarget(target); err != nil {
		return domain.Outcome{}, err
	}

	start := time.Now()
	out, err := domain.Solve(target)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("outcome: %w", err)
	}
	s.observer.ObserveSolve(time.Since(start), false)
	return out, nil
}

// Curve samples the expected score for every target in [From, To].
func (s *ScoreService) Curve(ctx context.Context, req CurveRequest) (CurveResponse, error) {
	start := time.Now()
	curve, err := s.sample(ctx, req)
	if err != nil {
		return CurveResponse{}, err
	}
	best, _ := curve.Best()
	return CurveResponse{
		Points:    curve.Points,
		Best:      best,
		LatencyMS: time.Since(start).Milliseconds(),
	}, nil
}

// RenderCurve samples the curve and writes it to w as a chart.
func (s *ScoreService) RenderCurve(ctx context.Context, w io.Writer, req CurveRequest, format ports.ChartFormat) error {
	if s.renderer == nil {
		return fmt.Errorf("render curve: no chart renderer configured")
	}
	curve, err := s.sample(ctx, req)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(ctx, w, curve, format); err != nil {
		return fmt.Errorf("render curve: %w", err)
	}
	return nil
}

func (s *ScoreService) sample(ctx context.Context, req CurveRequest) (domain.Curve, error) {
	if req.From < 0 || req.To < req.From {
		return domain.Curve{}, fmt.Errorf("curve %d..%d: %w", req.From, req.To, domain.ErrInvalidRange)
	}
	// To-From cannot overflow once From >= 0; adding 1 could.
	if span := req.To - req.From; s.limits.MaxCurvePoints > 0 && span >= s.limits.MaxCurvePoints {
		return domain.Curve{}, fmt.Errorf("curve %d..%d, max %d points: %w", req.From, req.To, s.limits.MaxCurvePoints, domain.ErrTooManyPoints)
	}

	curve, err := domain.SampleCurve(req.From, req.To, func(target int) (float64, error) {
		score, _, err := s.expectedScore(ctx, target)
		return score, err
	})
	if err != nil {
		return domain.Curve{}, fmt.Errorf("sample curve: %w", err)
	}
	return curve, nil
}

func (s *ScoreService) checkTarget(target int) error {
	if target < 0 {
		return fmt.Errorf("target %d: %w", target, domain.ErrInvalidTarget)
	}
	if s.limits.MaxTarget > 0 && target > s.limits.MaxTarget {
		return fmt.Errorf("target %d, max %d: %w", target, s.limits.MaxTarget, domain.ErrTargetTooLarge)
	}
	return nil
}
