package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/randomtoy/pig-go/internal/app"
	"github.com/randomtoy/pig-go/internal/domain"
	"github.com/randomtoy/pig-go/internal/ports"
)

const (
	defaultFrom = 0
	defaultTo   = 49
)

type Handler struct {
	svc      *app.ScoreService
	gatherer prometheus.Gatherer
}

// NewHandler wires the HTTP surface. gatherer may be nil, in which case
// /metrics is not served.
func NewHandler(svc *app.ScoreService, gatherer prometheus.Gatherer) *Handler {
	return &Handler{svc: svc, gatherer: gatherer}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/score", h.Score)
	e.GET("/v1/outcome", h.Outcome)
	e.GET("/v1/curve", h.Curve)
	e.GET("/v1/curve/chart", h.Chart)
	if h.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Score(c echo.Context) error {
	target, err := domain.ParseTarget(c.QueryParam("target"))
	if err != nil {
		return mapError(c, err)
	}

	resp, err := h.svc.ExpectedScore(c.Request().Context(), target)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, ScoreResponse{
		Target:        resp.Target,
		ExpectedScore: resp.Expected,
		Meta: MetaResp{
			RequestID: requestID(c),
			Cached:    resp.Cached,
			LatencyMS: resp.LatencyMS,
		},
	})
}

func (h *Handler) Outcome(c echo.Context) error {
	target, err := domain.ParseTarget(c.QueryParam("target"))
	if err != nil {
		return mapError(c, err)
	}

	start := time.Now()
	out, err := h.svc.Outcome(c.Request().Context(), target)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, toOutcomeResponse(out, MetaResp{
		RequestID: requestID(c),
		LatencyMS: time.Since(start).Milliseconds(),
	}))
}

func (h *Handler) Curve(c echo.Context) error {
	req, err := parseCurveRequest(c)
	if err != nil {
		return mapError(c, err)
	}

	resp, err := h.svc.Curve(c.Request().Context(), req)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, CurveResponse{
		Points: resp.Points,
		Best:   resp.Best,
		Meta: MetaResp{
			RequestID: requestID(c),
			LatencyMS: resp.LatencyMS,
		},
	})
}

func (h *Handler) Chart(c echo.Context) error {
	req, err := parseCurveRequest(c)
	if err != nil {
		return mapError(c, err)
	}
	format, err := ports.ParseChartFormat(c.QueryParam("format"))
	if err != nil {
		return mapError(c, err)
	}

	// Render into the response only once sampling succeeded, so errors still
	// produce a JSON body.
	var buf bytes.Buffer
	if err := h.svc.RenderCurve(c.Request().Context(), &buf, req, format); err != nil {
		return mapError(c, err)
	}
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseCurveRequest(c echo.Context) (app.CurveRequest, error) {
	req := app.CurveRequest{From: defaultFrom, To: defaultTo}
	if raw := c.QueryParam("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return app.CurveRequest{}, fmt.Errorf("from %q: %w", raw, domain.ErrInvalidRange)
		}
		req.From = n
	}
	if raw := c.QueryParam("to"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return app.CurveRequest{}, fmt.Errorf("to %q: %w", raw, domain.ErrInvalidRange)
		}
		req.To = n
	}
	return req, nil
}

func toOutcomeResponse(out domain.Outcome, meta MetaResp) OutcomeResponse {
	space := domain.StateSpace{Target: out.Target}
	states := make([]OutcomeState, 0, domain.Faces)
	for i, p := range out.Distribution {
		if space.IsScored(i) {
			states = append(states, OutcomeState{Score: i, Probability: p})
		}
	}
	return OutcomeResponse{
		Target:           out.Target,
		Steps:            out.Steps,
		ExpectedScore:    out.Expected,
		DeathProbability: out.Death,
		Outcomes:         states,
		Meta:             meta,
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrTargetTooLarge),
		errors.Is(err, domain.ErrTooManyPoints),
		errors.Is(err, ports.ErrUnsupportedFormat):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
