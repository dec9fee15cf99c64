package http

import "github.com/randomtoy/pig-go/internal/domain"

// ScoreResponse is the JSON shape returned by GET /v1/score.
type ScoreResponse struct {
	Target        int      `json:"target"`
	ExpectedScore float64  `json:"expected_score"`
	Meta          MetaResp `json:"meta"`
}

// OutcomeResponse is the JSON shape returned by GET /v1/outcome.
type OutcomeResponse struct {
	Target           int            `json:"target"`
	Steps            int            `json:"steps"`
	ExpectedScore    float64        `json:"expected_score"`
	DeathProbability float64        `json:"death_probability"`
	Outcomes         []OutcomeState `json:"outcomes"`
	Meta             MetaResp       `json:"meta"`
}

// OutcomeState is one scored terminal state.
type OutcomeState struct {
	Score       int     `json:"score"`
	Probability float64 `json:"probability"`
}

// CurveResponse is the JSON shape returned by GET /v1/curve.
type CurveResponse struct {
	Points []domain.Point `json:"points"`
	Best   domain.Point   `json:"best"`
	Meta   MetaResp       `json:"meta"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	Cached    bool   `json:"cached,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
