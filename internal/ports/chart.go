package ports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/randomtoy/pig-go/internal/domain"
)

// ErrUnsupportedFormat is returned for chart encodings other than png and svg.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// ChartFormat is the image encoding of a rendered curve.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

// ContentType returns the MIME type of the encoded chart.
func (f ChartFormat) ContentType() string {
	if f == ChartSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ParseChartFormat accepts "png" or "svg" (case-insensitive). Empty means png.
func ParseChartFormat(s string) (ChartFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return ChartPNG, nil
	case "svg":
		return ChartSVG, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
	}
}

// ChartRenderer draws an expected-score curve.
type ChartRenderer interface {
	Render(ctx context.Context, w io.Writer, curve domain.Curve, format ChartFormat) error
}
