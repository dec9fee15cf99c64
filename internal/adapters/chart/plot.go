package chart

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/randomtoy/pig-go/internal/domain"
	"github.com/randomtoy/pig-go/internal/ports"
)

const (
	Title  = "Expected Scores in Pig"
	XLabel = "Target Score"
	YLabel = "Expected Score"
)

var errEmptyCurve = errors.New("curve has no points")

// PlotRenderer draws curves as line charts with gonum/plot.
type PlotRenderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

func (r *PlotRenderer) Render(ctx context.Context, w io.Writer, curve domain.Curve, format ports.ChartFormat) error {
	if len(curve.Points) == 0 {
		return errEmptyCurve
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(curve.Points))
	for i, pt := range curve.Points {
		xys[i].X = float64(pt.Target)
		xys[i].Y = pt.Expected
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("build line: %w", err)
	}
	p.Add(line)

	// Highlight the best target.
	if best, ok := curve.Best(); ok {
		marker, err := plotter.NewScatter(plotter.XYs{{X: float64(best.Target), Y: best.Expected}})
		if err != nil {
			return fmt.Errorf("build best marker: %w", err)
		}
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		marker.GlyphStyle.Radius = vg.Points(3)
		p.Add(marker)
		p.Legend.Add(fmt.Sprintf("best: hold at %d (%.3f)", best.Target, best.Expected), marker)
	}

	wt, err := p.WriterTo(r.Width, r.Height, string(format))
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
