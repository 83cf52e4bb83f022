// Package render draws chart specs to PNG with gonum/plot.
//
// The chart builder stays rendering-agnostic; this package is the one
// collaborator that knows about pixels. Callers that bring their own
// renderer can ignore it entirely.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/huzzy12/data-analysis-tool/chart"
)

// ErrRender is returned when drawing fails.
var ErrRender = errors.New("render failed")

// PNG draws a chart spec to PNG bytes.
func PNG(spec *chart.Spec) ([]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", ErrRender)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case chart.Bar, chart.Histogram:
		err = drawBars(p, spec)
	case chart.Line:
		err = drawLine(p, spec)
	case chart.Scatter:
		err = drawScatter(p, spec)
	case chart.Box:
		err = drawBox(p, spec)
	case chart.CorrelationMatrix:
		err = drawHeatMap(p, spec)
	default:
		err = fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func drawBars(p *plot.Plot, spec *chart.Spec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("no series")
	}
	points := spec.Series[0].Points

	values := make(plotter.Values, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		values[i] = pt.Y
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = seriesColor(spec, 0)
	p.Add(bars)
	p.NominalX(labels...)
	return nil
}

func drawLine(p *plot.Plot, spec *chart.Spec) error {
	xys, err := seriesXYs(spec)
	if err != nil {
		return err
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = seriesColor(spec, 0)
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	return nil
}

func drawScatter(p *plot.Plot, spec *chart.Spec) error {
	xys, err := seriesXYs(spec)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.Color = seriesColor(spec, 0)
	p.Add(s)
	return nil
}

func drawBox(p *plot.Plot, spec *chart.Spec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("no series")
	}
	values := make(plotter.Values, len(spec.Series[0].Points))
	for i, pt := range spec.Series[0].Points {
		values[i] = pt.Y
	}
	box, err := plotter.NewBoxPlot(vg.Points(40), 0, values)
	if err != nil {
		return err
	}
	p.Add(box)
	p.NominalX(spec.XLabel)
	return nil
}

func drawHeatMap(p *plot.Plot, spec *chart.Spec) error {
	if len(spec.Matrix) == 0 {
		return fmt.Errorf("empty matrix")
	}
	grid := matrixGrid{matrix: spec.Matrix}
	pal := moreland.SmoothBlueRed().Palette(64)
	hm := plotter.NewHeatMap(grid, pal)
	p.Add(hm)

	ticks := make([]plot.Tick, len(spec.Labels))
	for i, label := range spec.Labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return nil
}

// matrixGrid adapts a correlation matrix to plotter.GridXYZ.
// Row 0 is drawn at the bottom.
type matrixGrid struct {
	matrix [][]float64
}

func (g matrixGrid) Dims() (int, int)   { return len(g.matrix), len(g.matrix) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 { return g.matrix[r][c] }

func seriesXYs(spec *chart.Spec) (plotter.XYs, error) {
	if len(spec.Series) == 0 {
		return nil, fmt.Errorf("no series")
	}
	points := spec.Series[0].Points
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys, nil
}

// seriesColor resolves a series palette entry, falling back to a default.
func seriesColor(spec *chart.Spec, i int) color.Color {
	if i < len(spec.Colors) {
		if c, ok := parseHexColor(spec.Colors[i]); ok {
			return c
		}
	}
	return color.RGBA{R: 79, G: 70, B: 229, A: 255}
}

func parseHexColor(s string) (color.Color, bool) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}
