package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChart renders with github.com/wcharczuk/go-chart.
type GoChart struct{}

// Render implements Renderer.
func (GoChart) Render(w io.Writer, l Line, f Format, size Size) error {
	if err := l.validate(); err != nil {
		return err
	}

	var rp gochart.RendererProvider
	switch f {
	case PNG:
		rp = gochart.PNG
	case SVG:
		rp = gochart.SVG
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}

	xs := make([]float64, len(l.Values))
	ticks := make([]gochart.Tick, len(l.Labels))
	for i := range l.Values {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: l.Labels[i]}
	}
	lo, hi := l.yRange()

	graph := gochart.Chart{
		Title:  l.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  l.XLabel,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  l.YLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    l.YLabel,
				XValues: xs,
				YValues: l.Values,
				Style: gochart.Style{
					StrokeColor: drawing.Color{R: 31, G: 119, B: 180, A: 255},
					StrokeWidth: 1.5,
				},
			},
		},
	}
	if len(l.Labels) > rotateAbove {
		graph.XAxis.TickStyle = gochart.Style{TextRotationDegrees: 90}
	}

	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("go-chart %s: %w", f, err)
	}
	return nil
}
