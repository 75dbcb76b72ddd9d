package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// rotateAbove is the label count past which x tick labels are drawn vertically.
const rotateAbove = 24

// gonum draws at 96 dpi; vg lengths are in points.
const pointsPerPixel = 72.0 / 96.0

// Gonum renders with gonum.org/v1/plot.
type Gonum struct{}

// Render implements Renderer.
func (Gonum) Render(w io.Writer, l Line, f Format, size Size) error {
	if err := l.validate(); err != nil {
		return err
	}
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.XLabel
	p.Y.Label.Text = l.YLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(l.Values))
	for i, v := range l.Values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("gonum line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1.5)
	p.Add(line)

	p.NominalX(l.Labels...)
	if len(l.Labels) > rotateAbove {
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
	lo, hi := l.yRange()
	p.Y.Min, p.Y.Max = lo, hi

	wt, err := p.WriterTo(
		vg.Points(float64(size.Width)*pointsPerPixel),
		vg.Points(float64(size.Height)*pointsPerPixel),
		string(f),
	)
	if err != nil {
		return fmt.Errorf("gonum %s canvas: %w", f, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("gonum %s write: %w", f, err)
	}
	return nil
}
