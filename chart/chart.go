// Package chart renders a categorical line chart of a monthly series.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
)

var (
	// ErrNoPoints is returned when a chart has nothing to draw.
	ErrNoPoints = errors.New("chart has no points")
	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown chart format")
)

// Titles used by the inflation chart.
const (
	DefaultTitle  = "Average Absolute Inflation Percentage by Month"
	DefaultXLabel = "Month"
	DefaultYLabel = "Absolute Inflation Percentage"
)

// Line is a line chart over categorical x positions. Point i is drawn at
// x = i and labeled Labels[i]; repeated labels are drawn as they are.
type Line struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

// NewLine creates a Line with the default titles.
func NewLine(labels []string, values []float64) Line {
	return Line{
		Title:  DefaultTitle,
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		Labels: labels,
		Values: values,
	}
}

func (l Line) validate() error {
	if len(l.Values) == 0 {
		return ErrNoPoints
	}
	if len(l.Labels) != len(l.Values) {
		return fmt.Errorf("chart has %d labels for %d values", len(l.Labels), len(l.Values))
	}
	return nil
}

// yRange returns the value bounds, widened when every value is equal.
func (l Line) yRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range l.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

// Format is an image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat parses a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, raw)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches a 16:9 window.
var DefaultSize = Size{Width: 1024, Height: 576}

// Renderer draws a Line.
type Renderer interface {
	Render(w io.Writer, l Line, f Format, size Size) error
}

// Renderer names accepted by NewRenderer.
const (
	RendererGonum   = "gonum"
	RendererGoChart = "gochart"
)

// NewRenderer returns the renderer registered under name.
func NewRenderer(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RendererGonum, "":
		return Gonum{}, nil
	case RendererGoChart, "go-chart":
		return GoChart{}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}
