// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrEmptySeries is returned by operations that need at least one observation.
var ErrEmptySeries = errors.New("series has no observations")

// Series represents a time series with timestamps and values.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series, ignoring NaN values.
func (s *Series) Mean() float64 {
	sum := 0.0
	n := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Median returns the median value of the series.
func (s *Series) Median() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Start returns the earliest timestamp. The series must be sorted.
func (s *Series) Start() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// End returns the latest timestamp. The series must be sorted.
func (s *Series) End() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// Sorted returns a copy of the series ordered by timestamp.
// Observations sharing a timestamp keep their original order.
func (s *Series) Sorted() *Series {
	idx := make([]int, len(s.Values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.Timestamps[idx[a]].Before(s.Timestamps[idx[b]])
	})

	timestamps := make([]time.Time, len(idx))
	values := make([]float64, len(idx))
	for i, j := range idx {
		timestamps[i] = s.Timestamps[j]
		values[i] = s.Values[j]
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Abs returns the absolute value of every observation.
func (s *Series) Abs() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		result[i] = math.Abs(v)
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       "abs_" + s.Name,
	}
}

// MonthLabels formats every timestamp with layout, one label per observation
// in series order. Labels are not deduplicated: with the default "Jan" layout
// a series spanning several years repeats month names.
func (s *Series) MonthLabels(layout string) []string {
	if layout == "" {
		layout = DefaultLabelLayout
	}
	labels := make([]string, len(s.Timestamps))
	for i, ts := range s.Timestamps {
		labels[i] = ts.Format(layout)
	}
	return labels
}

// DefaultLabelLayout renders the abbreviated month name.
const DefaultLabelLayout = "Jan"
