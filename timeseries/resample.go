package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoLeadingObservation is returned when the first bucket of a resampled
// or filled series has nothing to carry forward from.
var ErrNoLeadingObservation = errors.New("first bucket has no observation to fill from")

// Resampled is a calendar-month series. Timestamps are contiguous month
// starts in UTC and Values hold the mean of each bucket.
type Resampled struct {
	*Series
	Observations []int // raw observations per bucket, 0 means forward-filled
}

// Filled reports whether bucket i was forward-filled.
func (r *Resampled) Filled(i int) bool {
	return r.Observations[i] == 0
}

// FilledCount returns how many buckets were forward-filled.
func (r *Resampled) FilledCount() int {
	n := 0
	for _, c := range r.Observations {
		if c == 0 {
			n++
		}
	}
	return n
}

// MonthStart truncates t to the first instant of its calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of whole calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// ResampleMonthly buckets s into calendar months spanning its earliest and
// latest observations, averages each bucket and forward-fills empty ones.
// The input need not be sorted.
func ResampleMonthly(s *Series) (*Resampled, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	sorted := s.Sorted()
	return ResampleMonthlyRange(sorted, sorted.Start(), sorted.End())
}

// ResampleMonthlyRange is ResampleMonthly over an explicit month range.
// Observations outside [start, end] and NaN values are ignored. A range starting before the
// first observation fails with ErrNoLeadingObservation rather than inventing a
// value for the leading buckets.
func ResampleMonthlyRange(s *Series, start, end time.Time) (*Resampled, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if len(s.Timestamps) != len(s.Values) {
		return nil, errors.New("timestamps and values must have the same length")
	}

	first := MonthStart(start)
	last := MonthStart(end)
	if last.Before(first) {
		return nil, fmt.Errorf("resample range ends (%s) before it starts (%s)",
			last.Format("2006-01"), first.Format("2006-01"))
	}

	n := MonthsBetween(first, last) + 1
	sums := make([]float64, n)
	counts := make([]int, n)

	for i, ts := range s.Timestamps {
		k := MonthsBetween(first, MonthStart(ts))
		if k < 0 || k >= n || math.IsNaN(s.Values[i]) {
			continue
		}
		sums[k] += s.Values[i]
		counts[k]++
	}

	timestamps := make([]time.Time, n)
	means := make([]float64, n)
	for k := 0; k < n; k++ {
		timestamps[k] = first.AddDate(0, k, 0)
		if counts[k] == 0 {
			means[k] = math.NaN()
			continue
		}
		means[k] = sums[k] / float64(counts[k])
	}

	bucketed, err := NewWithTimestamps(timestamps, means)
	if err != nil {
		return nil, err
	}
	filled, err := ForwardFill(bucketed)
	if err != nil {
		return nil, fmt.Errorf("resample from %s: %w", first.Format("2006-01"), err)
	}

	name := s.Name
	if name == "" {
		name = "value"
	}
	filled.Name = name

	return &Resampled{
		Series:       filled,
		Observations: counts,
	}, nil
}

// ForwardFill replaces each NaN with the nearest earlier non-NaN value.
// Values are never carried backward, so a leading NaN is an error.
func ForwardFill(s *Series) (*Series, error) {
	if s == nil {
		return nil, ErrEmptySeries
	}
	result := s.Copy()
	if result.Len() == 0 {
		return result, nil
	}
	if math.IsNaN(result.Values[0]) {
		return nil, ErrNoLeadingObservation
	}

	last := result.Values[0]
	for i := 1; i < len(result.Values); i++ {
		if math.IsNaN(result.Values[i]) {
			result.Values[i] = last
			continue
		}
		last = result.Values[i]
	}
	return result, nil
}
