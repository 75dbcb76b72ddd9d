package timeseries

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestResampleMonthlyForwardFillsGap(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{month(2021, 1), month(2021, 3)},
		[]float64{5, -3},
	)

	r, err := ResampleMonthly(s)
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	expectedTimes := []time.Time{month(2021, 1), month(2021, 2), month(2021, 3)}
	expectedValues := []float64{5, 5, -3}
	expectedObs := []int{1, 0, 1}

	if r.Len() != len(expectedValues) {
		t.Fatalf("Expected %d buckets, got %d", len(expectedValues), r.Len())
	}
	for i := range expectedValues {
		if !r.Timestamps[i].Equal(expectedTimes[i]) {
			t.Errorf("Bucket %d: expected %s, got %s", i, expectedTimes[i], r.Timestamps[i])
		}
		if r.Values[i] != expectedValues[i] {
			t.Errorf("Bucket %d: expected %f, got %f", i, expectedValues[i], r.Values[i])
		}
		if r.Observations[i] != expectedObs[i] {
			t.Errorf("Bucket %d: expected %d observations, got %d", i, expectedObs[i], r.Observations[i])
		}
	}
	if !r.Filled(1) || r.FilledCount() != 1 {
		t.Errorf("Expected only February filled, got %d filled", r.FilledCount())
	}

	abs := r.Abs()
	for i, v := range abs.Values {
		if v != math.Abs(r.Values[i]) {
			t.Errorf("Bucket %d: expected abs %f, got %f", i, math.Abs(r.Values[i]), v)
		}
	}

	labels := r.MonthLabels(DefaultLabelLayout)
	if !reflect.DeepEqual(labels, []string{"Jan", "Feb", "Mar"}) {
		t.Errorf("Unexpected labels %v", labels)
	}
}

func TestResampleMonthlyMeanWithinBucket(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{
			time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2021, 1, 28, 12, 0, 0, 0, time.UTC),
			time.Date(2021, 2, 14, 0, 0, 0, 0, time.UTC),
		},
		[]float64{1, 4, 10},
	)

	r, err := ResampleMonthly(s)
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	expected := []float64{2.5, 10}
	if !reflect.DeepEqual(r.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, r.Values)
	}
	if r.Observations[0] != 2 {
		t.Errorf("Expected 2 observations in January, got %d", r.Observations[0])
	}
}

func TestResampleMonthlyUnsortedInput(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{month(2021, 4), month(2021, 1)},
		[]float64{7, 3},
	)

	r, err := ResampleMonthly(s)
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	expected := []float64{3, 3, 3, 7}
	if !reflect.DeepEqual(r.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, r.Values)
	}
}

func TestResampleMonthlyYearlyCollapse(t *testing.T) {
	// Year-anchored rows: everything lands in January, the rest is filled.
	s := mustSeries(t,
		[]time.Time{month(2020, 1), month(2020, 1), month(2021, 1)},
		[]float64{-2, -4, 6},
	)

	r, err := ResampleMonthly(s)
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	if r.Len() != 13 {
		t.Fatalf("Expected 13 buckets, got %d", r.Len())
	}
	for i := 0; i < 12; i++ {
		if r.Values[i] != -3 {
			t.Errorf("Bucket %d: expected -3, got %f", i, r.Values[i])
		}
	}
	if r.Values[12] != 6 {
		t.Errorf("Expected last bucket 6, got %f", r.Values[12])
	}
	if r.FilledCount() != 11 {
		t.Errorf("Expected 11 filled buckets, got %d", r.FilledCount())
	}

	labels := r.MonthLabels("")
	if labels[0] != "Jan" || labels[12] != "Jan" {
		t.Errorf("Expected repeated Jan labels, got %q and %q", labels[0], labels[12])
	}
}

func TestForwardFillNeverReachesBackward(t *testing.T) {
	nan := math.NaN()
	s := &Series{
		Timestamps: []time.Time{month(2021, 1), month(2021, 2), month(2021, 3), month(2021, 4), month(2021, 5)},
		Values:     []float64{1, nan, 9, nan, nan},
	}

	filled, err := ForwardFill(s)
	if err != nil {
		t.Fatalf("ForwardFill: %v", err)
	}

	expected := []float64{1, 1, 9, 9, 9}
	if !reflect.DeepEqual(filled.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, filled.Values)
	}
	if !math.IsNaN(s.Values[1]) {
		t.Error("ForwardFill modified the receiver")
	}
}

func TestForwardFillLeadingGap(t *testing.T) {
	s := &Series{
		Timestamps: []time.Time{month(2021, 1), month(2021, 2)},
		Values:     []float64{math.NaN(), 4},
	}

	_, err := ForwardFill(s)
	if !errors.Is(err, ErrNoLeadingObservation) {
		t.Errorf("Expected ErrNoLeadingObservation, got %v", err)
	}
}

func TestForwardFillNil(t *testing.T) {
	if _, err := ForwardFill(nil); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
}

func TestResampleMonthlySkipsNaN(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{month(2021, 1), month(2021, 2), month(2021, 2), month(2021, 3), month(2021, 4)},
		[]float64{5, 7, math.NaN(), math.NaN(), 1},
	)

	r, err := ResampleMonthly(s)
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	expected := []float64{5, 7, 7, 1}
	if !reflect.DeepEqual(r.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, r.Values)
	}
	expectedObs := []int{1, 1, 0, 1}
	if !reflect.DeepEqual(r.Observations, expectedObs) {
		t.Errorf("Expected observations %v, got %v", expectedObs, r.Observations)
	}
	if !r.Filled(2) {
		t.Error("Expected the all-NaN March bucket to be reported as filled")
	}
}

func TestResampleMonthlyRangeLeadingBucketEmpty(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{month(2021, 3), month(2021, 4)},
		[]float64{1, 2},
	)

	_, err := ResampleMonthlyRange(s, month(2021, 1), month(2021, 4))
	if !errors.Is(err, ErrNoLeadingObservation) {
		t.Errorf("Expected ErrNoLeadingObservation, got %v", err)
	}
}

func TestResampleMonthlyRangeIgnoresOutside(t *testing.T) {
	s := mustSeries(t,
		[]time.Time{month(2020, 12), month(2021, 1), month(2021, 2), month(2021, 6)},
		[]float64{100, 1, 2, 100},
	)

	r, err := ResampleMonthlyRange(s, month(2021, 1), month(2021, 3))
	if err != nil {
		t.Fatalf("ResampleMonthlyRange: %v", err)
	}

	expected := []float64{1, 2, 2}
	if !reflect.DeepEqual(r.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, r.Values)
	}
}

func TestResampleMonthlyRangeInverted(t *testing.T) {
	s := mustSeries(t, []time.Time{month(2021, 1)}, []float64{1})

	if _, err := ResampleMonthlyRange(s, month(2021, 5), month(2021, 1)); err == nil {
		t.Error("Expected error for inverted range")
	}
}

func TestResampleMonthlyEmpty(t *testing.T) {
	if _, err := ResampleMonthly(&Series{}); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
	if _, err := ResampleMonthly(nil); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries for nil, got %v", err)
	}
}

func TestResampleMonthlyDeterministic(t *testing.T) {
	build := func() *Series {
		return mustSeries(t,
			[]time.Time{month(2019, 7), month(2019, 1), month(2020, 2), month(2019, 1)},
			[]float64{0.5, -1.25, 3, 2},
		)
	}

	a, err := ResampleMonthly(build())
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}
	b, err := ResampleMonthly(build())
	if err != nil {
		t.Fatalf("ResampleMonthly: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical results for identical input")
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		a, b     time.Time
		expected int
	}{
		{month(2021, 1), month(2021, 1), 0},
		{month(2021, 1), month(2021, 3), 2},
		{month(2020, 11), month(2021, 2), 3},
		{month(2021, 3), month(2021, 1), -2},
	}

	for _, tt := range tests {
		if got := MonthsBetween(tt.a, tt.b); got != tt.expected {
			t.Errorf("MonthsBetween(%s, %s): expected %d, got %d",
				tt.a.Format("2006-01"), tt.b.Format("2006-01"), tt.expected, got)
		}
	}
}
