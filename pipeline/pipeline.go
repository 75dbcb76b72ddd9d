// Package pipeline runs the fetch, normalize, resample and present stages
// that turn a BLS time.series document into a monthly absolute-value chart.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sartorproj/cpiplot/chart"
	"github.com/sartorproj/cpiplot/timeseries"
)

// Fetcher retrieves a document body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures Build and Run.
type Options struct {
	Table       *timeseries.TableOptions
	Granularity timeseries.Granularity
	LabelLayout string
	Logger      *slog.Logger
}

// Result holds every stage's output for one run.
type Result struct {
	Records   []timeseries.Record
	Raw       *timeseries.Series // normalized, sorted observations
	Normalize timeseries.NormalizeStats
	Monthly   *timeseries.Resampled
	Absolute  *timeseries.Series
	Labels    []string
}

// Chart describes the absolute-value line chart.
func (r *Result) Chart() chart.Line {
	return chart.NewLine(r.Labels, r.Absolute.Values)
}

// Run fetches url and builds the result from the document.
func Run(ctx context.Context, f Fetcher, url string, opts Options) (*Result, error) {
	logger := opts.logger()

	start := time.Now()
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	logger.Info("fetched document", "url", url, "bytes", len(body), "elapsed", time.Since(start))

	return Build(bytes.NewReader(body), opts)
}

// Build runs every stage after the fetch on an in-memory document.
func Build(doc io.Reader, opts Options) (*Result, error) {
	logger := opts.logger()

	records, err := timeseries.ReadTable(doc, opts.Table)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	logger.Debug("parsed table", "records", len(records))

	raw, st, err := timeseries.Normalize(records, opts.Granularity)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	if st.Dropped > 0 {
		logger.Info("dropped non-monthly periods", "rows", st.Dropped)
	}
	if st.Collapsed > 0 {
		logger.Warn("rows share a timestamp and will be averaged together",
			"granularity", granularityName(opts.Granularity),
			"collapsed_rows", st.Collapsed,
			"distinct_timestamps", st.Kept-st.Collapsed)
	}

	monthly, err := timeseries.ResampleMonthly(raw)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	logger.Info("resampled to months",
		"buckets", monthly.Len(),
		"forward_filled", monthly.FilledCount(),
		"from", monthly.Start().Format("2006-01"),
		"to", monthly.End().Format("2006-01"))

	return &Result{
		Records:   records,
		Raw:       raw,
		Normalize: st,
		Monthly:   monthly,
		Absolute:  monthly.Abs(),
		Labels:    monthly.MonthLabels(opts.LabelLayout),
	}, nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func granularityName(g timeseries.Granularity) string {
	if g == "" {
		return string(timeseries.GranularityYear)
	}
	return string(g)
}
