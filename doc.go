// Package cpiplot plots the average absolute US inflation percentage by month.
//
// The cpiplot command downloads the Bureau of Labor Statistics CPI "All
// Items" time.series file, resamples it to calendar months and draws a line
// chart of the absolute monthly value.
//
// # Pipeline
//
//   - fetch: one GET of the tab-separated document (source)
//   - normalize: year, and optionally period, into a sorted Series (timeseries)
//   - resample: monthly mean with forward fill (timeseries)
//   - present: absolute value, month labels, line chart (chart, display)
//
// # Quick Start
//
// Open the chart in a window:
//
//	CPIPLOT_USER_AGENT="you@example.com" cpiplot
//
// Write it to a file using the monthly period column and one series:
//
//	cpiplot -granularity period -series CUUR0000SA0 -labels "Jan 2006" -o cpi.svg
//
// # Packages
//
//   - source: HTTP fetch
//   - timeseries: table parsing, date normalization, monthly resampling
//   - chart: gonum/plot and go-chart renderers
//   - display: fyne window
//   - pipeline: stage orchestration and the monthly table report
//   - config: defaults, .env, environment and flags
//
// # Known Limitations
//
// The BLS file holds monthly observations under a single year field. With
// the default year granularity every row of a year is anchored at January 1,
// so each January bucket averages the whole year and the other months are
// forward-filled copies of it. Use -granularity period for true monthly
// buckets.
//
// Month labels ("Jan", "Feb", ...) repeat across years; pass a layout such as
// "Jan 2006" to tell the years apart.
package cpiplot
