// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing time series data,
// along with functions for reading BLS-style tables, normalizing their dates
// and resampling them to calendar months.
//
// # Reading a Table
//
// Parse a tab-separated document with a header row:
//
//	records, err := timeseries.ReadTable(r, timeseries.DefaultTableOptions())
//
// A missing year or value column fails with a *MissingColumnError, a cell
// that is not a number with a *NonNumericValueError. Both match their
// sentinels through errors.Is:
//
//	if errors.Is(err, timeseries.ErrMissingColumn) { ... }
//
// # Normalizing Dates
//
// Records carry a year and, in BLS files, a period code. Normalize turns them
// into a sorted Series:
//
//	// January 1 of each year; monthly rows collapse onto one timestamp
//	s, stats, err := timeseries.Normalize(records, timeseries.GranularityYear)
//
//	// First of the month named by M01..M12
//	s, stats, err := timeseries.Normalize(records, timeseries.GranularityPeriod)
//
// # Resampling
//
// Bucket observations into calendar months, averaging within a bucket and
// carrying the last value into empty buckets:
//
//	monthly, err := timeseries.ResampleMonthly(s)
//	abs := monthly.Abs()
//	labels := monthly.MonthLabels("Jan")
//
// Forward fill never reaches backward. A range whose first bucket is empty
// fails with ErrNoLeadingObservation:
//
//	_, err := timeseries.ResampleMonthlyRange(s, before, s.End())
//	errors.Is(err, timeseries.ErrNoLeadingObservation) // true
package timeseries
