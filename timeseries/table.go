package timeseries

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrMissingColumn matches a *MissingColumnError.
	ErrMissingColumn = errors.New("missing column")
	// ErrNonNumericValue matches a *NonNumericValueError.
	ErrNonNumericValue = errors.New("non-numeric value")
	// ErrInvalidYear matches an *InvalidYearError.
	ErrInvalidYear = errors.New("invalid year")
	// ErrNoRecords is returned when a document has a header but no usable rows.
	ErrNoRecords = errors.New("no records")
)

// MissingColumnError reports a required column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// NonNumericValueError reports a cell that does not hold a finite number.
type NonNumericValueError struct {
	Column string
	Row    int
	Raw    string
}

func (e *NonNumericValueError) Error() string {
	return fmt.Sprintf("row %d: column %q: non-numeric value %q", e.Row, e.Column, e.Raw)
}

func (e *NonNumericValueError) Is(target error) bool { return target == ErrNonNumericValue }

// InvalidYearError reports a year cell that is not a 4-digit calendar year.
type InvalidYearError struct {
	Row int
	Raw string
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("row %d: invalid year %q", e.Row, e.Raw)
}

func (e *InvalidYearError) Is(target error) bool { return target == ErrInvalidYear }

// Record is one row of a BLS time.series data file.
type Record struct {
	SeriesID string
	Year     int
	Period   string
	Value    float64
	Row      int // 1-based, header excluded
}

// TableOptions holds options for reading a delimited time series table.
type TableOptions struct {
	YearColumn   string // required
	ValueColumn  string // required
	PeriodColumn string // read when present
	SeriesColumn string // read when present, required by SeriesFilter
	SeriesFilter string // keep only rows of this series when set
	Delimiter    rune
}

// DefaultTableOptions returns options matching the BLS time.series layout.
func DefaultTableOptions() *TableOptions {
	return &TableOptions{
		YearColumn:   "year",
		ValueColumn:  "value",
		PeriodColumn: "period",
		SeriesColumn: "series_id",
		Delimiter:    '\t',
	}
}

// ReadTable parses a delimited document with a header row into records.
// Header names and cells are trimmed of the padding BLS files carry.
// The year and value columns must exist and every kept row must hold a
// 4-digit year and a finite numeric value.
func ReadTable(r io.Reader, opts *TableOptions) ([]Record, error) {
	if opts == nil {
		opts = DefaultTableOptions()
	}
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = '\t'
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	header, hasRows := splitHeader(data)
	if !hasRows {
		// gota refuses a frame without rows, so check the header here.
		if header == "" {
			return nil, ErrNoRecords
		}
		names := make(map[string]bool)
		for _, name := range strings.Split(header, string(delimiter)) {
			names[strings.TrimSpace(name)] = true
		}
		for _, column := range requiredColumns(opts) {
			if column != "" && !names[column] {
				return nil, &MissingColumnError{Column: column}
			}
		}
		return nil, ErrNoRecords
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
		dataframe.WithDelimiter(delimiter),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read table: %w", df.Err)
	}

	columns := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		columns[strings.TrimSpace(name)] = name
	}
	cells := func(column string, required bool) ([]string, error) {
		if column == "" {
			return nil, nil
		}
		name, ok := columns[column]
		if !ok {
			if required {
				return nil, &MissingColumnError{Column: column}
			}
			return nil, nil
		}
		return df.Col(name).Records(), nil
	}

	years, err := cells(opts.YearColumn, true)
	if err != nil {
		return nil, err
	}
	values, err := cells(opts.ValueColumn, true)
	if err != nil {
		return nil, err
	}
	periods, err := cells(opts.PeriodColumn, false)
	if err != nil {
		return nil, err
	}
	ids, err := cells(opts.SeriesColumn, opts.SeriesFilter != "")
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(years))
	for i := range years {
		rec := Record{Row: i + 1}
		if ids != nil {
			rec.SeriesID = strings.TrimSpace(ids[i])
		}
		if opts.SeriesFilter != "" && rec.SeriesID != opts.SeriesFilter {
			continue
		}
		if periods != nil {
			rec.Period = strings.TrimSpace(periods[i])
		}

		rec.Year, err = parseYear(years[i])
		if err != nil {
			return nil, &InvalidYearError{Row: rec.Row, Raw: years[i]}
		}

		raw := strings.TrimSpace(values[i])
		rec.Value, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rec.Value) || math.IsInf(rec.Value, 0) {
			return nil, &NonNumericValueError{Column: opts.ValueColumn, Row: rec.Row, Raw: raw}
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func requiredColumns(opts *TableOptions) []string {
	columns := []string{opts.YearColumn, opts.ValueColumn}
	if opts.SeriesFilter != "" && opts.SeriesColumn != "" {
		columns = append(columns, opts.SeriesColumn)
	}
	return columns
}

// splitHeader returns the first non-empty line of data and whether any
// non-empty line follows it.
func splitHeader(data []byte) (string, bool) {
	var header string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if header != "" {
			return header, true
		}
		header = line
	}
	return header, false
}

func parseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 4 {
		return 0, ErrInvalidYear
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, ErrInvalidYear
		}
	}
	return strconv.Atoi(raw)
}
