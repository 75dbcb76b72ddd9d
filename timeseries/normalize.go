package timeseries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity selects how a record's date is derived.
type Granularity string

const (
	// GranularityYear anchors every record at January 1 of its year. Rows
	// holding monthly observations collapse onto one timestamp per year.
	GranularityYear Granularity = "year"
	// GranularityPeriod combines year with a monthly period code (M01..M12).
	// Rows with any other period, such as the M13 annual average, are dropped.
	GranularityPeriod Granularity = "period"
)

// ParseGranularity parses a granularity name.
func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(raw))); g {
	case GranularityYear, GranularityPeriod:
		return g, nil
	case "":
		return GranularityYear, nil
	default:
		return "", fmt.Errorf("unsupported granularity %q", raw)
	}
}

// NormalizeStats describes what Normalize did with the records.
type NormalizeStats struct {
	Kept      int
	Dropped   int // non-monthly periods under GranularityPeriod
	Collapsed int // rows sharing a timestamp with an earlier row
}

// Normalize converts records into a timestamp-sorted series.
func Normalize(records []Record, g Granularity) (*Series, NormalizeStats, error) {
	var st NormalizeStats
	timestamps := make([]time.Time, 0, len(records))
	values := make([]float64, 0, len(records))
	seen := make(map[time.Time]struct{}, len(records))

	for _, rec := range records {
		var ts time.Time
		switch g {
		case GranularityYear, "":
			ts = time.Date(rec.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		case GranularityPeriod:
			month, ok := monthlyPeriod(rec.Period)
			if !ok {
				if rec.Period == "" {
					return nil, st, &MissingColumnError{Column: "period"}
				}
				st.Dropped++
				continue
			}
			ts = time.Date(rec.Year, month, 1, 0, 0, 0, 0, time.UTC)
		default:
			return nil, st, fmt.Errorf("unsupported granularity %q", g)
		}

		if _, dup := seen[ts]; dup {
			st.Collapsed++
		}
		seen[ts] = struct{}{}
		timestamps = append(timestamps, ts)
		values = append(values, rec.Value)
	}

	st.Kept = len(values)
	if st.Kept == 0 {
		return nil, st, ErrNoRecords
	}

	s, err := NewWithTimestamps(timestamps, values)
	if err != nil {
		return nil, st, err
	}
	s.Name = "value"
	return s.Sorted(), st, nil
}

func monthlyPeriod(period string) (time.Month, bool) {
	if len(period) != 3 || period[0] != 'M' {
		return 0, false
	}
	if period[1] < '0' || period[1] > '9' || period[2] < '0' || period[2] > '9' {
		return 0, false
	}
	m, err := strconv.Atoi(period[1:])
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}
