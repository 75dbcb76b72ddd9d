package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteTable prints one line per monthly bucket followed by a summary.
func WriteTable(w io.Writer, r *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "month\tlabel\tobservations\tvalue\tabs_inflation\t")

	m := r.Monthly
	for i := 0; i < m.Len(); i++ {
		obs := strconv.Itoa(m.Observations[i])
		if m.Filled(i) {
			obs = "ffill"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			m.Timestamps[i].Format("2006-01"),
			r.Labels[i],
			obs,
			formatValue(m.Values[i]),
			formatValue(r.Absolute.Values[i]),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d rows, %d filled, mean %s, median %s, min %s, max %s\n",
		m.Len(), m.FilledCount(),
		formatValue(m.Mean()), formatValue(m.Median()),
		formatValue(m.Min()), formatValue(m.Max()),
	)
	return err
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
