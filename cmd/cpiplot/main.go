// Command cpiplot downloads the BLS CPI "All Items" file, resamples it to
// calendar months and plots the absolute monthly value.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("cpiplot exited with error", "error", err)
		os.Exit(1)
	}
}
