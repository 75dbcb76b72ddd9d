package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"

	"github.com/sartorproj/cpiplot/chart"
	"github.com/sartorproj/cpiplot/config"
	"github.com/sartorproj/cpiplot/display"
	"github.com/sartorproj/cpiplot/pipeline"
	"github.com/sartorproj/cpiplot/source"
	"github.com/sartorproj/cpiplot/timeseries"
)

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	renderer, err := chart.NewRenderer(cfg.Renderer)
	if err != nil {
		return err
	}

	client := source.NewClient(source.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table := timeseries.DefaultTableOptions()
	table.SeriesFilter = cfg.SeriesID

	result, err := pipeline.Run(ctx, client, cfg.URL, pipeline.Options{
		Table:       table,
		Granularity: cfg.Granularity,
		LabelLayout: cfg.LabelLayout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if err := pipeline.WriteTable(os.Stdout, result); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	size := chart.Size{Width: cfg.Width, Height: cfg.Height}
	if cfg.Output != "" {
		if err := writeChart(cfg.Output, renderer, result.Chart(), size); err != nil {
			return err
		}
		logger.Info("wrote chart", "path", cfg.Output, "renderer", cfg.Renderer)
		return nil
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result.Chart(), chart.PNG, size); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	logger.Debug("opening chart window", "bytes", buf.Len())
	return display.Show(app.New(), chart.DefaultTitle, buf.Bytes(), cfg.Width, cfg.Height)
}

func writeChart(path string, r chart.Renderer, l chart.Line, size chart.Size) (err error) {
	format, err := chart.FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close chart file: %w", cerr)
		}
	}()

	if err := r.Render(f, l, format, size); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
