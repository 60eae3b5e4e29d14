package incidents

import (
	"context"
	"log/slog"

	"opsreport/internal/chart"
	"opsreport/internal/config"
	"opsreport/internal/dataset"
	"opsreport/internal/errors"
	"opsreport/internal/exporter"
	"opsreport/internal/profile"
)

// PipelineResult lists what an incident pipeline run produced
type PipelineResult struct {
	Stats         dataset.CleanStats
	Metrics       Metrics
	CleanedCSV    string
	CleanedXLSX   string
	ChartPNG      string
	SummaryPDF    string
	ChartRendered bool
}

// RunPipeline executes the full incident flow: profile, load, clean, export
// the cleaned dataset, render the breach-rate chart and write the PDF summary.
func RunPipeline(ctx context.Context, logger *slog.Logger, cfg *config.Config, paths *config.Paths, inputPath string) (*PipelineResult, error) {
	if inputPath == "" {
		inputPath = paths.IncidentsRawCSV
	}

	logger.InfoContext(ctx, "starting incident pipeline", slog.String("input", inputPath))

	// Dataset profile is informational; a failure here must not stop the run
	prof, err := profile.FromFile(inputPath)
	if err == nil {
		prof.Log(logger)
	} else {
		logger.WarnContext(ctx, "failed to profile input", slog.String("error", err.Error()))
	}

	raw, err := dataset.LoadCSV(inputPath)
	if err != nil {
		return nil, err
	}

	res, err := Clean(raw, CleanOptions{
		DefaultPriority:    cfg.Cleaning.DefaultPriority,
		UnassignedGroup:    cfg.Cleaning.UnassignedGroup,
		UnassignedAssignee: cfg.Cleaning.UnassignedAssignee,
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "cleaned incident data",
		slog.Int("raw_rows", res.Stats.RawRows),
		slog.Int("rows", res.Stats.Rows),
		slog.Int("duplicates_removed", res.Stats.DuplicatesRemoved),
		slog.Int("filled_cells", res.Stats.TotalFilled()))

	out := &PipelineResult{Stats: res.Stats}

	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteTable(paths.IncidentsCleanCSV, res.Table, exporter.WriteOptions{}); err != nil {
		return nil, err
	}
	out.CleanedCSV = paths.IncidentsCleanCSV

	if cfg.Output.ExcelExport {
		xlsxWriter := exporter.NewXLSXWriter(logger)
		if err := xlsxWriter.WriteTable(paths.IncidentsCleanXLSX, res.Table, "Cleaned"); err != nil {
			return nil, err
		}
		out.CleanedXLSX = paths.IncidentsCleanXLSX
	}

	m := Compute(res.Tickets, cfg.Report.TopN)
	out.Metrics = m
	logger.InfoContext(ctx, "computed incident metrics",
		slog.Int("tickets", m.Total),
		slog.Int("closed", m.Closed),
		slog.Int("open", m.Open),
		slog.Int("priorities", len(m.VolumeByPriority)))

	chartPath := ""
	if len(m.BreachByPriority) > 0 {
		spec := chart.BarChartSpec{
			Title:  "SLA Breach Rate by Priority",
			YLabel: "Breach rate (%)",
			Width:  cfg.Report.ChartWidth,
			Height: cfg.Report.ChartHeight,
			Bars:   breachBars(m.BreachByPriority),
		}
		if err := chart.WritePNG(spec, paths.IncidentsChartPNG); err != nil {
			if errors.IsType(err, errors.ErrTypeValidation) {
				logger.WarnContext(ctx, "skipping breach chart", slog.String("reason", err.Error()))
			} else {
				return nil, err
			}
		} else {
			chartPath = paths.IncidentsChartPNG
			out.ChartPNG = chartPath
			out.ChartRendered = true
		}
	} else {
		logger.InfoContext(ctx, "no breach data, skipping chart")
	}

	if err := WritePDF(m, res.Stats, chartPath, paths.IncidentsSummaryPDF, prof); err != nil {
		return nil, err
	}
	out.SummaryPDF = paths.IncidentsSummaryPDF

	logger.InfoContext(ctx, "incident pipeline complete",
		slog.String("cleaned_csv", out.CleanedCSV),
		slog.String("summary_pdf", out.SummaryPDF),
		slog.Bool("chart_rendered", out.ChartRendered))

	return out, nil
}

// breachBars converts the per-priority breach rates into chart bars
func breachBars(breaches []PriorityBreach) []chart.Bar {
	bars := make([]chart.Bar, len(breaches))
	for i, b := range breaches {
		bars[i] = chart.Bar{Label: b.Priority, Value: b.BreachRatePct}
	}
	return bars
}
