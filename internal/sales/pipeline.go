package sales

import (
	"context"
	"fmt"
	"log/slog"

	"opsreport/internal/chart"
	"opsreport/internal/config"
	"opsreport/internal/dataset"
	"opsreport/internal/errors"
	"opsreport/internal/exporter"
	"opsreport/internal/profile"
)

// PipelineResult lists what a sales pipeline run produced
type PipelineResult struct {
	Stats         dataset.CleanStats
	Metrics       Metrics
	CleanedCSV    string
	CleanedXLSX   string
	ChartPNG      string
	SummaryPDF    string
	ChartRendered bool
}

// RunPipeline executes the full sales flow: profile, load, clean, export the
// cleaned dataset, render the top-products chart and write the PDF summary.
func RunPipeline(ctx context.Context, logger *slog.Logger, cfg *config.Config, paths *config.Paths, inputPath string) (*PipelineResult, error) {
	if inputPath == "" {
		inputPath = paths.SalesRawCSV
	}

	logger.InfoContext(ctx, "starting sales pipeline", slog.String("input", inputPath))

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

	res, err := Clean(raw, CleanOptions{UnknownLabel: cfg.Cleaning.UnknownLabel})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "cleaned sales data",
		slog.Int("raw_rows", res.Stats.RawRows),
		slog.Int("rows", res.Stats.Rows),
		slog.Int("duplicates_removed", res.Stats.DuplicatesRemoved),
		slog.Int("filled_cells", res.Stats.TotalFilled()))

	out := &PipelineResult{Stats: res.Stats}

	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteTable(paths.SalesCleanCSV, res.Table, exporter.WriteOptions{}); err != nil {
		return nil, err
	}
	out.CleanedCSV = paths.SalesCleanCSV

	if cfg.Output.ExcelExport {
		xlsxWriter := exporter.NewXLSXWriter(logger)
		if err := xlsxWriter.WriteTable(paths.SalesCleanXLSX, res.Table, "Cleaned"); err != nil {
			return nil, err
		}
		out.CleanedXLSX = paths.SalesCleanXLSX
	}

	m := Compute(res.Orders, cfg.Report.TopN)
	out.Metrics = m
	logger.InfoContext(ctx, "computed sales metrics",
		slog.Int("deals", m.Deals),
		slog.Float64("total_revenue", m.TotalRevenue),
		slog.Int("regions", len(m.ByRegion)),
		slog.Int("top_products", len(m.TopProducts)))

	chartPath := ""
	if len(m.TopProducts) > 0 {
		spec := chart.BarChartSpec{
			Title:  fmt.Sprintf("Top %d Products by Revenue", len(m.TopProducts)),
			YLabel: "Revenue",
			Width:  cfg.Report.ChartWidth,
			Height: cfg.Report.ChartHeight,
			Bars:   productBars(m.TopProducts),
		}
		if err := chart.WritePNG(spec, paths.SalesChartPNG); err != nil {
			if errors.IsType(err, errors.ErrTypeValidation) {
				logger.WarnContext(ctx, "skipping product chart", slog.String("reason", err.Error()))
			} else {
				return nil, err
			}
		} else {
			chartPath = paths.SalesChartPNG
			out.ChartPNG = chartPath
			out.ChartRendered = true
		}
	} else {
		logger.InfoContext(ctx, "no product data, skipping chart")
	}

	if err := WritePDF(m, res.Stats, chartPath, paths.SalesSummaryPDF, prof); err != nil {
		return nil, err
	}
	out.SummaryPDF = paths.SalesSummaryPDF

	logger.InfoContext(ctx, "sales pipeline complete",
		slog.String("cleaned_csv", out.CleanedCSV),
		slog.String("summary_pdf", out.SummaryPDF),
		slog.Bool("chart_rendered", out.ChartRendered))

	return out, nil
}

// productBars converts the product ranking into chart bars
func productBars(products []ProductRevenue) []chart.Bar {
	bars := make([]chart.Bar, len(products))
	for i, p := range products {
		bars[i] = chart.Bar{Label: p.Product, Value: p.Revenue}
	}
	return bars
}
