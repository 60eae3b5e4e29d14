package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the pipelines read or write.
type Paths struct {
	WorkDir   string
	OutputDir string
	LogsDir   string

	// Sales pipeline files
	SalesRawCSV     string
	SalesCleanCSV   string
	SalesCleanXLSX  string
	SalesChartPNG   string
	SalesSummaryPDF string

	// Incident pipeline files
	IncidentsRawCSV     string
	IncidentsCleanCSV   string
	IncidentsCleanXLSX  string
	IncidentsChartPNG   string
	IncidentsSummaryPDF string
}

// GetPaths returns application paths anchored at the current working directory,
// with artifacts placed under the configured output directory.
func GetPaths(outputDir string) (*Paths, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %v", err)
	}
	return GetPathsWithBase(workDir, outputDir)
}

// GetPathsWithBase builds the path set from an explicit base directory.
// outputDir may be absolute or relative to the base.
func GetPathsWithBase(baseDir, outputDir string) (*Paths, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory must not be empty")
	}
	if outputDir == "" {
		outputDir = "."
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(baseDir, outputDir)
	}

	p := &Paths{
		WorkDir:   baseDir,
		OutputDir: outputDir,
		LogsDir:   filepath.Join(outputDir, "logs"),

		SalesRawCSV:     filepath.Join(baseDir, "sales_raw.csv"),
		SalesCleanCSV:   filepath.Join(outputDir, "sales_cleaned.csv"),
		SalesCleanXLSX:  filepath.Join(outputDir, "sales_cleaned.xlsx"),
		SalesChartPNG:   filepath.Join(outputDir, "top_products.png"),
		SalesSummaryPDF: filepath.Join(outputDir, "sales_summary.pdf"),

		IncidentsRawCSV:     filepath.Join(baseDir, "sn_incidents_raw.csv"),
		IncidentsCleanCSV:   filepath.Join(outputDir, "sn_incidents_cleaned.csv"),
		IncidentsCleanXLSX:  filepath.Join(outputDir, "sn_incidents_cleaned.xlsx"),
		IncidentsChartPNG:   filepath.Join(outputDir, "sn_summary_chart.png"),
		IncidentsSummaryPDF: filepath.Join(outputDir, "sn_summary.pdf"),
	}
	return p, nil
}

// EnsureDirectories creates all directories the pipelines write into
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.OutputDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path for a log file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
