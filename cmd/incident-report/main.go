package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"opsreport/internal/config"
	"opsreport/internal/incidents"
	"opsreport/internal/infrastructure"
)

var version = "dev"

func main() {
	var (
		inputFile   = flag.String("input", "", "path to the raw incident CSV (default: sn_incidents_raw.csv in the working directory)")
		outputDir   = flag.String("output", "", "directory for generated artifacts (overrides config)")
		configFile  = flag.String("config", "", "path to the YAML config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("incident-report %s\n", version)
		return
	}

	if err := run(*inputFile, *outputDir, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputFile, outputDir, configFile string) error {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	paths, err := config.GetPaths(cfg.Output.Dir)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())

	res, err := incidents.RunPipeline(ctx, logger, cfg, paths, inputFile)
	if err != nil {
		return err
	}

	fmt.Printf("Cleaned data:   %s\n", res.CleanedCSV)
	if res.CleanedXLSX != "" {
		fmt.Printf("Excel export:   %s\n", res.CleanedXLSX)
	}
	if res.ChartRendered {
		fmt.Printf("Breach chart:   %s\n", res.ChartPNG)
	}
	fmt.Printf("Summary report: %s\n", res.SummaryPDF)
	return nil
}
