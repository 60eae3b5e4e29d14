package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"opsreport/internal/config"
	"opsreport/internal/incidents"
	"opsreport/internal/infrastructure"
	"opsreport/internal/sales"
)

var version = "dev"

func main() {
	var (
		salesInput     = flag.String("sales-input", "", "path to the raw sales CSV (default: sales_raw.csv in the working directory)")
		incidentsInput = flag.String("incidents-input", "", "path to the raw incident CSV (default: sn_incidents_raw.csv in the working directory)")
		outputDir      = flag.String("output", "", "directory for generated artifacts (overrides config)")
		configFile     = flag.String("config", "", "path to the YAML config file")
		showVersion    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("report %s\n", version)
		return
	}

	if err := run(*salesInput, *incidentsInput, *outputDir, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(salesInput, incidentsInput, outputDir, configFile string) error {
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

	// The two pipelines touch disjoint files and can run concurrently
	var (
		salesRes    *sales.PipelineResult
		incidentRes *incidents.PipelineResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		salesRes, err = sales.RunPipeline(gctx, logger, cfg, paths, salesInput)
		return err
	})
	g.Go(func() error {
		var err error
		incidentRes, err = incidents.RunPipeline(gctx, logger, cfg, paths, incidentsInput)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Sales report:    %s\n", salesRes.SummaryPDF)
	fmt.Printf("Incident report: %s\n", incidentRes.SummaryPDF)
	return nil
}
