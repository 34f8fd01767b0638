package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/deal-metrics/internal/config"
	"github.com/iwvelando/deal-metrics/internal/scenario"
	"github.com/iwvelando/deal-metrics/pkg/constants"
	"github.com/iwvelando/deal-metrics/pkg/output"
	"github.com/iwvelando/deal-metrics/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to deal book")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.InitializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	deals, err := conf.Assumptions()
	if err != nil {
		logger.Fatal("failed to read deals",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	orchestrator, err := scenario.NewOrchestrator(logger, scenario.DefaultAnalyzers(logger)...)
	if err != nil {
		logger.Fatal("failed to build orchestrator",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	results, err := orchestrator.AnalyzeAll(deals)
	if err != nil {
		logger.Fatal("failed to analyze deals",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, results)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
