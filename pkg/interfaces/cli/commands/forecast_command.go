package commands

import (
	"context"
	"fmt"

	"github.com/solvex/demandplan/config"
	"github.com/solvex/demandplan/pkg/application/services/forecast"
	"github.com/solvex/demandplan/pkg/application/services/history"
	"github.com/solvex/demandplan/pkg/application/services/seasonality"
	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/interfaces/cli/output"
)

// ForecastCommand produces demand forecasts for a single product
type ForecastCommand struct {
	config Config
}

// NewForecastCommand creates a new forecast command with the given
// configuration
func NewForecastCommand(config Config) *ForecastCommand {
	return &ForecastCommand{
		config: config,
	}
}

// Execute runs the forecast command
func (c *ForecastCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.ProductID == "" {
		return fmt.Errorf("validation error: -product is required")
	}

	files, err := c.config.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	asOf, err := c.config.asOfDate()
	if err != nil {
		return err
	}

	data, err := loadDataset(files, c.config.Verbose)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	productID := entities.ProductID(c.config.ProductID)
	var events []*entities.TransactionEvent
	for _, ev := range data.events {
		if ev.ProductID == productID {
			events = append(events, ev)
		}
	}

	thresholds := config.Load()
	extractor := history.NewExtractorWithWindow(thresholds.LookbackDays)
	series := extractor.DailySeries(events, asOf)
	profile := seasonality.NewAnalyzer().Analyze(productID, events, asOf)

	selector := forecast.NewSelectorWithMinObservations(thresholds.MinObservations)
	forecaster := forecast.NewForecasterWithSelector(selector)
	forecasts, err := forecaster.ForecastHorizons(series, profile.Factor, asOf, nil)
	if err != nil {
		return fmt.Errorf("error forecasting %s: %w", productID, err)
	}

	if c.config.Verbose {
		fmt.Printf("Seasonality factor: %.2f (peak %s)\n\n", profile.Factor, profile.PeakMonth)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.RenderForecasts(forecasts, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// showHelp displays the help message
func (c *ForecastCommand) showHelp() {
	fmt.Printf(`demandplan forecast - Demand forecasts for one product

USAGE:
    demandplan forecast -product <id> -data <directory>
    demandplan forecast -product <id> -transactions <file>

OPTIONS:
    -product <id>        Product identifier to forecast (required)
    -data <dir>          Path to data directory containing CSV files
    -transactions <file> Path to transactions CSV file
    -as-of <date>        Forecast date, YYYY-MM-DD (default: today)
    -output <dir>        Output directory for results (optional)
    -format <fmt>        Output format: text, json (default: text)
    -verbose             Enable verbose output
    -help                Show this help message

EXAMPLES:
    # Forecast one product over all standard horizons
    demandplan forecast -product SKU001 -data data/catalog

    # JSON output for a fixed date
    demandplan forecast -product SKU001 -transactions data/transactions.csv -as-of 2026-06-30 -format json
`)
}
