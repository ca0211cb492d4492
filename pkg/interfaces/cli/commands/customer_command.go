package commands

import (
	"context"
	"fmt"

	"github.com/solvex/demandplan/config"
	"github.com/solvex/demandplan/pkg/application/services/customer"
	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/interfaces/cli/output"
)

// CustomerCommand runs the behavior analysis for a single customer
type CustomerCommand struct {
	config Config
}

// NewCustomerCommand creates a new customer command with the given
// configuration
func NewCustomerCommand(config Config) *CustomerCommand {
	return &CustomerCommand{
		config: config,
	}
}

// Execute runs the customer command
func (c *CustomerCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.CustomerID == "" {
		return fmt.Errorf("validation error: -customer is required")
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

	customerID := entities.CustomerID(c.config.CustomerID)
	var events []*entities.TransactionEvent
	for _, ev := range data.events {
		if ev.CustomerID == customerID {
			events = append(events, ev)
		}
	}

	analyzer := customer.NewAnalyzer(config.Load())
	report := analyzer.Analyze(customerID, events, asOf)

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.RenderCustomerReport(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// showHelp displays the help message
func (c *CustomerCommand) showHelp() {
	fmt.Printf(`demandplan customer - Behavior analysis for one customer

USAGE:
    demandplan customer -customer <id> -data <directory>
    demandplan customer -customer <id> -transactions <file>

OPTIONS:
    -customer <id>       Customer identifier to analyze (required)
    -data <dir>          Path to data directory containing CSV files
    -transactions <file> Path to transactions CSV file
    -as-of <date>        Analysis date, YYYY-MM-DD (default: today)
    -output <dir>        Output directory for results (optional)
    -format <fmt>        Output format: text, json (default: text)
    -verbose             Enable verbose output
    -help                Show this help message

EXAMPLES:
    # Analyze one customer's purchase behavior
    demandplan customer -customer CUST42 -data data/catalog

    # JSON report for a fixed date
    demandplan customer -customer CUST42 -transactions data/transactions.csv -as-of 2026-06-30 -format json
`)
}
