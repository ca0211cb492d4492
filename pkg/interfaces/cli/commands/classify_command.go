package commands

import (
	"context"
	"fmt"

	"github.com/solvex/demandplan/pkg/application/services/classify"
	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/interfaces/cli/output"
)

// ClassifyCommand runs the ABC/XYZ classification over the full catalog
type ClassifyCommand struct {
	config Config
}

// NewClassifyCommand creates a new classify command with the given
// configuration
func NewClassifyCommand(config Config) *ClassifyCommand {
	return &ClassifyCommand{
		config: config,
	}
}

// Execute runs the classify command
func (c *ClassifyCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
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

	eventsByProduct := make(map[entities.ProductID][]*entities.TransactionEvent)
	for _, ev := range data.events {
		eventsByProduct[ev.ProductID] = append(eventsByProduct[ev.ProductID], ev)
	}

	classifier := classify.NewClassifier()
	result := classifier.Classify(eventsByProduct, asOf)

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.RenderClassification(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// showHelp displays the help message
func (c *ClassifyCommand) showHelp() {
	fmt.Printf(`demandplan classify - ABC/XYZ classification over the transaction log

USAGE:
    demandplan classify -data <directory>
    demandplan classify -transactions <file>

OPTIONS:
    -data <dir>          Path to data directory containing CSV files
    -transactions <file> Path to transactions CSV file
    -as-of <date>        Classification date, YYYY-MM-DD (default: today)
    -output <dir>        Output directory for results (optional)
    -format <fmt>        Output format: text, json (default: text)
    -verbose             Enable verbose output
    -help                Show this help message

EXAMPLES:
    # Classify the full catalog
    demandplan classify -data data/catalog

    # JSON output saved to a directory
    demandplan classify -transactions data/transactions.csv -format json -output results/
`)
}
