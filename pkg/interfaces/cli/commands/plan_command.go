package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/solvex/demandplan/config"
	"github.com/solvex/demandplan/pkg/application/services/planner"
	"github.com/solvex/demandplan/pkg/infrastructure/logging"
	"github.com/solvex/demandplan/pkg/infrastructure/repositories/memory"
	"github.com/solvex/demandplan/pkg/infrastructure/runlog"
	"github.com/solvex/demandplan/pkg/interfaces/cli/output"
)

// PlanCommand runs the full-catalog replenishment planning
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	files, err := c.config.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if files["Products"] == "" {
		return fmt.Errorf("planning requires a products file: use -data or -products")
	}

	asOf, err := c.config.asOfDate()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Println("Loading data from CSV files...")
	}

	data, err := loadDataset(files, c.config.Verbose)
	if err != nil {
		return err
	}
	if len(data.snapshots) == 0 {
		return fmt.Errorf("no products loaded from %s", files["Products"])
	}

	transactionRepo := memory.NewTransactionRepository(len(data.events))
	if err := transactionRepo.LoadEvents(data.events); err != nil {
		return fmt.Errorf("failed to load transactions into repository: %w", err)
	}

	productRepo := memory.NewProductRepository(len(data.snapshots))
	if err := productRepo.LoadSnapshots(data.snapshots); err != nil {
		return fmt.Errorf("failed to load products into repository: %w", err)
	}

	thresholds := config.Load()
	recorder := runlog.NewMemoryRecorder()
	svc := planner.NewPlanner(thresholds, recorder, logging.Logger)

	if c.config.Verbose {
		fmt.Println("Running replenishment planning...")
	}

	startTime := time.Now()
	master, err := svc.BuildMasterPlan(ctx, transactionRepo, productRepo, asOf)
	planningTime := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error building master plan: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Planning completed in %v\n\n", planningTime)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.RenderMasterPlan(master, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Printf(`demandplan plan - Replenishment planning over the full product catalog

USAGE:
    demandplan plan -data <directory>              # Use data directory with CSV files
    demandplan plan -transactions <file> ...       # Use individual CSV files

OPTIONS:
    -data <dir>          Path to data directory containing CSV files
    -transactions <file> Path to transactions CSV file
    -products <file>     Path to products CSV file
    -open-orders <file>  Path to open orders CSV file (optional)
    -suppliers <file>    Path to suppliers CSV file (optional)
    -as-of <date>        Planning date, YYYY-MM-DD (default: today)
    -output <dir>        Output directory for results (optional)
    -format <fmt>        Output format: text, json (default: text)
    -verbose             Enable verbose output
    -help                Show this help message

DATA DIRECTORY STRUCTURE:
    data_dir/
    ├── transactions.csv   # Inventory transaction log
    ├── products.csv       # Product stock snapshots
    ├── open_orders.csv    # Open purchase and sales order lines
    └── suppliers.csv      # Supplier offers per product

CSV FILE FORMATS:

transactions.csv:
    product_id,event_type,quantity,unit_price,customer_id,occurred_at,resulting_stock
    SKU001,sale,5,1200.00,CUST42,2026-01-15T10:30:00Z,95

products.csv:
    product_id,name,current_stock,minimum_stock,unit_cost,unit_price
    SKU001,Widget Grande,100,20,800.00,1200.00

open_orders.csv:
    product_id,order_kind,state,quantity
    SKU001,purchase,confirmed,50
    SKU001,sales,processing,10

suppliers.csv:
    product_id,supplier_id,unit_price,lead_time_days,stock_available,preferred
    SKU001,SUP01,780.00,7,500,true

EXAMPLES:
    # Plan a full data directory
    demandplan plan -data data/catalog -verbose

    # Plan with a fixed planning date and JSON output
    demandplan plan -data data/catalog -as-of 2026-06-30 -format json -output results/
`)
}
