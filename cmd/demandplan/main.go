package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/solvex/demandplan/pkg/infrastructure/logging"
	"github.com/solvex/demandplan/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	if subcommand == "-help" || subcommand == "--help" || subcommand == "help" {
		showUsage()
		return
	}

	flags := flag.NewFlagSet(subcommand, flag.ExitOnError)
	var (
		dataDir          = flags.String("data", "", "Path to data directory containing CSV files")
		transactionsFile = flags.String("transactions", "", "Path to transactions CSV file")
		productsFile     = flags.String("products", "", "Path to products CSV file")
		openOrdersFile   = flags.String("open-orders", "", "Path to open orders CSV file")
		suppliersFile    = flags.String("suppliers", "", "Path to suppliers CSV file")
		outputDir        = flags.String("output", "", "Output directory for results (optional)")
		format           = flags.String("format", "text", "Output format: text, json")
		verbose          = flags.Bool("verbose", false, "Enable verbose output")
		productID        = flags.String("product", "", "Product identifier")
		customerID       = flags.String("customer", "", "Customer identifier")
		asOf             = flags.String("as-of", "", "Reference date, YYYY-MM-DD (default: today)")
		logLevel         = flags.String("log-level", "info", "Log level: debug, info, warn, error")
		help             = flags.Bool("help", false, "Show help message")
	)

	if err := flags.Parse(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.Init("demandplan", *verbose)
	logging.SetLevel(*logLevel)

	config := commands.Config{
		DataDir:          *dataDir,
		TransactionsFile: *transactionsFile,
		ProductsFile:     *productsFile,
		OpenOrdersFile:   *openOrdersFile,
		SuppliersFile:    *suppliersFile,
		OutputDir:        *outputDir,
		Format:           *format,
		Verbose:          *verbose,
		ProductID:        *productID,
		CustomerID:       *customerID,
		AsOf:             *asOf,
		Help:             *help,
	}

	var cmd command
	switch subcommand {
	case "plan":
		cmd = commands.NewPlanCommand(config)
	case "forecast":
		cmd = commands.NewForecastCommand(config)
	case "classify":
		cmd = commands.NewClassifyCommand(config)
	case "customer":
		cmd = commands.NewCustomerCommand(config)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		showUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Printf(`demandplan - Demand forecasting and replenishment planning

USAGE:
    demandplan <command> [options]

COMMANDS:
    plan        Build the full-catalog replenishment master plan
    forecast    Forecast demand for one product
    classify    Run the ABC/XYZ classification over the catalog
    customer    Analyze one customer's purchase behavior

Run 'demandplan <command> -help' for command-specific options.
`)
}
