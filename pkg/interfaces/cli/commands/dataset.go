package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/infrastructure/repositories/csv"
)

// Config holds configuration shared by the CLI commands
type Config struct {
	DataDir          string
	TransactionsFile string
	ProductsFile     string
	OpenOrdersFile   string
	SuppliersFile    string
	OutputDir        string
	Format           string
	Verbose          bool
	ProductID        string
	CustomerID       string
	AsOf             string
	Help             bool
}

// asOfDate parses the -as-of flag, defaulting to the current day
func (c Config) asOfDate() (time.Time, error) {
	if c.AsOf == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse("2006-01-02", c.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as-of date %q: %w", c.AsOf, err)
	}
	return asOf, nil
}

// dataset is the fully loaded planning input set
type dataset struct {
	events    []*entities.TransactionEvent
	snapshots []*entities.ProductSnapshot
}

// resolveInputFiles determines the actual file paths to use
func (c Config) resolveInputFiles() (map[string]string, error) {
	var transactionsPath, productsPath, openOrdersPath, suppliersPath string

	if c.DataDir != "" {
		transactionsPath = filepath.Join(c.DataDir, "transactions.csv")
		productsPath = filepath.Join(c.DataDir, "products.csv")
		openOrdersPath = filepath.Join(c.DataDir, "open_orders.csv")
		suppliersPath = filepath.Join(c.DataDir, "suppliers.csv")
	} else {
		transactionsPath = c.TransactionsFile
		productsPath = c.ProductsFile
		openOrdersPath = c.OpenOrdersFile
		suppliersPath = c.SuppliersFile
	}

	files := map[string]string{
		"Transactions": transactionsPath,
		"Products":     productsPath,
		"OpenOrders":   openOrdersPath,
		"Suppliers":    suppliersPath,
	}

	// Transactions are always required; the other files are optional inputs
	if files["Transactions"] == "" {
		return nil, fmt.Errorf("must specify either -data directory or -transactions file")
	}
	if _, err := os.Stat(files["Transactions"]); os.IsNotExist(err) {
		return nil, fmt.Errorf("transactions file not found: %s", files["Transactions"])
	}

	return files, nil
}

// loadDataset loads transactions and, when present, product snapshots with
// their open orders and supplier offers
func loadDataset(files map[string]string, verbose bool) (*dataset, error) {
	loader := csv.NewLoader()

	events, err := loader.LoadTransactions(files["Transactions"])
	if err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}

	data := &dataset{events: events}

	if path := files["Products"]; path != "" && fileExists(path) {
		snapshots, err := loader.LoadProducts(path)
		if err != nil {
			return nil, fmt.Errorf("error loading products: %w", err)
		}
		data.snapshots = snapshots

		if path := files["OpenOrders"]; path != "" && fileExists(path) {
			if err := loader.LoadOpenOrders(path, snapshots); err != nil {
				return nil, fmt.Errorf("error loading open orders: %w", err)
			}
		}
		if path := files["Suppliers"]; path != "" && fileExists(path) {
			if err := loader.LoadSuppliers(path, snapshots); err != nil {
				return nil, fmt.Errorf("error loading suppliers: %w", err)
			}
		}
	}

	if verbose {
		fmt.Printf("Data loaded successfully:\n")
		fmt.Printf("  Transactions: %d\n", len(data.events))
		fmt.Printf("  Products: %d\n", len(data.snapshots))
		fmt.Println()
	}

	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
