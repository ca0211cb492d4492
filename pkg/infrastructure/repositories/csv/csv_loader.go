package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTransactions loads transaction events from a CSV file
func (l *Loader) LoadTransactions(filename string) ([]*entities.TransactionEvent, error) {
	records, err := readRecords(filename, "transactions")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "event_type", "quantity", "unit_price", "customer_id", "occurred_at", "resulting_stock"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("transactions CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var events []*entities.TransactionEvent
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("transactions CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		event, err := parseTransaction(record)
		if err != nil {
			return nil, fmt.Errorf("transactions CSV row %d: %w", i+2, err)
		}
		events = append(events, event)
	}

	return events, nil
}

// LoadProducts loads product snapshots from a CSV file. Open order lines and
// supplier offers are attached separately.
func (l *Loader) LoadProducts(filename string) ([]*entities.ProductSnapshot, error) {
	records, err := readRecords(filename, "products")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "name", "current_stock", "minimum_stock", "unit_cost", "unit_price"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var snapshots []*entities.ProductSnapshot
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		snapshot, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// LoadOpenOrders loads open purchase and sales order lines and attaches them
// to the given snapshots by product ID
func (l *Loader) LoadOpenOrders(filename string, snapshots []*entities.ProductSnapshot) error {
	records, err := readRecords(filename, "open orders")
	if err != nil {
		return err
	}

	expectedHeader := []string{"product_id", "order_kind", "state", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return fmt.Errorf("open orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byProduct := make(map[entities.ProductID]*entities.ProductSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byProduct[snapshot.ProductID] = snapshot
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("open orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		snapshot, exists := byProduct[entities.ProductID(record[0])]
		if !exists {
			return fmt.Errorf("open orders CSV row %d: unknown product %q", i+2, record[0])
		}

		quantity, err := parseQuantity(record[3])
		if err != nil {
			return fmt.Errorf("open orders CSV row %d: %w", i+2, err)
		}

		switch record[1] {
		case "purchase":
			state, err := parsePurchaseState(record[2])
			if err != nil {
				return fmt.Errorf("open orders CSV row %d: %w", i+2, err)
			}
			snapshot.OpenPurchases = append(snapshot.OpenPurchases, entities.OpenPurchaseLine{
				Quantity: quantity,
				State:    state,
			})
		case "sales":
			state, err := parseSalesState(record[2])
			if err != nil {
				return fmt.Errorf("open orders CSV row %d: %w", i+2, err)
			}
			snapshot.OpenSales = append(snapshot.OpenSales, entities.OpenSalesLine{
				Quantity: quantity,
				State:    state,
			})
		default:
			return fmt.Errorf("open orders CSV row %d: unknown order kind %q", i+2, record[1])
		}
	}

	return nil
}

// LoadSuppliers loads supplier offers and attaches them to the given
// snapshots by product ID
func (l *Loader) LoadSuppliers(filename string, snapshots []*entities.ProductSnapshot) error {
	records, err := readRecords(filename, "suppliers")
	if err != nil {
		return err
	}

	expectedHeader := []string{"product_id", "supplier_id", "unit_price", "lead_time_days", "stock_available", "preferred"}
	if !validateHeader(records[0], expectedHeader) {
		return fmt.Errorf("suppliers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byProduct := make(map[entities.ProductID]*entities.ProductSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byProduct[snapshot.ProductID] = snapshot
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return fmt.Errorf("suppliers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		snapshot, exists := byProduct[entities.ProductID(record[0])]
		if !exists {
			return fmt.Errorf("suppliers CSV row %d: unknown product %q", i+2, record[0])
		}

		offer, err := parseSupplier(record)
		if err != nil {
			return fmt.Errorf("suppliers CSV row %d: %w", i+2, err)
		}
		snapshot.Suppliers = append(snapshot.Suppliers, *offer)
	}

	return nil
}

func readRecords(filename, label string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", label, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", label, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", label)
	}
	return records, nil
}

func parseTransaction(record []string) (*entities.TransactionEvent, error) {
	eventType, err := entities.ParseEventType(record[1])
	if err != nil {
		return nil, err
	}

	quantity, err := parseQuantity(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %w", err)
	}

	unitPrice, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", record[3], err)
	}

	occurredAt, err := time.Parse(time.RFC3339, record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid occurred-at %q: %w", record[5], err)
	}

	resultingStock, err := parseQuantity(record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid resulting stock: %w", err)
	}

	return entities.NewTransactionEvent(
		entities.ProductID(record[0]),
		eventType,
		quantity,
		unitPrice,
		entities.CustomerID(record[4]),
		occurredAt,
		resultingStock,
	)
}

func parseProduct(record []string) (*entities.ProductSnapshot, error) {
	currentStock, err := parseQuantity(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid current stock: %w", err)
	}
	minimumStock, err := parseQuantity(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid minimum stock: %w", err)
	}
	unitCost, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid unit cost %q: %w", record[4], err)
	}
	unitPrice, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", record[5], err)
	}

	return entities.NewProductSnapshot(
		entities.ProductID(record[0]),
		record[1],
		currentStock,
		minimumStock,
		unitCost,
		unitPrice,
	)
}

func parseSupplier(record []string) (*entities.SupplierOffer, error) {
	unitPrice, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", record[2], err)
	}
	leadTime, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid lead time %q: %w", record[3], err)
	}
	stock, err := parseQuantity(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid stock available: %w", err)
	}
	preferred, err := strconv.ParseBool(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid preferred flag %q: %w", record[5], err)
	}

	return &entities.SupplierOffer{
		SupplierID:     entities.SupplierID(record[1]),
		UnitPrice:      unitPrice,
		LeadTimeDays:   leadTime,
		StockAvailable: stock,
		Preferred:      preferred,
	}, nil
}

func parsePurchaseState(s string) (entities.PurchaseOrderState, error) {
	switch s {
	case "draft":
		return entities.PODraft, nil
	case "sent":
		return entities.POSent, nil
	case "confirmed":
		return entities.POConfirmed, nil
	case "received":
		return entities.POReceived, nil
	case "cancelled":
		return entities.POCancelled, nil
	default:
		return 0, fmt.Errorf("unknown purchase order state: %q", s)
	}
}

func parseSalesState(s string) (entities.SalesOrderState, error) {
	switch s {
	case "draft":
		return entities.SODraft, nil
	case "sent":
		return entities.SOSent, nil
	case "processing":
		return entities.SOProcessing, nil
	case "delivered":
		return entities.SODelivered, nil
	case "cancelled":
		return entities.SOCancelled, nil
	default:
		return 0, fmt.Errorf("unknown sales order state: %q", s)
	}
}

func parseQuantity(s string) (entities.Quantity, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return entities.Quantity(value), nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, column := range expected {
		if strings.TrimSpace(header[i]) != column {
			return false
		}
	}
	return true
}
