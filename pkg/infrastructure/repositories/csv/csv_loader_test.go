package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTransactions(t *testing.T) {
	path := writeCSV(t, "transactions.csv",
		`product_id,event_type,quantity,unit_price,customer_id,occurred_at,resulting_stock
SKU001,sale,5,1200.50,C1,2026-01-15T10:30:00Z,95
SKU001,purchase,50,800.00,,2026-01-10T08:00:00Z,100
`)

	events, err := NewLoader().LoadTransactions(path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	sale := events[0]
	assert.Equal(t, entities.ProductID("SKU001"), sale.ProductID)
	assert.Equal(t, entities.Sale, sale.EventType)
	assert.Equal(t, entities.Quantity(5), sale.Quantity)
	assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("1200.50")))
	assert.Equal(t, entities.CustomerID("C1"), sale.CustomerID)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), sale.OccurredAt.UTC())
	assert.Equal(t, entities.Quantity(95), sale.ResultingStock)

	assert.Equal(t, entities.Purchase, events[1].EventType)
	assert.Empty(t, events[1].CustomerID)
}

func TestLoadTransactions_Errors(t *testing.T) {
	loader := NewLoader()

	testCases := []struct {
		name    string
		content string
		errPart string
	}{
		{
			"wrong header",
			"product_id,type\nSKU001,sale\n",
			"header mismatch",
		},
		{
			"bad event type",
			"product_id,event_type,quantity,unit_price,customer_id,occurred_at,resulting_stock\nSKU001,gift,5,100,C1,2026-01-15T10:30:00Z,95\n",
			"row 2",
		},
		{
			"bad quantity",
			"product_id,event_type,quantity,unit_price,customer_id,occurred_at,resulting_stock\nSKU001,sale,five,100,C1,2026-01-15T10:30:00Z,95\n",
			"invalid quantity",
		},
		{
			"bad timestamp",
			"product_id,event_type,quantity,unit_price,customer_id,occurred_at,resulting_stock\nSKU001,sale,5,100,C1,15/01/2026,95\n",
			"invalid occurred-at",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCSV(t, "transactions.csv", tc.content)
			_, err := loader.LoadTransactions(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}

	_, err := loader.LoadTransactions(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestLoadProducts(t *testing.T) {
	path := writeCSV(t, "products.csv",
		`product_id,name,current_stock,minimum_stock,unit_cost,unit_price
SKU001,Widget Grande,100,20,800.00,1200.00
SKU002,Widget Chico,40,10,300.00,450.00
`)

	snapshots, err := NewLoader().LoadProducts(path)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, "Widget Grande", snapshots[0].Name)
	assert.Equal(t, entities.Quantity(100), snapshots[0].CurrentStock)
	assert.Equal(t, entities.Quantity(20), snapshots[0].MinimumStock)
	assert.True(t, snapshots[1].UnitPrice.Equal(decimal.RequireFromString("450.00")))
}

func TestLoadOpenOrders(t *testing.T) {
	loader := NewLoader()

	productsPath := writeCSV(t, "products.csv",
		`product_id,name,current_stock,minimum_stock,unit_cost,unit_price
SKU001,Widget,100,20,800.00,1200.00
`)
	snapshots, err := loader.LoadProducts(productsPath)
	require.NoError(t, err)

	ordersPath := writeCSV(t, "open_orders.csv",
		`product_id,order_kind,state,quantity
SKU001,purchase,confirmed,50
SKU001,purchase,received,30
SKU001,sales,processing,10
SKU001,sales,cancelled,5
`)
	require.NoError(t, loader.LoadOpenOrders(ordersPath, snapshots))

	snapshot := snapshots[0]
	require.Len(t, snapshot.OpenPurchases, 2)
	require.Len(t, snapshot.OpenSales, 2)

	// Received and cancelled lines do not count toward availability.
	assert.Equal(t, entities.Quantity(50), snapshot.InTransitStock())
	assert.Equal(t, entities.Quantity(10), snapshot.CommittedStock())
	assert.Equal(t, entities.Quantity(140), snapshot.AvailableStock())
}

func TestLoadOpenOrders_UnknownProduct(t *testing.T) {
	loader := NewLoader()

	ordersPath := writeCSV(t, "open_orders.csv",
		`product_id,order_kind,state,quantity
SKU999,purchase,confirmed,50
`)
	err := loader.LoadOpenOrders(ordersPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown product")
}

func TestLoadSuppliers(t *testing.T) {
	loader := NewLoader()

	productsPath := writeCSV(t, "products.csv",
		`product_id,name,current_stock,minimum_stock,unit_cost,unit_price
SKU001,Widget,100,20,800.00,1200.00
`)
	snapshots, err := loader.LoadProducts(productsPath)
	require.NoError(t, err)

	suppliersPath := writeCSV(t, "suppliers.csv",
		`product_id,supplier_id,unit_price,lead_time_days,stock_available,preferred
SKU001,SUP01,780.00,7,500,true
SKU001,SUP02,750.00,21,200,false
`)
	require.NoError(t, loader.LoadSuppliers(suppliersPath, snapshots))

	snapshot := snapshots[0]
	require.Len(t, snapshot.Suppliers, 2)

	preferred := snapshot.PreferredSupplier()
	require.NotNil(t, preferred)
	assert.Equal(t, entities.SupplierID("SUP01"), preferred.SupplierID)
	assert.Equal(t, 7, preferred.LeadTimeDays)
	assert.Equal(t, entities.Quantity(500), preferred.StockAvailable)
}
