package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PurchaseOrderState represents the lifecycle state of a purchase order line
type PurchaseOrderState int

const (
	PODraft PurchaseOrderState = iota
	POSent
	POConfirmed
	POReceived
	POCancelled
)

// String method for PurchaseOrderState enum
func (s PurchaseOrderState) String() string {
	switch s {
	case PODraft:
		return "draft"
	case POSent:
		return "sent"
	case POConfirmed:
		return "confirmed"
	case POReceived:
		return "received"
	case POCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// InTransit reports whether the line still counts toward incoming stock
func (s PurchaseOrderState) InTransit() bool {
	return s == PODraft || s == POSent || s == POConfirmed
}

// SalesOrderState represents the lifecycle state of a sales order line
type SalesOrderState int

const (
	SODraft SalesOrderState = iota
	SOSent
	SOProcessing
	SODelivered
	SOCancelled
)

// String method for SalesOrderState enum
func (s SalesOrderState) String() string {
	switch s {
	case SODraft:
		return "draft"
	case SOSent:
		return "sent"
	case SOProcessing:
		return "processing"
	case SODelivered:
		return "delivered"
	case SOCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Committed reports whether the line still counts toward committed stock
func (s SalesOrderState) Committed() bool {
	return s == SODraft || s == SOSent || s == SOProcessing
}

// OpenPurchaseLine is a quantity on an open purchase order for a product
type OpenPurchaseLine struct {
	Quantity Quantity
	State    PurchaseOrderState
}

// OpenSalesLine is a quantity on an open sales order for a product
type OpenSalesLine struct {
	Quantity Quantity
	State    SalesOrderState
}

// SupplierOffer is the procurement data for one supplier of a product
type SupplierOffer struct {
	SupplierID     SupplierID
	UnitPrice      decimal.Decimal
	LeadTimeDays   int
	StockAvailable Quantity
	Preferred      bool
}

// ProductSnapshot is an explicit point-in-time view of a product's stock and
// procurement state. Every planning computation takes a snapshot rather than
// reading ambient state, so the core stays testable without a database.
type ProductSnapshot struct {
	ProductID     ProductID
	Name          string
	CurrentStock  Quantity
	MinimumStock  Quantity
	UnitCost      decimal.Decimal
	UnitPrice     decimal.Decimal
	OpenPurchases []OpenPurchaseLine
	OpenSales     []OpenSalesLine
	Suppliers     []SupplierOffer
}

// NewProductSnapshot creates a validated ProductSnapshot
func NewProductSnapshot(
	productID ProductID,
	name string,
	currentStock, minimumStock Quantity,
	unitCost, unitPrice decimal.Decimal,
) (*ProductSnapshot, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if minimumStock < 0 {
		return nil, fmt.Errorf("minimum stock cannot be negative, got %d", minimumStock)
	}

	return &ProductSnapshot{
		ProductID:    productID,
		Name:         name,
		CurrentStock: currentStock,
		MinimumStock: minimumStock,
		UnitCost:     unitCost,
		UnitPrice:    unitPrice,
	}, nil
}

// InTransitStock sums quantities on open purchase orders in draft, sent or
// confirmed state
func (s *ProductSnapshot) InTransitStock() Quantity {
	var total Quantity
	for _, line := range s.OpenPurchases {
		if line.State.InTransit() {
			total += line.Quantity
		}
	}
	return total
}

// CommittedStock sums quantities on open sales orders in draft, sent or
// processing state
func (s *ProductSnapshot) CommittedStock() Quantity {
	var total Quantity
	for _, line := range s.OpenSales {
		if line.State.Committed() {
			total += line.Quantity
		}
	}
	return total
}

// AvailableStock nets current plus in-transit stock against committed stock
func (s *ProductSnapshot) AvailableStock() Quantity {
	return s.CurrentStock + s.InTransitStock() - s.CommittedStock()
}

// PreferredSupplier returns the designated preferred supplier, or nil
func (s *ProductSnapshot) PreferredSupplier() *SupplierOffer {
	for i := range s.Suppliers {
		if s.Suppliers[i].Preferred {
			return &s.Suppliers[i]
		}
	}
	return nil
}
