package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductID represents a unique product identifier
type ProductID string

// CustomerID represents a unique customer identifier; empty for anonymous sales
type CustomerID string

// SupplierID represents a unique supplier identifier
type SupplierID string

// Quantity represents an integer quantity of discrete distribution units
type Quantity int64

// EventType represents the kind of inventory transaction
type EventType int

const (
	Sale EventType = iota
	Purchase
	Adjustment
	Return
	Loss
)

// String method for EventType enum
func (e EventType) String() string {
	switch e {
	case Sale:
		return "sale"
	case Purchase:
		return "purchase"
	case Adjustment:
		return "adjustment"
	case Return:
		return "return"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// ParseEventType converts a string label to an EventType
func ParseEventType(s string) (EventType, error) {
	switch s {
	case "sale":
		return Sale, nil
	case "purchase":
		return Purchase, nil
	case "adjustment":
		return Adjustment, nil
	case "return":
		return Return, nil
	case "loss":
		return Loss, nil
	default:
		return 0, fmt.Errorf("unknown event type: %q", s)
	}
}

// TransactionEvent is one row of the append-only inventory transaction log.
// Events are immutable once recorded; this core only reads them.
type TransactionEvent struct {
	ProductID      ProductID
	EventType      EventType
	Quantity       Quantity
	UnitPrice      decimal.Decimal
	CustomerID     CustomerID
	OccurredAt     time.Time
	ResultingStock Quantity
}

// NewTransactionEvent creates a validated TransactionEvent
func NewTransactionEvent(
	productID ProductID,
	eventType EventType,
	quantity Quantity,
	unitPrice decimal.Decimal,
	customerID CustomerID,
	occurredAt time.Time,
	resultingStock Quantity,
) (*TransactionEvent, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative, got %d", quantity)
	}
	if occurredAt.IsZero() {
		return nil, fmt.Errorf("occurred-at timestamp cannot be zero")
	}

	return &TransactionEvent{
		ProductID:      productID,
		EventType:      eventType,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		CustomerID:     customerID,
		OccurredAt:     occurredAt,
		ResultingStock: resultingStock,
	}, nil
}

// Value returns the monetary value of the event (quantity × unit price)
func (e *TransactionEvent) Value() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
