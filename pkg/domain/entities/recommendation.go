package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Priority classifies the urgency of a replenishment recommendation.
// Higher values sort first in the master plan.
type Priority int

const (
	PriorityBaja Priority = iota
	PriorityMedia
	PriorityAlta
	PriorityCritica
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case PriorityCritica:
		return "critica"
	case PriorityAlta:
		return "alta"
	case PriorityMedia:
		return "media"
	case PriorityBaja:
		return "baja"
	default:
		return "unknown"
	}
}

// ReplenishmentRecommendation is the planner's output for one product in one
// analysis run. Superseding a previous run's recommendation is a caller-level
// concern; this core only emits fresh values.
type ReplenishmentRecommendation struct {
	ProductID         ProductID
	Priority          Priority
	SuggestedQuantity Quantity
	CurrentStock      Quantity
	MinimumStock      Quantity
	CoverageDays      float64
	SupplierID        SupplierID // empty when no supplier could be resolved
	EstimatedCost     decimal.Decimal
	Reasoning         string
	GeneratedAt       time.Time
}

// NewReplenishmentRecommendation creates a validated recommendation
func NewReplenishmentRecommendation(
	productID ProductID,
	priority Priority,
	suggestedQuantity, currentStock, minimumStock Quantity,
	coverageDays float64,
	supplierID SupplierID,
	estimatedCost decimal.Decimal,
	reasoning string,
	generatedAt time.Time,
) (*ReplenishmentRecommendation, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	if suggestedQuantity < 0 {
		return nil, fmt.Errorf("suggested quantity cannot be negative, got %d", suggestedQuantity)
	}
	if coverageDays < 0 {
		return nil, fmt.Errorf("coverage days cannot be negative, got %f", coverageDays)
	}

	return &ReplenishmentRecommendation{
		ProductID:         productID,
		Priority:          priority,
		SuggestedQuantity: suggestedQuantity,
		CurrentStock:      currentStock,
		MinimumStock:      minimumStock,
		CoverageDays:      coverageDays,
		SupplierID:        supplierID,
		EstimatedCost:     estimatedCost,
		Reasoning:         reasoning,
		GeneratedAt:       generatedAt,
	}, nil
}
