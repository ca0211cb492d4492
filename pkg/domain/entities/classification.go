package entities

import (
	"github.com/shopspring/decimal"
)

// ValueClass classifies products by annual sales value
type ValueClass int

const (
	ValueA ValueClass = iota // top 20% by annual value
	ValueB                   // next 30%
	ValueC                   // remaining 50%
)

// String method for ValueClass enum
func (v ValueClass) String() string {
	switch v {
	case ValueA:
		return "A"
	case ValueB:
		return "B"
	case ValueC:
		return "C"
	default:
		return "?"
	}
}

// VariabilityClass classifies products by monthly demand variability
type VariabilityClass int

const (
	VariabilityX VariabilityClass = iota // CV < 0.5
	VariabilityY                         // CV < 1.0
	VariabilityZ                         // CV >= 1.0
)

// String method for VariabilityClass enum
func (v VariabilityClass) String() string {
	switch v {
	case VariabilityX:
		return "X"
	case VariabilityY:
		return "Y"
	case VariabilityZ:
		return "Z"
	default:
		return "?"
	}
}

// ABCXYZClass is the combined value/variability classification for a product
// over a one-year lookback. Recomputed on each full run.
type ABCXYZClass struct {
	ProductID              ProductID
	ValueClass             ValueClass
	VariabilityClass       VariabilityClass
	AnnualValue            decimal.Decimal
	AnnualQuantity         Quantity
	CoefficientOfVariation float64
}

// Label returns the combined class label, e.g. "AX" or "CZ"
func (c ABCXYZClass) Label() string {
	return c.ValueClass.String() + c.VariabilityClass.String()
}
