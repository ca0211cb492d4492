package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSegment is a derived customer classification. Recomputed on each
// analysis; never authoritative state.
type CustomerSegment int

const (
	SegmentNuevo CustomerSegment = iota
	SegmentInactivo
	SegmentPremium
	SegmentFrecuente
	SegmentOcasional
)

// String method for CustomerSegment enum
func (s CustomerSegment) String() string {
	switch s {
	case SegmentNuevo:
		return "nuevo"
	case SegmentInactivo:
		return "inactivo"
	case SegmentPremium:
		return "premium"
	case SegmentFrecuente:
		return "frecuente"
	case SegmentOcasional:
		return "ocasional"
	default:
		return "unknown"
	}
}

// NoIntervalSentinel is the value used for frequency and recency metrics when
// no purchase interval can be computed (zero or one order).
const NoIntervalSentinel = 999

// OrderLine is one product line within a customer order
type OrderLine struct {
	ProductID ProductID
	Quantity  Quantity
	UnitPrice decimal.Decimal
}

// CustomerOrder groups the sale lines recorded at a single instant
type CustomerOrder struct {
	OccurredAt    time.Time
	Lines         []OrderLine
	TotalQuantity Quantity
	TotalValue    decimal.Decimal
}

// CustomerOrderHistory is a customer's order history within the lookback
// window, ordered oldest first
type CustomerOrderHistory struct {
	CustomerID CustomerID
	Orders     []CustomerOrder
}

// CustomerMetrics is the RFM-style metric set for one customer. A customer
// with zero history gets a well-defined default object, never an error.
type CustomerMetrics struct {
	CustomerID            CustomerID
	TotalOrders           int
	TotalValue            decimal.Decimal
	AvgTicket             decimal.Decimal
	PurchaseFrequencyDays float64 // mean days between orders, NoIntervalSentinel when undefined
	RecencyDays           int     // days since last order, NoIntervalSentinel when no orders
	PriceDispersion       float64 // coefficient of variation of order values
	GrowthRatePct         float64 // value growth, first half vs second half of history
	PreferredWeekday      time.Weekday
	PreferredMonth        time.Month
	WeekdayDistribution   [7]int
	MonthDistribution     [13]int // indexed by time.Month (1..12)
	FirstOrderAt          time.Time
	LastOrderAt           time.Time
}

// NewCustomerMetrics returns the default metrics object for a customer with
// no recorded orders
func NewCustomerMetrics(customerID CustomerID) *CustomerMetrics {
	return &CustomerMetrics{
		CustomerID:            customerID,
		TotalValue:            decimal.Zero,
		AvgTicket:             decimal.Zero,
		PurchaseFrequencyDays: NoIntervalSentinel,
		RecencyDays:           NoIntervalSentinel,
		PreferredWeekday:      time.Monday,
		PreferredMonth:        time.January,
	}
}

// RepurchasePrediction estimates whether a customer will buy a product again
// within the next 30 days
type RepurchasePrediction struct {
	ProductID         ProductID
	Probability       float64 // clamp((30 - days since last purchase) / avg interval, 0, 1)
	PredictedQuantity float64 // probability × average quantity per purchase
	AvgIntervalDays   float64
	DaysSinceLast     int
	PurchaseCount     int
}

// Marketing action types emitted by the customer behavior analysis
const (
	ActionClienteNuevo = "cliente_nuevo"
	ActionReactivacion = "reactivacion"
	ActionVIP          = "atencion_vip"
	ActionFidelizacion = "fidelizacion"
	ActionVentaCruzada = "venta_cruzada"
)

// MarketingAction is a pure-function recommendation derived from computed
// customer metrics
type MarketingAction struct {
	CustomerID CustomerID
	Type       string
	Priority   string // "alta" or "media"
	Message    string
	Products   []ProductID
}

// CustomerReport bundles the full per-customer analysis output
type CustomerReport struct {
	Metrics     *CustomerMetrics
	Segment     CustomerSegment
	Repurchases []RepurchasePrediction
	Actions     []MarketingAction
	GeneratedAt time.Time
}
