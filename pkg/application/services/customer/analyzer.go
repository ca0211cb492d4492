package customer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/config"
	"github.com/solvex/demandplan/pkg/application/services/history"
	"github.com/solvex/demandplan/pkg/domain/entities"
)

// repurchaseWindowDays is the horizon of the per-product repurchase
// probability
const repurchaseWindowDays = 30

// Analyzer computes RFM-style customer metrics, segments customers, predicts
// per-product repurchases and derives marketing actions. All outputs are
// recomputed per request from the transaction history.
type Analyzer struct {
	thresholds config.Thresholds
	extractor  *history.Extractor
}

// NewAnalyzer creates a customer behavior analyzer
func NewAnalyzer(thresholds config.Thresholds) *Analyzer {
	return &Analyzer{
		thresholds: thresholds,
		extractor:  history.NewExtractorWithWindow(thresholds.LookbackDays),
	}
}

// Analyze runs the full per-customer analysis over raw transaction events.
// A customer with zero history gets the documented default report, never an
// error.
func (a *Analyzer) Analyze(
	customerID entities.CustomerID,
	events []*entities.TransactionEvent,
	asOf time.Time,
) *entities.CustomerReport {
	orderHistory := a.extractor.CustomerHistory(events, asOf)

	metrics := a.Metrics(customerID, orderHistory, asOf)
	segment := a.Segment(metrics)
	repurchases := a.PredictRepurchases(orderHistory, asOf)
	actions := a.Recommendations(metrics, segment, repurchases)

	return &entities.CustomerReport{
		Metrics:     metrics,
		Segment:     segment,
		Repurchases: repurchases,
		Actions:     actions,
		GeneratedAt: asOf,
	}
}

// Metrics computes the RFM metric set. A nil or empty order history yields
// the default new-customer metrics object.
func (a *Analyzer) Metrics(
	customerID entities.CustomerID,
	orderHistory *entities.CustomerOrderHistory,
	asOf time.Time,
) *entities.CustomerMetrics {
	metrics := entities.NewCustomerMetrics(customerID)
	if orderHistory == nil || len(orderHistory.Orders) == 0 {
		return metrics
	}

	orders := orderHistory.Orders
	metrics.TotalOrders = len(orders)
	metrics.FirstOrderAt = orders[0].OccurredAt
	metrics.LastOrderAt = orders[len(orders)-1].OccurredAt
	metrics.RecencyDays = daysBetween(metrics.LastOrderAt, asOf)

	values := make([]float64, len(orders))
	for i, order := range orders {
		metrics.TotalValue = metrics.TotalValue.Add(order.TotalValue)
		values[i], _ = order.TotalValue.Float64()
		metrics.WeekdayDistribution[int(order.OccurredAt.Weekday())]++
		metrics.MonthDistribution[int(order.OccurredAt.Month())]++
	}
	metrics.AvgTicket = metrics.TotalValue.Div(decimal.NewFromInt(int64(len(orders))))

	if len(orders) >= 2 {
		totalGap := 0.0
		for i := 1; i < len(orders); i++ {
			totalGap += float64(daysBetween(orders[i-1].OccurredAt, orders[i].OccurredAt))
		}
		metrics.PurchaseFrequencyDays = totalGap / float64(len(orders)-1)
	}

	metrics.PriceDispersion = coefficientOfVariation(values)
	metrics.GrowthRatePct = growthRate(orders)
	metrics.PreferredWeekday = preferredWeekday(metrics.WeekdayDistribution)
	metrics.PreferredMonth = preferredMonth(metrics.MonthDistribution)

	return metrics
}

// Segment classifies the customer. Rules are evaluated in priority order and
// the first match wins, so the assignment is a pure function of the metrics.
func (a *Analyzer) Segment(metrics *entities.CustomerMetrics) entities.CustomerSegment {
	switch {
	case metrics.TotalOrders == 0:
		return entities.SegmentNuevo
	case metrics.RecencyDays > a.thresholds.InactiveRecencyDays:
		return entities.SegmentInactivo
	case metrics.TotalValue.GreaterThan(a.thresholds.VIPTotalValue) &&
		metrics.TotalOrders >= a.thresholds.PremiumMinOrders:
		return entities.SegmentPremium
	case metrics.PurchaseFrequencyDays <= a.thresholds.FrequentMaxIntervalDays &&
		metrics.TotalOrders >= a.thresholds.FrequentMinOrders:
		return entities.SegmentFrecuente
	default:
		return entities.SegmentOcasional
	}
}

// PredictRepurchases estimates the 30-day repurchase probability for every
// product the customer has bought at least twice
func (a *Analyzer) PredictRepurchases(
	orderHistory *entities.CustomerOrderHistory,
	asOf time.Time,
) []entities.RepurchasePrediction {
	if orderHistory == nil {
		return nil
	}

	type productTrack struct {
		purchases []time.Time
		totalQty  float64
	}
	tracks := make(map[entities.ProductID]*productTrack)
	for _, order := range orderHistory.Orders {
		for _, line := range order.Lines {
			track := tracks[line.ProductID]
			if track == nil {
				track = &productTrack{}
				tracks[line.ProductID] = track
			}
			track.purchases = append(track.purchases, order.OccurredAt)
			track.totalQty += float64(line.Quantity)
		}
	}

	var predictions []entities.RepurchasePrediction
	for productID, track := range tracks {
		if len(track.purchases) < 2 {
			continue
		}
		sort.Slice(track.purchases, func(i, j int) bool {
			return track.purchases[i].Before(track.purchases[j])
		})

		totalGap := 0.0
		for i := 1; i < len(track.purchases); i++ {
			totalGap += float64(daysBetween(track.purchases[i-1], track.purchases[i]))
		}
		intervalAvg := totalGap / float64(len(track.purchases)-1)
		if intervalAvg <= 0 {
			continue
		}

		daysSinceLast := daysBetween(track.purchases[len(track.purchases)-1], asOf)
		probability := clampFloat(
			(repurchaseWindowDays-float64(daysSinceLast))/intervalAvg, 0, 1)
		avgQty := track.totalQty / float64(len(track.purchases))

		predictions = append(predictions, entities.RepurchasePrediction{
			ProductID:         productID,
			Probability:       probability,
			PredictedQuantity: probability * avgQty,
			AvgIntervalDays:   intervalAvg,
			DaysSinceLast:     daysSinceLast,
			PurchaseCount:     len(track.purchases),
		})
	}

	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].ProductID < predictions[j].ProductID
	})
	return predictions
}

// Recommendations derives marketing actions from the computed metrics. It is
// a pure function; identical inputs always yield identical actions.
func (a *Analyzer) Recommendations(
	metrics *entities.CustomerMetrics,
	segment entities.CustomerSegment,
	repurchases []entities.RepurchasePrediction,
) []entities.MarketingAction {
	if segment == entities.SegmentNuevo {
		return []entities.MarketingAction{{
			CustomerID: metrics.CustomerID,
			Type:       entities.ActionClienteNuevo,
			Priority:   "alta",
			Message:    "Cliente sin historial: enviar oferta de bienvenida",
		}}
	}

	var actions []entities.MarketingAction
	if metrics.RecencyDays > a.thresholds.ReactivationRecencyDays {
		actions = append(actions, entities.MarketingAction{
			CustomerID: metrics.CustomerID,
			Type:       entities.ActionReactivacion,
			Priority:   "alta",
			Message: fmt.Sprintf(
				"Sin compras hace %d dias: lanzar campana de reactivacion", metrics.RecencyDays),
		})
	}
	if metrics.TotalValue.GreaterThan(a.thresholds.AttentionTotalValue) {
		actions = append(actions, entities.MarketingAction{
			CustomerID: metrics.CustomerID,
			Type:       entities.ActionVIP,
			Priority:   "alta",
			Message:    "Cliente de alto valor: asignar atencion preferente",
		})
	}
	if metrics.PurchaseFrequencyDays <= a.thresholds.LoyaltyMaxIntervalDays &&
		metrics.TotalOrders >= a.thresholds.LoyaltyMinOrders {
		actions = append(actions, entities.MarketingAction{
			CustomerID: metrics.CustomerID,
			Type:       entities.ActionFidelizacion,
			Priority:   "media",
			Message:    "Comprador frecuente: proponer programa de fidelizacion",
		})
	}

	var crossSell []entities.ProductID
	for _, prediction := range repurchases {
		if prediction.Probability > a.thresholds.CrossSellMinProbability {
			crossSell = append(crossSell, prediction.ProductID)
		}
	}
	if len(crossSell) > 0 {
		sort.Slice(crossSell, func(i, j int) bool { return crossSell[i] < crossSell[j] })
		if len(crossSell) > a.thresholds.CrossSellLimit {
			crossSell = crossSell[:a.thresholds.CrossSellLimit]
		}
		actions = append(actions, entities.MarketingAction{
			CustomerID: metrics.CustomerID,
			Type:       entities.ActionVentaCruzada,
			Priority:   "media",
			Message:    "Productos con recompra probable en 30 dias",
			Products:   crossSell,
		})
	}

	return actions
}

// growthRate compares first-half and second-half order value
func growthRate(orders []entities.CustomerOrder) float64 {
	if len(orders) < 2 {
		return 0
	}
	half := len(orders) / 2
	firstValue := decimal.Zero
	secondValue := decimal.Zero
	for i, order := range orders {
		if i < half {
			firstValue = firstValue.Add(order.TotalValue)
		} else {
			secondValue = secondValue.Add(order.TotalValue)
		}
	}
	if !firstValue.IsPositive() {
		return 0
	}
	growth, _ := secondValue.Sub(firstValue).Div(firstValue).Mul(decimal.NewFromInt(100)).Float64()
	return growth
}

func preferredWeekday(distribution [7]int) time.Weekday {
	best := 0
	for day := 1; day < 7; day++ {
		if distribution[day] > distribution[best] {
			best = day
		}
	}
	return time.Weekday(best)
}

func preferredMonth(distribution [13]int) time.Month {
	best := 1
	for month := 2; month <= 12; month++ {
		if distribution[month] > distribution[best] {
			best = month
		}
	}
	return time.Month(best)
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance/float64(len(values))) / mean
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
