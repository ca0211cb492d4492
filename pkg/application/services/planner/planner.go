package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/config"
	"github.com/solvex/demandplan/pkg/application/dto"
	"github.com/solvex/demandplan/pkg/application/services/forecast"
	"github.com/solvex/demandplan/pkg/application/services/history"
	"github.com/solvex/demandplan/pkg/application/services/seasonality"
	"github.com/solvex/demandplan/pkg/domain/entities"
	"github.com/solvex/demandplan/pkg/domain/repositories"
	"github.com/solvex/demandplan/pkg/infrastructure/runlog"
)

// fallbackWindowDays is the sales window used for the simple average-demand
// fallback when no forecast is available
const fallbackWindowDays = 90

// noCoverageSentinel is reported as coverage when daily demand is zero
const noCoverageSentinel = 999

// Planner computes net replenishment requirements, safety stock, EOQ and
// prioritized recommendations per product, and aggregates full-catalog runs
// into a master plan with a purchase calendar.
type Planner struct {
	thresholds config.Thresholds
	extractor  *history.Extractor
	forecaster *forecast.Forecaster
	seasonal   *seasonality.Analyzer
	recorder   runlog.Recorder
	logger     zerolog.Logger
}

// NewPlanner creates a planner with the given thresholds
func NewPlanner(thresholds config.Thresholds, recorder runlog.Recorder, logger zerolog.Logger) *Planner {
	selector := forecast.NewSelectorWithMinObservations(thresholds.MinObservations)
	return &Planner{
		thresholds: thresholds,
		extractor:  history.NewExtractorWithWindow(thresholds.LookbackDays),
		forecaster: forecast.NewForecasterWithSelector(selector),
		seasonal:   seasonality.NewAnalyzer(),
		recorder:   recorder,
		logger:     logger,
	}
}

// PlanProduct computes the full replenishment plan for one product from an
// explicit stock snapshot and its transaction history
func (p *Planner) PlanProduct(
	ctx context.Context,
	snapshot *entities.ProductSnapshot,
	events []*entities.TransactionEvent,
	asOf time.Time,
) (*dto.ProductPlan, error) {
	if snapshot == nil || snapshot.ProductID == "" {
		return nil, fmt.Errorf("product snapshot is missing or has no product ID")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	series := p.extractor.DailySeries(events, asOf)
	profile := p.seasonal.Analyze(snapshot.ProductID, events, asOf)

	forecasts, err := p.forecaster.ForecastHorizons(series, profile.Factor, asOf, nil)
	if err != nil && !errors.Is(err, entities.ErrNoData) {
		return nil, fmt.Errorf("forecasting failed for %s: %w", snapshot.ProductID, err)
	}
	forecastByHorizon := make(map[int]entities.Quantity, len(forecasts))
	for _, f := range forecasts {
		forecastByHorizon[f.HorizonDays] = f.PredictedQuantity
	}

	avgDaily := p.recentDailyAverage(events, asOf)

	plan := &dto.ProductPlan{
		ProductID:   snapshot.ProductID,
		ProductName: snapshot.Name,
		Forecasts:   forecasts,
	}

	available := snapshot.AvailableStock()
	for _, period := range dto.PlanningPeriods {
		gross := p.grossDemand(forecastByHorizon, avgDaily, period)
		safety := p.safetyStock(snapshot.MinimumStock, gross)
		net := gross - available + safety
		if net < 0 {
			net = 0
		}
		plan.Requirements = append(plan.Requirements, dto.PeriodRequirement{
			PeriodDays:     period,
			GrossDemand:    gross,
			Available:      available,
			SafetyStock:    safety,
			NetRequirement: net,
		})
	}

	demand30 := p.grossDemand(forecastByHorizon, avgDaily, 30)
	plan.Priority = p.classifyPriority(snapshot, demand30)
	plan.PriorityLabel = plan.Priority.String()
	plan.CoverageDays = coverageDays(snapshot.CurrentStock, avgDaily)

	annualDemand := entities.Quantity(math.Round(float64(demand30) * 365.0 / 30.0))
	plan.EOQ = p.economicOrderQuantity(annualDemand, snapshot.UnitCost, snapshot.MinimumStock)

	supplier := p.selectSupplier(snapshot)
	plan.EstimatedCost = decimal.Zero
	if supplier != nil {
		plan.SupplierID = supplier.SupplierID
		plan.EstimatedCost = supplier.UnitPrice.Mul(decimal.NewFromInt(int64(plan.EOQ)))
	}

	recommendation, err := p.buildRecommendation(snapshot, plan, demand30, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendation for %s: %w", snapshot.ProductID, err)
	}
	plan.Recommendation = recommendation

	return plan, nil
}

// BuildMasterPlan runs the planner over the whole catalog. Per-product
// failures are recorded and skipped so a single bad product never aborts the
// run.
func (p *Planner) BuildMasterPlan(
	ctx context.Context,
	transactionRepo repositories.TransactionRepository,
	productRepo repositories.ProductRepository,
	asOf time.Time,
) (*dto.MasterPlan, error) {
	snapshots, err := productRepo.GetAllSnapshots()
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshots: %w", err)
	}

	runID := uuid.New()
	p.record(runlog.Event{RunID: runID, Type: runlog.EventRunStarted, OccurredAt: asOf})
	p.logger.Info().
		Str("run_id", runID.String()).
		Int("products", len(snapshots)).
		Msg("starting master plan run")

	master := &dto.MasterPlan{
		RunID:              runID,
		GeneratedAt:        asOf,
		InvestmentByPeriod: make(map[int]decimal.Decimal, len(dto.PlanningPeriods)),
	}
	for _, period := range dto.PlanningPeriods {
		master.InvestmentByPeriod[period] = decimal.Zero
	}

	since := asOf.AddDate(0, 0, -p.thresholds.LookbackDays)
	for _, snapshot := range snapshots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		productID := entities.ProductID("")
		if snapshot != nil {
			productID = snapshot.ProductID
		}

		events, err := transactionRepo.GetProductEvents(productID, since)
		if err == nil {
			var plan *dto.ProductPlan
			plan, err = p.PlanProduct(ctx, snapshot, events, asOf)
			if err == nil {
				master.Plans = append(master.Plans, plan)
				p.accumulateInvestment(master, snapshot, plan)
				p.record(runlog.Event{
					RunID: runID, Type: runlog.EventProductPlanned, ProductID: productID,
				})
				continue
			}
		}

		p.logger.Warn().
			Str("run_id", runID.String()).
			Str("product_id", string(productID)).
			Err(err).
			Msg("product skipped during master plan run")
		master.Skipped = append(master.Skipped, dto.SkippedProduct{
			ProductID: productID,
			Reason:    err.Error(),
		})
		p.record(runlog.Event{
			RunID: runID, Type: runlog.EventProductSkipped,
			ProductID: productID, Reason: err.Error(),
		})
	}

	sort.SliceStable(master.Plans, func(i, j int) bool {
		if master.Plans[i].Priority != master.Plans[j].Priority {
			return master.Plans[i].Priority > master.Plans[j].Priority
		}
		return master.Plans[i].ProductID < master.Plans[j].ProductID
	})

	for _, plan := range master.Plans {
		if plan.Priority == entities.PriorityCritica {
			master.Alerts = append(master.Alerts, dto.Alert{
				ProductID: plan.ProductID,
				Message: fmt.Sprintf("stock critico: %d unidades frente a minimo %d",
					plan.Recommendation.CurrentStock, plan.Recommendation.MinimumStock),
			})
		}
	}

	master.Calendar = p.buildCalendar(master.Plans)

	p.record(runlog.Event{RunID: runID, Type: runlog.EventRunCompleted})
	p.logger.Info().
		Str("run_id", runID.String()).
		Int("planned", len(master.Plans)).
		Int("skipped", len(master.Skipped)).
		Int("alerts", len(master.Alerts)).
		Msg("master plan run completed")

	return master, nil
}

// grossDemand uses the forecast for the period when one exists; otherwise a
// simple recent daily average times the period length, with a minimum of one
// unit per day when there are no sales at all
func (p *Planner) grossDemand(
	forecastByHorizon map[int]entities.Quantity,
	avgDaily float64,
	periodDays int,
) entities.Quantity {
	if qty, ok := forecastByHorizon[periodDays]; ok {
		return qty
	}
	if avgDaily <= 0 {
		avgDaily = 1
	}
	return entities.Quantity(math.Round(avgDaily * float64(periodDays)))
}

// recentDailyAverage is sales volume per day over the trailing 90-day window
func (p *Planner) recentDailyAverage(events []*entities.TransactionEvent, asOf time.Time) float64 {
	windowStart := asOf.AddDate(0, 0, -fallbackWindowDays)
	total := 0.0
	for _, ev := range events {
		if ev.EventType != entities.Sale {
			continue
		}
		if ev.OccurredAt.Before(windowStart) || ev.OccurredAt.After(asOf) {
			continue
		}
		total += float64(ev.Quantity)
	}
	return total / float64(fallbackWindowDays)
}

// safetyStock is the larger of the configured minimum stock and the
// configured fraction of gross demand
func (p *Planner) safetyStock(minimumStock, grossDemand entities.Quantity) entities.Quantity {
	buffer := entities.Quantity(math.Round(float64(grossDemand) * p.thresholds.SafetyStockFactor))
	if buffer < minimumStock {
		return minimumStock
	}
	return buffer
}

// economicOrderQuantity applies the Wilson formula with the configured
// ordering cost and holding rate, floored at minimum stock. Non-positive
// demand or unit cost degrades to minimum stock instead of failing.
func (p *Planner) economicOrderQuantity(
	annualDemand entities.Quantity,
	unitCost decimal.Decimal,
	minimumStock entities.Quantity,
) entities.Quantity {
	if annualDemand <= 0 || !unitCost.IsPositive() {
		return minimumStock
	}

	orderingCost, _ := p.thresholds.OrderingCost.Float64()
	unitCostF, _ := unitCost.Float64()
	holding := p.thresholds.HoldingRate * unitCostF
	if holding <= 0 {
		return minimumStock
	}

	eoq := math.Sqrt(2 * float64(annualDemand) * orderingCost / holding)
	if math.IsNaN(eoq) || math.IsInf(eoq, 0) {
		return minimumStock
	}

	quantity := entities.Quantity(math.Round(eoq))
	if quantity < minimumStock {
		return minimumStock
	}
	return quantity
}

// classifyPriority applies the stock-ratio rules in order; the first match
// wins. The critical boundary is inclusive: a product sitting exactly at the
// configured ratio is already critica.
func (p *Planner) classifyPriority(
	snapshot *entities.ProductSnapshot,
	demand30 entities.Quantity,
) entities.Priority {
	minimum := snapshot.MinimumStock
	if minimum < 1 {
		minimum = 1
	}
	ratio := float64(snapshot.CurrentStock) / float64(minimum)

	switch {
	case ratio <= p.thresholds.CriticalStockRatio:
		return entities.PriorityCritica
	case ratio < p.thresholds.LowStockRatio || demand30 > snapshot.CurrentStock:
		return entities.PriorityAlta
	case demand30 > 0 || snapshot.UnitPrice.GreaterThan(p.thresholds.HighUnitValue):
		return entities.PriorityMedia
	default:
		return entities.PriorityBaja
	}
}

// selectSupplier prefers the designated supplier when it has stock; otherwise
// the lowest price-plus-weighted-lead-time score among suppliers with stock
func (p *Planner) selectSupplier(snapshot *entities.ProductSnapshot) *entities.SupplierOffer {
	if preferred := snapshot.PreferredSupplier(); preferred != nil && preferred.StockAvailable > 0 {
		return preferred
	}

	var best *entities.SupplierOffer
	bestScore := math.Inf(1)
	for i := range snapshot.Suppliers {
		offer := &snapshot.Suppliers[i]
		if offer.StockAvailable <= 0 {
			continue
		}
		price, _ := offer.UnitPrice.Float64()
		score := price + float64(offer.LeadTimeDays)*p.thresholds.LeadTimeWeight
		if score < bestScore || (score == bestScore && best != nil && offer.SupplierID < best.SupplierID) {
			bestScore = score
			best = offer
		}
	}
	return best
}

// buildRecommendation condenses the plan into the single replenishment
// recommendation for this run
func (p *Planner) buildRecommendation(
	snapshot *entities.ProductSnapshot,
	plan *dto.ProductPlan,
	demand30 entities.Quantity,
	asOf time.Time,
) (*entities.ReplenishmentRecommendation, error) {
	net30 := plan.NetRequirement(30)
	suggested := entities.Quantity(0)
	if net30 > 0 {
		suggested = net30
		if plan.EOQ > suggested {
			suggested = plan.EOQ
		}
	}

	estimatedCost := decimal.Zero
	if plan.SupplierID != "" {
		estimatedCost = plan.EstimatedCost
	}

	reasoning := fmt.Sprintf(
		"stock %d, minimo %d, demanda 30d %d, requerimiento neto %d, cobertura %.1f dias",
		snapshot.CurrentStock, snapshot.MinimumStock, demand30, net30, plan.CoverageDays)

	return entities.NewReplenishmentRecommendation(
		snapshot.ProductID,
		plan.Priority,
		suggested,
		snapshot.CurrentStock,
		snapshot.MinimumStock,
		plan.CoverageDays,
		plan.SupplierID,
		estimatedCost,
		reasoning,
		asOf,
	)
}

// accumulateInvestment adds each period's net requirement valued at the
// resolved supplier price, falling back to unit cost
func (p *Planner) accumulateInvestment(
	master *dto.MasterPlan,
	snapshot *entities.ProductSnapshot,
	plan *dto.ProductPlan,
) {
	unitValue := snapshot.UnitCost
	if plan.SupplierID != "" {
		for _, offer := range snapshot.Suppliers {
			if offer.SupplierID == plan.SupplierID {
				unitValue = offer.UnitPrice
				break
			}
		}
	}
	for _, req := range plan.Requirements {
		if req.NetRequirement <= 0 {
			continue
		}
		cost := unitValue.Mul(decimal.NewFromInt(int64(req.NetRequirement)))
		master.InvestmentByPeriod[req.PeriodDays] = master.InvestmentByPeriod[req.PeriodDays].Add(cost)
	}
}

// buildCalendar schedules critica and alta products in week 1 and remaining
// products with a positive net requirement in week 2, grouped by supplier
func (p *Planner) buildCalendar(plans []*dto.ProductPlan) *dto.PurchaseCalendar {
	week1 := dto.CalendarWeek{Week: 1, Suppliers: make(map[entities.SupplierID][]dto.CalendarEntry)}
	week2 := dto.CalendarWeek{Week: 2, Suppliers: make(map[entities.SupplierID][]dto.CalendarEntry)}

	for _, plan := range plans {
		urgent := plan.Priority == entities.PriorityCritica || plan.Priority == entities.PriorityAlta
		net30 := plan.NetRequirement(30)

		quantity := entities.Quantity(0)
		if plan.Recommendation != nil {
			quantity = plan.Recommendation.SuggestedQuantity
		}
		if quantity == 0 && urgent {
			quantity = plan.EOQ
		}

		entry := dto.CalendarEntry{
			ProductID:     plan.ProductID,
			SupplierID:    plan.SupplierID,
			Quantity:      quantity,
			EstimatedCost: plan.EstimatedCost,
		}

		switch {
		case urgent:
			week1.Suppliers[plan.SupplierID] = append(week1.Suppliers[plan.SupplierID], entry)
		case net30 > 0:
			week2.Suppliers[plan.SupplierID] = append(week2.Suppliers[plan.SupplierID], entry)
		}
	}

	return &dto.PurchaseCalendar{Weeks: []dto.CalendarWeek{week1, week2}}
}

func (p *Planner) record(event runlog.Event) {
	if p.recorder != nil {
		p.recorder.Record(event)
	}
}

// coverageDays reports how many days the current stock covers at the recent
// daily demand rate, with a sentinel when demand is zero
func coverageDays(currentStock entities.Quantity, avgDaily float64) float64 {
	if avgDaily <= 0 {
		return noCoverageSentinel
	}
	coverage := float64(currentStock) / avgDaily
	if coverage > noCoverageSentinel {
		return noCoverageSentinel
	}
	if coverage < 0 {
		return 0
	}
	return coverage
}
