package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// PlanningPeriods are the replenishment periods evaluated per product, in days
var PlanningPeriods = []int{7, 30, 60, 90}

// PeriodRequirement is the net-requirement computation for one period
type PeriodRequirement struct {
	PeriodDays     int               `json:"period_days"`
	GrossDemand    entities.Quantity `json:"gross_demand"`
	Available      entities.Quantity `json:"available"`
	SafetyStock    entities.Quantity `json:"safety_stock"`
	NetRequirement entities.Quantity `json:"net_requirement"`
}

// ProductPlan is the complete planning output for one product
type ProductPlan struct {
	ProductID      entities.ProductID                    `json:"product_id"`
	ProductName    string                                `json:"product_name"`
	Priority       entities.Priority                     `json:"-"`
	PriorityLabel  string                                `json:"priority"`
	Requirements   []PeriodRequirement                   `json:"requirements"`
	EOQ            entities.Quantity                     `json:"economic_order_qty"`
	CoverageDays   float64                               `json:"coverage_days"`
	SupplierID     entities.SupplierID                   `json:"supplier_id,omitempty"`
	EstimatedCost  decimal.Decimal                       `json:"estimated_cost"`
	Forecasts      []*entities.ForecastResult            `json:"forecasts,omitempty"`
	Recommendation *entities.ReplenishmentRecommendation `json:"recommendation,omitempty"`
}

// NetRequirement returns the net requirement for a period, 0 when the period
// was not evaluated
func (p *ProductPlan) NetRequirement(periodDays int) entities.Quantity {
	for _, req := range p.Requirements {
		if req.PeriodDays == periodDays {
			return req.NetRequirement
		}
	}
	return 0
}

// Alert flags a product classified critica in the master plan
type Alert struct {
	ProductID entities.ProductID `json:"product_id"`
	Message   string             `json:"message"`
}

// SkippedProduct records a product whose planning failed; the batch run
// continues past it
type SkippedProduct struct {
	ProductID entities.ProductID `json:"product_id"`
	Reason    string             `json:"reason"`
}

// CalendarEntry schedules one product's purchase in the optimized calendar
type CalendarEntry struct {
	ProductID     entities.ProductID  `json:"product_id"`
	SupplierID    entities.SupplierID `json:"supplier_id,omitempty"`
	Quantity      entities.Quantity   `json:"quantity"`
	EstimatedCost decimal.Decimal     `json:"estimated_cost"`
}

// CalendarWeek groups scheduled purchases for one week by supplier
type CalendarWeek struct {
	Week      int                                     `json:"week"`
	Suppliers map[entities.SupplierID][]CalendarEntry `json:"suppliers"`
}

// PurchaseCalendar is the two-week purchase schedule: critical and high
// priority products in week 1, remaining positive net requirements in week 2
type PurchaseCalendar struct {
	Weeks []CalendarWeek `json:"weeks"`
}

// MasterPlan aggregates the prioritized plans of a full-catalog run
type MasterPlan struct {
	RunID              uuid.UUID               `json:"run_id"`
	GeneratedAt        time.Time               `json:"generated_at"`
	Plans              []*ProductPlan          `json:"plans"`
	InvestmentByPeriod map[int]decimal.Decimal `json:"investment_by_period"`
	Alerts             []Alert                 `json:"alerts"`
	Skipped            []SkippedProduct        `json:"skipped"`
	Calendar           *PurchaseCalendar       `json:"calendar"`
}

// ClassificationResult is the output of a full ABC/XYZ run
type ClassificationResult struct {
	GeneratedAt time.Time                         `json:"generated_at"`
	Classes     []entities.ABCXYZClass            `json:"classes"`
	Groups      map[string][]entities.ABCXYZClass `json:"groups"`
}
