package classify

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/pkg/application/dto"
	"github.com/solvex/demandplan/pkg/domain/entities"
)

const (
	lookbackDays = 365
	bucketDays   = 30
	bucketCount  = 12

	// Value class cut points over the count of classified products
	aShare = 0.2
	bShare = 0.5 // cumulative: A + B

	// Variability class cut points on the coefficient of variation
	xLimit = 0.5
	yLimit = 1.0
)

// Classifier performs combined ABC (annual value) and XYZ (demand
// variability) classification over a one-year lookback
type Classifier struct{}

// NewClassifier creates an ABC/XYZ classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

type productStats struct {
	productID entities.ProductID
	value     decimal.Decimal
	quantity  entities.Quantity
	cv        float64
}

// Classify computes annual value and monthly-bucket variability per product
// and assigns combined class labels. Products with no sales in the window are
// excluded. The output is deterministic: identical inputs yield identical
// classifications.
func (c *Classifier) Classify(
	eventsByProduct map[entities.ProductID][]*entities.TransactionEvent,
	asOf time.Time,
) *dto.ClassificationResult {
	windowStart := asOf.AddDate(0, 0, -lookbackDays)

	stats := make([]productStats, 0, len(eventsByProduct))
	for productID, events := range eventsByProduct {
		var buckets [bucketCount]float64
		value := decimal.Zero
		var quantity entities.Quantity

		for _, ev := range events {
			if ev.EventType != entities.Sale {
				continue
			}
			if ev.OccurredAt.Before(windowStart) || ev.OccurredAt.After(asOf) {
				continue
			}
			value = value.Add(ev.Value())
			quantity += ev.Quantity

			bucket := int(asOf.Sub(ev.OccurredAt).Hours() / 24 / bucketDays)
			if bucket >= bucketCount {
				bucket = bucketCount - 1
			}
			buckets[bucket] += float64(ev.Quantity)
		}

		if quantity <= 0 {
			continue
		}

		stats = append(stats, productStats{
			productID: productID,
			value:     value,
			quantity:  quantity,
			cv:        bucketVariation(buckets),
		})
	}

	// Sort by annual value descending; ties broken by product ID so repeated
	// runs over unchanged data classify identically.
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].value.Equal(stats[j].value) {
			return stats[i].value.GreaterThan(stats[j].value)
		}
		return stats[i].productID < stats[j].productID
	})

	result := &dto.ClassificationResult{
		GeneratedAt: asOf,
		Classes:     make([]entities.ABCXYZClass, 0, len(stats)),
		Groups:      make(map[string][]entities.ABCXYZClass),
	}

	total := len(stats)
	for rank, s := range stats {
		class := entities.ABCXYZClass{
			ProductID:              s.productID,
			ValueClass:             valueClass(rank, total),
			VariabilityClass:       variabilityClass(s.cv),
			AnnualValue:            s.value,
			AnnualQuantity:         s.quantity,
			CoefficientOfVariation: s.cv,
		}
		result.Classes = append(result.Classes, class)
		result.Groups[class.Label()] = append(result.Groups[class.Label()], class)
	}

	return result
}

// valueClass assigns A to the top 20% of products by value rank, B to the
// next 30% and C to the rest
func valueClass(rank, total int) entities.ValueClass {
	position := float64(rank) / float64(total)
	switch {
	case position < aShare:
		return entities.ValueA
	case position < bShare:
		return entities.ValueB
	default:
		return entities.ValueC
	}
}

// variabilityClass maps the coefficient of variation to X, Y or Z
func variabilityClass(cv float64) entities.VariabilityClass {
	switch {
	case cv < xLimit:
		return entities.VariabilityX
	case cv < yLimit:
		return entities.VariabilityY
	default:
		return entities.VariabilityZ
	}
}

// bucketVariation is the coefficient of variation of quantity across the 12
// synthetic 30-day buckets
func bucketVariation(buckets [bucketCount]float64) float64 {
	mean := 0.0
	for _, b := range buckets {
		mean += b
	}
	mean /= bucketCount
	if mean <= 0 {
		return 0
	}

	variance := 0.0
	for _, b := range buckets {
		variance += (b - mean) * (b - mean)
	}
	return math.Sqrt(variance/bucketCount) / mean
}
