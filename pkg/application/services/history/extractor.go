package history

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvex/demandplan/pkg/domain/entities"
)

// DefaultWindowDays is the default lookback window for history extraction
const DefaultWindowDays = 365

// Extractor turns raw transaction events into dense daily series or
// per-customer order histories
type Extractor struct {
	WindowDays int
}

// NewExtractor creates an extractor with the default lookback window
func NewExtractor() *Extractor {
	return &Extractor{WindowDays: DefaultWindowDays}
}

// NewExtractorWithWindow creates an extractor with a custom lookback window
func NewExtractorWithWindow(windowDays int) *Extractor {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Extractor{WindowDays: windowDays}
}

// DailySeries builds a dense, zero-filled daily sales series for one product
// from its transaction events, covering first sale within the window through
// asOf. Returns nil when no sale events fall inside the window; the caller
// must supply a fallback.
func (e *Extractor) DailySeries(
	events []*entities.TransactionEvent,
	asOf time.Time,
) *entities.DailySeries {
	windowStart := truncateDay(asOf).AddDate(0, 0, -e.WindowDays)
	end := truncateDay(asOf)

	type dayBucket struct {
		quantity float64
		value    decimal.Decimal
		units    int64
	}
	buckets := make(map[time.Time]*dayBucket)

	var productID entities.ProductID
	var firstSale time.Time
	for _, ev := range events {
		if ev.EventType != entities.Sale {
			continue
		}
		day := truncateDay(ev.OccurredAt)
		if day.Before(windowStart) || day.After(end) {
			continue
		}
		productID = ev.ProductID
		if firstSale.IsZero() || day.Before(firstSale) {
			firstSale = day
		}
		b := buckets[day]
		if b == nil {
			b = &dayBucket{value: decimal.Zero}
			buckets[day] = b
		}
		b.quantity += float64(ev.Quantity)
		b.value = b.value.Add(ev.Value())
		b.units += int64(ev.Quantity)
	}

	if len(buckets) == 0 {
		return nil
	}

	// Mean unit price over all sold units in the window, used to normalize
	// per-day prices and to fill zero-sale days.
	totalValue := decimal.Zero
	var totalUnits int64
	for _, b := range buckets {
		totalValue = totalValue.Add(b.value)
		totalUnits += b.units
	}
	meanPrice := decimal.Zero
	if totalUnits > 0 {
		meanPrice = totalValue.Div(decimal.NewFromInt(totalUnits))
	}

	series := &entities.DailySeries{
		ProductID: productID,
		Start:     firstSale,
		End:       end,
		MeanPrice: meanPrice,
	}

	days := int(end.Sub(firstSale).Hours()/24) + 1
	series.Points = make([]entities.DailyPoint, 0, days)

	meanPriceF, _ := meanPrice.Float64()
	var sum7, sum30 float64
	for i := 0; i < days; i++ {
		date := firstSale.AddDate(0, 0, i)
		quantity := 0.0
		price := meanPrice
		if b, ok := buckets[date]; ok {
			quantity = b.quantity
			if b.units > 0 {
				price = b.value.Div(decimal.NewFromInt(b.units))
			}
		}

		point := entities.DailyPoint{
			Date:       date,
			Quantity:   quantity,
			AvgPrice:   price,
			DayOfWeek:  int(date.Weekday()),
			Month:      int(date.Month()),
			DayOfMonth: date.Day(),
			Weekend:    date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		}
		point.StartOfMonth = point.DayOfMonth <= 5
		point.EndOfMonth = point.DayOfMonth >= 25

		// Trailing rolling means over up to 7 and 30 observations.
		sum7 += quantity
		sum30 += quantity
		if i >= 7 {
			sum7 -= series.Points[i-7].Quantity
		}
		if i >= 30 {
			sum30 -= series.Points[i-30].Quantity
		}
		point.Rolling7 = sum7 / float64(min(i+1, 7))
		point.Rolling30 = sum30 / float64(min(i+1, 30))

		// Percent change vs the observation 7 days earlier, 0 when undefined.
		if i >= 7 {
			prev := series.Points[i-7].Quantity
			if prev != 0 {
				point.Trend7 = (quantity - prev) / prev
			}
		}

		point.RelativePrice = 1.0
		if meanPriceF > 0 {
			priceF, _ := price.Float64()
			point.RelativePrice = priceF / meanPriceF
		}

		series.Points = append(series.Points, point)
	}

	return series
}

// CustomerHistory groups a customer's sale events into orders. Lines recorded
// at the same instant belong to one order. Returns nil when the customer has
// no sale events within the window.
func (e *Extractor) CustomerHistory(
	events []*entities.TransactionEvent,
	asOf time.Time,
) *entities.CustomerOrderHistory {
	windowStart := truncateDay(asOf).AddDate(0, 0, -e.WindowDays)

	grouped := make(map[time.Time][]*entities.TransactionEvent)
	var customerID entities.CustomerID
	for _, ev := range events {
		if ev.EventType != entities.Sale || ev.CustomerID == "" {
			continue
		}
		if ev.OccurredAt.Before(windowStart) || ev.OccurredAt.After(asOf) {
			continue
		}
		customerID = ev.CustomerID
		grouped[ev.OccurredAt] = append(grouped[ev.OccurredAt], ev)
	}

	if len(grouped) == 0 {
		return nil
	}

	history := &entities.CustomerOrderHistory{
		CustomerID: customerID,
		Orders:     make([]entities.CustomerOrder, 0, len(grouped)),
	}
	for occurredAt, lines := range grouped {
		order := entities.CustomerOrder{
			OccurredAt: occurredAt,
			Lines:      make([]entities.OrderLine, 0, len(lines)),
			TotalValue: decimal.Zero,
		}
		for _, ev := range lines {
			order.Lines = append(order.Lines, entities.OrderLine{
				ProductID: ev.ProductID,
				Quantity:  ev.Quantity,
				UnitPrice: ev.UnitPrice,
			})
			order.TotalQuantity += ev.Quantity
			order.TotalValue = order.TotalValue.Add(ev.Value())
		}
		history.Orders = append(history.Orders, order)
	}

	sort.Slice(history.Orders, func(i, j int) bool {
		return history.Orders[i].OccurredAt.Before(history.Orders[j].OccurredAt)
	})

	return history
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
