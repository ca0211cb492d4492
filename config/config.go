package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Thresholds holds every tunable boundary and cost constant used by the
// planning and customer-analysis rules. The defaults are the documented
// reference values; all of them can be overridden from the environment.
type Thresholds struct {
	// History and fitting
	LookbackDays    int // transaction lookback window
	MinObservations int // minimum daily observations for ML fitting

	// Customer segmentation
	VIPTotalValue           decimal.Decimal // premium segment spend threshold
	AttentionTotalValue     decimal.Decimal // VIP-attention marketing threshold
	InactiveRecencyDays     int             // recency beyond which a customer is inactivo
	ReactivationRecencyDays int             // recency that triggers a reactivation campaign
	FrequentMaxIntervalDays float64         // frecuente segment purchase interval
	FrequentMinOrders       int
	PremiumMinOrders        int
	LoyaltyMaxIntervalDays  float64 // loyalty-program marketing interval
	LoyaltyMinOrders        int
	CrossSellMinProbability float64
	CrossSellLimit          int

	// Replenishment
	OrderingCost       decimal.Decimal // fixed cost per purchase order
	HoldingRate        float64         // annual holding rate fraction
	SafetyStockFactor  float64         // safety stock as fraction of gross demand
	CriticalStockRatio float64         // stock/minimum ratio at or below which priority is critica
	LowStockRatio      float64         // stock/minimum ratio below which priority is alta
	HighUnitValue      decimal.Decimal // unit value that lifts priority to media
	LeadTimeWeight     float64         // supplier score weight per lead-time day
}

// Default returns the reference thresholds
func Default() Thresholds {
	return Thresholds{
		LookbackDays:    365,
		MinObservations: 10,

		VIPTotalValue:           decimal.NewFromInt(5_000_000),
		AttentionTotalValue:     decimal.NewFromInt(1_000_000),
		InactiveRecencyDays:     180,
		ReactivationRecencyDays: 60,
		FrequentMaxIntervalDays: 30,
		FrequentMinOrders:       3,
		PremiumMinOrders:        5,
		LoyaltyMaxIntervalDays:  15,
		LoyaltyMinOrders:        3,
		CrossSellMinProbability: 0.5,
		CrossSellLimit:          3,

		OrderingCost:       decimal.NewFromInt(50_000),
		HoldingRate:        0.25,
		SafetyStockFactor:  0.2,
		CriticalStockRatio: 0.5,
		LowStockRatio:      1.0,
		HighUnitValue:      decimal.NewFromInt(100_000),
		LeadTimeWeight:     10,
	}
}

// Load returns the default thresholds overridden by any environment
// variables found. A .env file in the working directory is honored when
// present.
func Load() Thresholds {
	_ = godotenv.Load()

	t := Default()
	t.LookbackDays = getEnvInt("PLAN_LOOKBACK_DAYS", t.LookbackDays)
	t.MinObservations = getEnvInt("PLAN_MIN_OBSERVATIONS", t.MinObservations)
	t.VIPTotalValue = getEnvDecimal("PLAN_VIP_TOTAL_VALUE", t.VIPTotalValue)
	t.AttentionTotalValue = getEnvDecimal("PLAN_ATTENTION_TOTAL_VALUE", t.AttentionTotalValue)
	t.InactiveRecencyDays = getEnvInt("PLAN_INACTIVE_RECENCY_DAYS", t.InactiveRecencyDays)
	t.ReactivationRecencyDays = getEnvInt("PLAN_REACTIVATION_RECENCY_DAYS", t.ReactivationRecencyDays)
	t.FrequentMaxIntervalDays = getEnvFloat("PLAN_FREQUENT_MAX_INTERVAL_DAYS", t.FrequentMaxIntervalDays)
	t.FrequentMinOrders = getEnvInt("PLAN_FREQUENT_MIN_ORDERS", t.FrequentMinOrders)
	t.PremiumMinOrders = getEnvInt("PLAN_PREMIUM_MIN_ORDERS", t.PremiumMinOrders)
	t.LoyaltyMaxIntervalDays = getEnvFloat("PLAN_LOYALTY_MAX_INTERVAL_DAYS", t.LoyaltyMaxIntervalDays)
	t.LoyaltyMinOrders = getEnvInt("PLAN_LOYALTY_MIN_ORDERS", t.LoyaltyMinOrders)
	t.CrossSellMinProbability = getEnvFloat("PLAN_CROSS_SELL_MIN_PROBABILITY", t.CrossSellMinProbability)
	t.CrossSellLimit = getEnvInt("PLAN_CROSS_SELL_LIMIT", t.CrossSellLimit)
	t.OrderingCost = getEnvDecimal("PLAN_ORDERING_COST", t.OrderingCost)
	t.HoldingRate = getEnvFloat("PLAN_HOLDING_RATE", t.HoldingRate)
	t.SafetyStockFactor = getEnvFloat("PLAN_SAFETY_STOCK_FACTOR", t.SafetyStockFactor)
	t.CriticalStockRatio = getEnvFloat("PLAN_CRITICAL_STOCK_RATIO", t.CriticalStockRatio)
	t.LowStockRatio = getEnvFloat("PLAN_LOW_STOCK_RATIO", t.LowStockRatio)
	t.HighUnitValue = getEnvDecimal("PLAN_HIGH_UNIT_VALUE", t.HighUnitValue)
	t.LeadTimeWeight = getEnvFloat("PLAN_LEAD_TIME_WEIGHT", t.LeadTimeWeight)
	return t
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
