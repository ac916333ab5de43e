package marketdata

import (
	"context"
	"math"
	"strconv"
)

// PriceRecord is one observed mandi price. Providers return records
// newest first.
type PriceRecord struct {
	Price float64
	Date  string
	Mandi string
}

// PriceProvider serves recent mandi prices for a crop and location.
type PriceProvider interface {
	Prices(ctx context.Context, crop, location string) ([]PriceRecord, error)
}

// Prediction is the ML model's price outlook. Zero fields mean the model
// did not produce that horizon; callers fall back to trend estimates.
type Prediction struct {
	NextDayPrice   float64
	NextWeekPrice  float64
	NextMonthPrice float64
	// Action is the model's suggestion, e.g. "sell_now" or "hold".
	Action string
}

// PredictionProvider serves ML price predictions.
type PredictionProvider interface {
	Predict(ctx context.Context, crop, location string) (*Prediction, error)
}

// TrendPercent derives the day-over-day price trend from the two most
// recent records, clamped to ±5%.
func TrendPercent(prices []PriceRecord) float64 {
	if len(prices) < 2 {
		return 0
	}
	p0 := prices[0].Price
	p1 := prices[1].Price
	if p1 == 0 {
		return 0
	}
	pct := (p0 - p1) / p1
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		pct = 0
	}
	return math.Max(-0.05, math.Min(0.05, pct))
}

// EstimateFuture projects a price forward by scaling the daily trend.
func EstimateFuture(latest, trendPct, scale float64) float64 {
	val := latest * (1 + trendPct*scale)
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return latest
	}
	return val
}

// FormatMoney renders a price with two decimals for answer text.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
