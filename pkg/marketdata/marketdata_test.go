package marketdata

import "testing"

func TestTrendPercentClamped(t *testing.T) {
	prices := []PriceRecord{{Price: 3000}, {Price: 1000}}
	if got := TrendPercent(prices); got != 0.05 {
		t.Fatalf("expected clamp to 0.05, got %v", got)
	}
	prices = []PriceRecord{{Price: 1000}, {Price: 3000}}
	if got := TrendPercent(prices); got != -0.05 {
		t.Fatalf("expected clamp to -0.05, got %v", got)
	}
}

func TestTrendPercentDegenerate(t *testing.T) {
	if got := TrendPercent(nil); got != 0 {
		t.Fatalf("expected 0 for no records, got %v", got)
	}
	if got := TrendPercent([]PriceRecord{{Price: 2100}}); got != 0 {
		t.Fatalf("expected 0 for single record, got %v", got)
	}
	if got := TrendPercent([]PriceRecord{{Price: 2100}, {Price: 0}}); got != 0 {
		t.Fatalf("expected 0 when previous price is zero, got %v", got)
	}
}

func TestEstimateFuture(t *testing.T) {
	got := EstimateFuture(2000, 0.05, 0.4)
	if got != 2000*(1+0.05*0.4) {
		t.Fatalf("unexpected estimate: %v", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(2100); got != "2100.00" {
		t.Fatalf("expected 2100.00, got %s", got)
	}
	if got := FormatMoney(2099.555); got != "2099.56" {
		t.Fatalf("expected rounding to 2099.56, got %s", got)
	}
}
