package service

import (
	"math"
	"testing"
)

func TestHoldingsService_Recommendations(t *testing.T) {
	prices := &mockPrices{prices: map[string]float64{
		"BTCUSDT": 67908.63,
		"ETHUSDT": 1972.18,
	}}
	s := NewHoldingsService(prices)

	recs := s.Recommendations()
	if len(recs) != 4 {
		t.Fatalf("Recommendations returned %d entries, want 4", len(recs))
	}

	btc := recs[0]
	if btc.Symbol != "BTC" || btc.Allocation != 45 {
		t.Errorf("Unexpected first entry: %+v", btc)
	}
	if btc.CurrentPrice != 67908.63 {
		t.Errorf("CurrentPrice = %v, want cache value", btc.CurrentPrice)
	}

	wantUpside := math.Round((95000-67908.63)/67908.63*100*10) / 10
	if math.Abs(btc.Upside-wantUpside) > 1e-9 {
		t.Errorf("Upside = %v, want %v", btc.Upside, wantUpside)
	}

	// Суммарная аллокация каталога - 100%
	var total float64
	for _, r := range recs {
		total += r.Allocation
	}
	if total != 100 {
		t.Errorf("Total allocation = %v, want 100", total)
	}
}

func TestHoldingsService_MissingPriceGivesZeroCurrent(t *testing.T) {
	s := NewHoldingsService(&mockPrices{prices: map[string]float64{}})

	for _, rec := range s.Recommendations() {
		if rec.CurrentPrice != 0 || rec.Upside != 0 {
			t.Errorf("%s: current/upside = %v/%v without a price", rec.Symbol, rec.CurrentPrice, rec.Upside)
		}
	}
}
