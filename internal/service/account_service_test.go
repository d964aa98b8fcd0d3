package service

import (
	"context"
	"math"
	"testing"
	"time"

	"tradebot/internal/models"
)

func TestAccountService_NotConfigured(t *testing.T) {
	client := &mockBalanceFetcher{
		balance: &models.AccountBalance{Configured: false},
	}
	s := NewAccountService(client, &mockPrices{})

	balance := s.GetBalance(context.Background())
	if balance.Configured {
		t.Error("Configured = true without credentials")
	}
	if balance.TotalValue != 0 {
		t.Errorf("TotalValue = %v, want 0", balance.TotalValue)
	}
}

func TestAccountService_TotalValue(t *testing.T) {
	client := &mockBalanceFetcher{
		configured: true,
		balance: &models.AccountBalance{
			Configured: true,
			Balances: []models.AssetBalance{
				{Asset: "BTC", Free: 0.5, Locked: 0.1},
				{Asset: "USDT", Free: 1000, Locked: 0},
				{Asset: "XYZ", Free: 42, Locked: 0}, // нет цены в кэше
			},
			UpdatedAt: time.Now().UTC(),
		},
	}
	prices := &mockPrices{prices: map[string]float64{"BTCUSDT": 50000}}
	s := NewAccountService(client, prices)

	balance := s.GetBalance(context.Background())

	// 0.6 BTC * 50000 + 1000 USDT; XYZ без цены не входит в оценку
	want := 0.6*50000 + 1000
	if math.Abs(balance.TotalValue-want) > 1e-6 {
		t.Errorf("TotalValue = %v, want %v", balance.TotalValue, want)
	}
}

func TestAccountService_UpstreamFailureServesLastKnown(t *testing.T) {
	client := &mockBalanceFetcher{
		configured: true,
		balance: &models.AccountBalance{
			Configured: true,
			Balances:   []models.AssetBalance{{Asset: "USDT", Free: 500}},
		},
	}
	s := NewAccountService(client, &mockPrices{})

	first := s.GetBalance(context.Background())
	if first.TotalValue != 500 {
		t.Fatalf("TotalValue = %v, want 500", first.TotalValue)
	}

	// Провайдер упал - отдаётся последний успешный снимок
	client.err = errUpstreamDown
	second := s.GetBalance(context.Background())
	if !second.Configured || second.TotalValue != 500 {
		t.Errorf("Last known not served: %+v", second)
	}
	if len(second.Balances) != 1 || second.Balances[0].Asset != "USDT" {
		t.Errorf("Last known balances = %v", second.Balances)
	}
}

func TestAccountService_UpstreamFailureBeforeFirstSuccess(t *testing.T) {
	client := &mockBalanceFetcher{configured: true, err: errUpstreamDown}
	s := NewAccountService(client, &mockPrices{})

	// Ошибки провайдера никогда не отдаются как ошибка эндпоинта
	balance := s.GetBalance(context.Background())
	if !balance.Configured {
		t.Error("Configured = false with credentials present")
	}
	if len(balance.Balances) != 0 {
		t.Errorf("Balances = %v, want empty", balance.Balances)
	}
}
