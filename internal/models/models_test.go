package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

// ============================================================
// Тесты StrategyConfig
// ============================================================

func TestStrategyConfig_Validate(t *testing.T) {
	valid := StrategyConfig{
		ID:              "scalping-btc",
		Name:            "BTC Micro Scalper",
		Category:        CategoryScalping,
		Symbol:          "BTCUSDT",
		Enabled:         true,
		TargetProfitPct: 0.15,
		StopLossPct:     0.08,
		PositionSize:    100,
	}

	tests := []struct {
		name    string
		mutate  func(*StrategyConfig)
		wantErr error
	}{
		{"valid", func(s *StrategyConfig) {}, nil},
		{"zero position size", func(s *StrategyConfig) { s.PositionSize = 0 }, ErrInvalidPositionSize},
		{"negative position size", func(s *StrategyConfig) { s.PositionSize = -5 }, ErrInvalidPositionSize},
		{"zero target profit", func(s *StrategyConfig) { s.TargetProfitPct = 0 }, ErrInvalidTargetProfit},
		{"negative stop loss", func(s *StrategyConfig) { s.StopLossPct = -1 }, ErrInvalidStopLoss},
		{"unknown category", func(s *StrategyConfig) { s.Category = "hodl" }, ErrUnknownCategory},
		{"empty category", func(s *StrategyConfig) { s.Category = "" }, ErrUnknownCategory},
		{"swing category", func(s *StrategyConfig) { s.Category = CategorySwing }, nil},
		{"accumulation category", func(s *StrategyConfig) { s.Category = CategoryAccumulation }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := s.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStrategyConfig_Clone(t *testing.T) {
	original := &StrategyConfig{
		ID:           "swing-eth",
		Name:         "ETH Swing Trader",
		Category:     CategorySwing,
		PositionSize: 200,
	}

	clone := original.Clone()

	if clone == original {
		t.Fatal("Clone returned the same pointer")
	}
	if *clone != *original {
		t.Errorf("Clone mismatch: got %+v, want %+v", clone, original)
	}

	clone.PositionSize = 500
	if original.PositionSize != 200 {
		t.Error("Mutating the clone changed the original")
	}
}

// ============================================================
// Тесты Position
// ============================================================

func TestPosition_RealizedProfit(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		entry     float64
		exit      float64
		qty       float64
		expected  float64
	}{
		// Знак прибыли согласован с направлением
		{"buy price up", DirectionBuy, 100, 110, 2, 20},
		{"buy price down", DirectionBuy, 100, 95, 2, -10},
		{"sell price down", DirectionSell, 100, 90, 1, 10},
		{"sell price up", DirectionSell, 100, 105, 1, -5},
		{"flat exit", DirectionBuy, 100, 100, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Position{
				Direction:  tt.direction,
				EntryPrice: tt.entry,
				Quantity:   tt.qty,
			}

			got := p.RealizedProfit(tt.exit)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("RealizedProfit(%v) = %v, want %v", tt.exit, got, tt.expected)
			}
		})
	}
}

func TestPosition_Close(t *testing.T) {
	entryTime := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	exitTime := entryTime.Add(45 * time.Second)

	p := &Position{
		ID:         "pos-1",
		StrategyID: "scalping-btc",
		Symbol:     "BTCUSDT",
		Direction:  DirectionBuy,
		Quantity:   0.004,
		EntryPrice: 25000,
		EntryTime:  entryTime,
		Status:     PositionOpen,
	}

	trade := p.Close(25100, exitTime)

	if trade.Status != PositionClosed {
		t.Errorf("Status = %q, want %q", trade.Status, PositionClosed)
	}
	if trade.ExitPrice != 25100 {
		t.Errorf("ExitPrice = %v, want 25100", trade.ExitPrice)
	}
	if !trade.ExitTime.Equal(exitTime) {
		t.Errorf("ExitTime = %v, want %v", trade.ExitTime, exitTime)
	}
	if math.Abs(trade.Profit-0.4) > 1e-9 {
		t.Errorf("Profit = %v, want 0.4", trade.Profit)
	}

	// Исходная позиция не мутируется при закрытии
	if p.Status != PositionOpen {
		t.Error("Close mutated the original position status")
	}
}

func TestClosedTrade_IsProfitable(t *testing.T) {
	tests := []struct {
		name     string
		profit   float64
		expected bool
	}{
		{"positive", 0.5, true},
		{"negative", -0.5, false},
		{"zero is not a win", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := &ClosedTrade{Profit: tt.profit}
			if got := trade.IsProfitable(); got != tt.expected {
				t.Errorf("IsProfitable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// ============================================================
// Тесты BotSettings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if !s.PaperTrading {
		t.Error("Default settings must enable paper trading")
	}
	if s.Running {
		t.Error("Default settings must not start the bot")
	}
	if len(s.TradingPairs) != 8 {
		t.Errorf("Expected 8 default trading pairs, got %d", len(s.TradingPairs))
	}
	if s.TradingPairs[0] != "BTCUSDT" {
		t.Errorf("First default pair = %q, want BTCUSDT", s.TradingPairs[0])
	}
}

func TestBotSettings_Clone(t *testing.T) {
	original := DefaultSettings()
	clone := original.Clone()

	if clone == original {
		t.Fatal("Clone returned the same pointer")
	}

	clone.TradingPairs[0] = "XRPUSDT"
	if original.TradingPairs[0] != "BTCUSDT" {
		t.Error("Clone shares the TradingPairs slice with the original")
	}
}
