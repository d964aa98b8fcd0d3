package bot

import (
	"fmt"
	"math"
	"testing"
	"time"

	"tradebot/internal/models"
)

func makeTrade(strategyID string, profit float64) *models.ClosedTrade {
	return &models.ClosedTrade{
		Position: models.Position{
			ID:         fmt.Sprintf("trade-%s-%v", strategyID, profit),
			StrategyID: strategyID,
			Symbol:     "BTCUSDT",
			Direction:  models.DirectionBuy,
			Status:     models.PositionClosed,
		},
		ExitTime: time.Now().UTC(),
		Profit:   profit,
	}
}

func TestLedger_EmptyLedger(t *testing.T) {
	l := NewLedger(100)

	if got := l.Recent(10); len(got) != 0 {
		t.Errorf("Recent on empty ledger returned %d trades", len(got))
	}
	if got := l.ByStrategy("scalping-btc"); len(got) != 0 {
		t.Errorf("ByStrategy on empty ledger returned %d trades", len(got))
	}

	stats := l.StatsFor("scalping-btc")
	if stats.TradesCount != 0 || stats.Performance != 0 {
		t.Errorf("Unexpected stats for unknown strategy: %+v", stats)
	}
	// Win rate пустой выборки ровно 0, без деления на ноль
	if stats.WinRate != 0 {
		t.Errorf("WinRate of empty subset = %v, want 0", stats.WinRate)
	}
}

func TestLedger_AppendAndStats(t *testing.T) {
	l := NewLedger(100)

	l.Append(makeTrade("scalping-btc", 1.5))
	l.Append(makeTrade("scalping-btc", -0.5))
	l.Append(makeTrade("swing-eth", 10))
	l.Append(makeTrade("scalping-btc", 2.0))

	stats := l.StatsFor("scalping-btc")
	if stats.TradesCount != 3 {
		t.Errorf("TradesCount = %d, want 3", stats.TradesCount)
	}
	if math.Abs(stats.WinRate-2.0/3.0) > 1e-9 {
		t.Errorf("WinRate = %v, want 2/3", stats.WinRate)
	}
	if math.Abs(stats.Performance-3.0) > 1e-9 {
		t.Errorf("Performance = %v, want 3.0", stats.Performance)
	}

	total := l.TotalStats()
	if total.TradesCount != 4 {
		t.Errorf("Total TradesCount = %d, want 4", total.TradesCount)
	}
	if math.Abs(total.WinRate-0.75) > 1e-9 {
		t.Errorf("Total WinRate = %v, want 0.75", total.WinRate)
	}
	if math.Abs(l.TotalProfit()-13.0) > 1e-9 {
		t.Errorf("TotalProfit = %v, want 13.0", l.TotalProfit())
	}
}

func TestLedger_ZeroProfitIsNotAWin(t *testing.T) {
	l := NewLedger(100)
	l.Append(makeTrade("scalping-btc", 0))

	stats := l.StatsFor("scalping-btc")
	if stats.WinRate != 0 {
		t.Errorf("Zero-profit trade counted as win: WinRate = %v", stats.WinRate)
	}
}

func TestLedger_RecentChronologicalOrder(t *testing.T) {
	l := NewLedger(100)
	for i := 1; i <= 5; i++ {
		l.Append(makeTrade("s", float64(i)))
	}

	recent := l.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Recent(3) returned %d trades", len(recent))
	}
	// Хронологический порядок: самая старая из трёх первой
	if recent[0].Profit != 3 || recent[1].Profit != 4 || recent[2].Profit != 5 {
		t.Errorf("Unexpected order: %v, %v, %v", recent[0].Profit, recent[1].Profit, recent[2].Profit)
	}
}

func TestLedger_RecentBounds(t *testing.T) {
	l := NewLedger(100)
	l.Append(makeTrade("s", 1))
	l.Append(makeTrade("s", 2))

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero means all", 0, 2},
		{"negative means all", -5, 2},
		{"more than window", 50, 2},
		{"exact", 2, 2},
		{"less", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Recent(tt.n); len(got) != tt.want {
				t.Errorf("Recent(%d) returned %d trades, want %d", tt.n, len(got), tt.want)
			}
		})
	}
}

func TestLedger_CapTrimsDisplayWindowOnly(t *testing.T) {
	l := NewLedger(3)

	for i := 1; i <= 5; i++ {
		l.Append(makeTrade("s", float64(i)))
	}

	// Окно отображения обрезано до 3 последних
	recent := l.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("Expected window of 3, got %d", len(recent))
	}
	if recent[0].Profit != 3 || recent[2].Profit != 5 {
		t.Errorf("Window holds wrong trades: first %v, last %v", recent[0].Profit, recent[2].Profit)
	}

	// Агрегаты считают всю историю, обрезка их не трогает
	stats := l.StatsFor("s")
	if stats.TradesCount != 5 {
		t.Errorf("TradesCount = %d, want 5 (totals must survive trimming)", stats.TradesCount)
	}
	if math.Abs(stats.Performance-15) > 1e-9 {
		t.Errorf("Performance = %v, want 15", stats.Performance)
	}
}

func TestLedger_ByStrategy(t *testing.T) {
	l := NewLedger(100)
	l.Append(makeTrade("a", 1))
	l.Append(makeTrade("b", 2))
	l.Append(makeTrade("a", 3))

	trades := l.ByStrategy("a")
	if len(trades) != 2 {
		t.Fatalf("ByStrategy(a) returned %d trades, want 2", len(trades))
	}
	if trades[0].Profit != 1 || trades[1].Profit != 3 {
		t.Errorf("Unexpected trades: %v, %v", trades[0].Profit, trades[1].Profit)
	}
}
