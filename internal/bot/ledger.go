package bot

import (
	"sync"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// strategyTotals накопленные агрегаты одной стратегии
//
// Считаются в момент добавления сделки и не зависят от обрезки
// окна отображения.
type strategyTotals struct {
	count  int
	wins   int
	profit float64
}

// Ledger журнал закрытых сделок
//
// Логически append-only: записи никогда не мутируются и не
// переупорядочиваются. Для отображения хранится окно последних cap
// сделок; агрегаты (количество, доля прибыльных, суммарная прибыль)
// накапливаются отдельно и обрезкой окна не искажаются.
type Ledger struct {
	mu     sync.RWMutex
	trades []*models.ClosedTrade
	cap    int

	byStrategy map[string]*strategyTotals
	total      strategyTotals
}

// NewLedger создаёт журнал с указанным окном отображения
func NewLedger(cap int) *Ledger {
	if cap < 1 {
		cap = 1
	}
	return &Ledger{
		cap:        cap,
		byStrategy: make(map[string]*strategyTotals),
	}
}

// Append добавляет закрытую сделку
//
// Никогда не отказывает: при переполнении окна вытесняется самая
// старая запись, агрегаты при этом не трогаются.
func (l *Ledger) Append(trade *models.ClosedTrade) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, trade)
	if len(l.trades) > l.cap {
		overflow := len(l.trades) - l.cap
		l.trades = append([]*models.ClosedTrade(nil), l.trades[overflow:]...)
	}

	totals := l.byStrategy[trade.StrategyID]
	if totals == nil {
		totals = &strategyTotals{}
		l.byStrategy[trade.StrategyID] = totals
	}

	totals.count++
	l.total.count++
	totals.profit += trade.Profit
	l.total.profit += trade.Profit
	if trade.IsProfitable() {
		totals.wins++
		l.total.wins++
	}
}

// Recent возвращает последние n сделок в хронологическом порядке
//
// n <= 0 или n больше окна — возвращается всё окно.
func (l *Ledger) Recent(n int) []*models.ClosedTrade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.trades) {
		n = len(l.trades)
	}

	result := make([]*models.ClosedTrade, n)
	copy(result, l.trades[len(l.trades)-n:])
	return result
}

// ByStrategy возвращает сделки стратегии из окна отображения
func (l *Ledger) ByStrategy(strategyID string) []*models.ClosedTrade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []*models.ClosedTrade
	for _, t := range l.trades {
		if t.StrategyID == strategyID {
			result = append(result, t)
		}
	}
	return result
}

// StatsFor возвращает агрегаты стратегии за всю историю
//
// Для стратегии без сделок все значения нулевые, win rate ровно 0.
func (l *Ledger) StatsFor(strategyID string) models.StrategyStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := l.byStrategy[strategyID]
	if totals == nil {
		return models.StrategyStats{}
	}
	return totals.stats()
}

// TotalStats возвращает агрегаты по всем сделкам
func (l *Ledger) TotalStats() models.StrategyStats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total.stats()
}

// TotalProfit возвращает суммарную реализованную прибыль за всю историю
func (l *Ledger) TotalProfit() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total.profit
}

func (t *strategyTotals) stats() models.StrategyStats {
	return models.StrategyStats{
		TradesCount: t.count,
		WinRate:     utils.CalculateWinRate(t.wins, t.count),
		Performance: t.profit,
	}
}
