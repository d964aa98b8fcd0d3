package service

import (
	"time"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// StatusService собирает сводку состояния бота
//
// Сводка вычисляемая, а не хранимая: каждый запрос заново выводит её
// из движка, журнала сделок, кэша цен и настроек.
type StatusService struct {
	engine EngineStatus
	ledger TradeStatsSource
	prices PriceQuoter
	paper  PaperTradingSource
}

// NewStatusService создаёт агрегатор статуса
func NewStatusService(engine EngineStatus, ledger TradeStatsSource, prices PriceQuoter, paper PaperTradingSource) *StatusService {
	return &StatusService{
		engine: engine,
		ledger: ledger,
		prices: prices,
		paper:  paper,
	}
}

// Summary возвращает сводку состояния на момент now
//
// Открытые позиции переоцениваются по текущей цене из кэша
// (mark-to-market). Позиция без цены в кэше считается нулевой по
// нереализованной прибыли, а не ошибкой.
func (s *StatusService) Summary(now time.Time) *models.StatusSummary {
	total := s.ledger.TotalStats()
	open := s.engine.OpenPositions()

	profitable := 0
	for _, pos := range open {
		price, ok := s.prices.Price(pos.Symbol)
		if !ok {
			continue
		}
		unrealized := utils.CalculatePNL(pos.Direction, pos.EntryPrice, price, pos.Quantity)
		if unrealized > 0 {
			profitable++
		}
	}

	return &models.StatusSummary{
		BotRunning:          s.engine.IsRunning(),
		DailyProfit:         s.engine.DailyProfit(now),
		CumulativeProfit:    s.engine.CumulativeProfit(),
		OpenCount:           len(open),
		OpenProfitableCount: profitable,
		TotalClosedCount:    total.TradesCount,
		WinRate:             total.WinRate,
		PaperTrading:        s.paper.IsPaperTrading(),
	}
}

// RecentTrades возвращает последние закрытые сделки
//
// limit <= 0 интерпретируется как значение по умолчанию.
func (s *StatusService) RecentTrades(limit int) []*models.ClosedTrade {
	if limit <= 0 {
		limit = defaultTradesLimit
	}
	return s.ledger.Recent(limit)
}

const defaultTradesLimit = 50
