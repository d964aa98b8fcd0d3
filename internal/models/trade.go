package models

import "time"

// Направления сделки
const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

// Статусы позиции
const (
	PositionOpen   = "open"
	PositionClosed = "closed"
)

// Position представляет открытую синтетическую позицию
//
// Создаётся движком при срабатывании вероятностной проверки на тике.
// Мутируется ровно один раз — при закрытии, после чего мигрирует в
// журнал сделок в виде ClosedTrade и удаляется из набора открытых.
type Position struct {
	ID         string    `json:"id"`
	StrategyID string    `json:"strategyId"`
	Symbol     string    `json:"symbol"`
	Direction  string    `json:"direction"` // buy, sell
	Quantity   float64   `json:"quantity"`  // в единицах инструмента
	EntryPrice float64   `json:"entryPrice"`
	EntryTime  time.Time `json:"entryTime"`
	Status     string    `json:"status"` // open, closed
}

// ClosedTrade представляет закрытую сделку — неизменяемую запись журнала
//
// Инвариант: после добавления в журнал запись никогда не мутируется
// и не удаляется (журнал может обрезаться для отображения, но
// логическая история append-only).
type ClosedTrade struct {
	Position
	ExitPrice float64   `json:"exitPrice"`
	ExitTime  time.Time `json:"exitTime"`
	Profit    float64   `json:"profit"` // реализованная прибыль, знаковая, в котируемой валюте
}

// RealizedProfit вычисляет реализованную прибыль для заданного выхода
//
// Для buy: (exit - entry) * qty, для sell — с обратным знаком.
// Знак результата согласован с направлением и разницей цен.
func (p *Position) RealizedProfit(exitPrice float64) float64 {
	profit := (exitPrice - p.EntryPrice) * p.Quantity
	if p.Direction == DirectionSell {
		return -profit
	}
	return profit
}

// Close возвращает ClosedTrade для позиции по заданной цене выхода
func (p *Position) Close(exitPrice float64, exitTime time.Time) *ClosedTrade {
	closed := *p
	closed.Status = PositionClosed
	return &ClosedTrade{
		Position:  closed,
		ExitPrice: exitPrice,
		ExitTime:  exitTime,
		Profit:    p.RealizedProfit(exitPrice),
	}
}

// IsProfitable возвращает true для прибыльной сделки
func (t *ClosedTrade) IsProfitable() bool {
	return t.Profit > 0
}
