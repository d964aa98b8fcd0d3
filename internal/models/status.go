package models

import "time"

// Ticker представляет рыночные данные по одному инструменту
//
// Снимок 24-часовой статистики от внешнего провайдера. Кэш хранит
// последнее успешно полученное значение для каждого символа.
type Ticker struct {
	Symbol           string    `json:"symbol"`
	Price            float64   `json:"price"`
	Change24h        float64   `json:"change24h"`
	ChangePercent24h float64   `json:"changePercent24h"`
	Volume           float64   `json:"volume"`
	High24h          float64   `json:"high24h"`
	Low24h           float64   `json:"low24h"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// StatusSummary представляет сводку состояния бота
//
// Производное значение: вычисляется из движка, журнала и настроек
// в момент запроса, нигде не хранится.
type StatusSummary struct {
	BotRunning          bool    `json:"botRunning"`
	DailyProfit         float64 `json:"dailyProfit"`
	CumulativeProfit    float64 `json:"cumulativeProfit"`
	OpenCount           int     `json:"openCount"`
	OpenProfitableCount int     `json:"openProfitableCount"`
	TotalClosedCount    int     `json:"totalClosedCount"`
	WinRate             float64 `json:"winRate"`
	PaperTrading        bool    `json:"paperTrading"`
}

// StrategyStats представляет агрегаты стратегии из журнала сделок
type StrategyStats struct {
	TradesCount int     `json:"tradesCount"`
	WinRate     float64 `json:"winRate"`
	Performance float64 `json:"performance"` // суммарная реализованная прибыль
}

// EnrichedStrategy объединяет конфигурацию стратегии с её агрегатами
type EnrichedStrategy struct {
	StrategyConfig
	StrategyStats
}
