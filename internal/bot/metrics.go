package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики движка симуляции
// ============================================================
//
// Использование:
// - Grafana дашборды для визуализации
// - Анализ поведения симуляции в длительных прогонах

// ============ Счётчики сделок ============

// PositionsOpened - количество открытых позиций
var PositionsOpened = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "positions_opened_total",
		Help:      "Total number of simulated positions opened",
	},
	[]string{"strategy", "category"},
)

// TradesClosed - количество закрытых сделок по результату
var TradesClosed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "trades_closed_total",
		Help:      "Total number of simulated trades closed",
	},
	[]string{"strategy", "result"}, // result: win, loss
)

// RealizedProfit - суммарная реализованная прибыль
//
// Gauge, а не Counter: прибыль знаковая и сумма может убывать.
var RealizedProfit = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "realized_profit_usdt",
		Help:      "Cumulative realized profit in USDT since process start",
	},
)

// SkippedNoPrice - пропуски открытия из-за отсутствия цены в кэше
var SkippedNoPrice = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "opens_skipped_no_price_total",
		Help:      "Opens skipped because the price cache has no entry for the symbol",
	},
	[]string{"symbol"},
)

// ============ Метрики состояния ============

// OpenPositionsGauge - текущее количество открытых позиций
var OpenPositionsGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "open_positions",
		Help:      "Current number of open simulated positions",
	},
)

// PendingCloses - размер очереди отложенных закрытий
var PendingCloses = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "pending_closes",
		Help:      "Current size of the delayed close queue",
	},
)

// EngineRunning - состояние движка (1=запущен, 0=остановлен)
var EngineRunning = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "tradebot",
		Subsystem: "sim",
		Name:      "engine_running",
		Help:      "Engine state (1=running, 0=stopped)",
	},
)

// ============ Вспомогательные функции ============

// recordOpen записывает открытие позиции
func recordOpen(strategyID, category string) {
	PositionsOpened.WithLabelValues(strategyID, category).Inc()
}

// recordClose записывает закрытие сделки
func recordClose(strategyID string, profit float64) {
	result := "loss"
	if profit > 0 {
		result = "win"
	}
	TradesClosed.WithLabelValues(strategyID, result).Inc()
	RealizedProfit.Add(profit)
}

// recordEngineState записывает состояние движка
func recordEngineState(running bool) {
	if running {
		EngineRunning.Set(1)
	} else {
		EngineRunning.Set(0)
	}
}
