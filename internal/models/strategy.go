package models

import "errors"

// Категории стратегий
//
// Категория определяет поведение симуляции: вероятность открытия сделки
// на каждом тике, диапазон задержки до закрытия и распределение
// синтетического выхода. Сами константы живут в internal/bot/profile.go.
const (
	CategoryScalping     = "scalping"
	CategorySwing        = "swing"
	CategoryAccumulation = "accumulation"
)

// Ошибки валидации конфигурации стратегии
var (
	ErrInvalidPositionSize = errors.New("position size must be greater than 0")
	ErrInvalidTargetProfit = errors.New("target profit must be greater than 0")
	ErrInvalidStopLoss     = errors.New("stop loss must be greater than 0")
	ErrUnknownCategory     = errors.New("unknown strategy category")
)

// StrategyConfig представляет конфигурацию торговой стратегии
//
// Каталог стратегий фиксирован: записи создаются при старте из
// persisted-файла или встроенных дефолтов и никогда не удаляются в
// течение работы процесса — только включаются/выключаются.
// JSON-теги соответствуют внешнему контракту API (camelCase).
type StrategyConfig struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"` // scalping, swing, accumulation
	Symbol          string  `json:"symbol"`   // BTCUSDT
	Enabled         bool    `json:"enabled"`
	TargetProfitPct float64 `json:"targetProfitPct"` // целевая прибыль, %
	StopLossPct     float64 `json:"stopLossPct"`     // стоп-лосс, %
	PositionSize    float64 `json:"positionSize"`    // размер позиции в котируемой валюте
}

// Validate проверяет инварианты конфигурации
func (s *StrategyConfig) Validate() error {
	if s.PositionSize <= 0 {
		return ErrInvalidPositionSize
	}
	if s.TargetProfitPct <= 0 {
		return ErrInvalidTargetProfit
	}
	if s.StopLossPct <= 0 {
		return ErrInvalidStopLoss
	}
	switch s.Category {
	case CategoryScalping, CategorySwing, CategoryAccumulation:
	default:
		return ErrUnknownCategory
	}
	return nil
}

// DefaultCatalog возвращает встроенный каталог стратегий
//
// Используется при первом старте и когда persisted-файл отсутствует
// или нечитаем.
func DefaultCatalog() []*StrategyConfig {
	return []*StrategyConfig{
		{
			ID:              "scalping-btc",
			Name:            "BTC Micro Scalper",
			Category:        CategoryScalping,
			Symbol:          "BTCUSDT",
			Enabled:         true,
			TargetProfitPct: 0.15,
			StopLossPct:     0.08,
			PositionSize:    100,
		},
		{
			ID:              "swing-eth",
			Name:            "ETH Swing Trader",
			Category:        CategorySwing,
			Symbol:          "ETHUSDT",
			Enabled:         true,
			TargetProfitPct: 2.5,
			StopLossPct:     1.2,
			PositionSize:    200,
		},
	}
}

// Clone возвращает копию конфигурации
//
// Сервис отдаёт наружу только копии: каталог принадлежит реестру,
// внешние читатели не должны иметь указателей на его записи.
func (s *StrategyConfig) Clone() *StrategyConfig {
	c := *s
	return &c
}
