package bot

import (
	"time"

	"tradebot/internal/models"
)

// Profile параметры симуляции для категории стратегий
//
// Выход моделируется относительным смещением цены:
// exit = entry * (1 + ExitOffsetBase + u*ExitOffsetSpan), u ∈ [0,1).
type Profile struct {
	// OpenProbability вероятность открытия позиции на одном тике
	OpenProbability float64

	// Диапазон задержки до закрытия позиции
	MinHoldDelay time.Duration
	MaxHoldDelay time.Duration

	// Распределение смещения цены выхода
	ExitOffsetBase float64
	ExitOffsetSpan float64

	// RandomDirection true = направление выбирается случайно,
	// false = всегда покупка
	RandomDirection bool
}

// profiles таблица констант симуляции по категориям
//
// Скальпинг: частые короткие сделки с малым смещением, слегка
// смещённым в плюс. Свинг: редкие длинные сделки с широким разбросом
// в обе стороны. Накопление: самые редкие и длинные, консервативный
// разброс.
var profiles = map[string]Profile{
	models.CategoryScalping: {
		OpenProbability: 0.3,
		MinHoldDelay:    30 * time.Second,
		MaxHoldDelay:    90 * time.Second,
		ExitOffsetBase:  -0.001,
		ExitOffsetSpan:  0.003,
		RandomDirection: false,
	},
	models.CategorySwing: {
		OpenProbability: 0.1,
		MinHoldDelay:    5 * time.Minute,
		MaxHoldDelay:    15 * time.Minute,
		ExitOffsetBase:  -0.015,
		ExitOffsetSpan:  0.05,
		RandomDirection: true,
	},
	models.CategoryAccumulation: {
		OpenProbability: 0.05,
		MinHoldDelay:    15 * time.Minute,
		MaxHoldDelay:    45 * time.Minute,
		ExitOffsetBase:  -0.02,
		ExitOffsetSpan:  0.08,
		RandomDirection: false,
	},
}

// ProfileFor возвращает профиль симуляции для категории
//
// Неизвестная категория не открывает позиций: второй результат false,
// вызывающая сторона пропускает стратегию.
func ProfileFor(category string) (Profile, bool) {
	p, ok := profiles[category]
	return p, ok
}

// HoldDelay выбирает задержку до закрытия по значению u ∈ [0,1)
func (p Profile) HoldDelay(u float64) time.Duration {
	span := p.MaxHoldDelay - p.MinHoldDelay
	return p.MinHoldDelay + time.Duration(u*float64(span))
}

// ExitOffset выбирает смещение цены выхода по значению u ∈ [0,1)
func (p Profile) ExitOffset(u float64) float64 {
	return p.ExitOffsetBase + u*p.ExitOffsetSpan
}
