package utils

import (
	"math"
)

// math.go - математические утилиты для торговой статистики
//
// Назначение:
// Чистые функции без побочных эффектов для расчёта агрегатов
// по сделкам и нормализации значений.
//
// Функции:
// - CalculateWinRate: доля прибыльных сделок
// - CalculatePercentChange: изменение в процентах
// - CalculatePNL: прибыль/убыток по позиции
// - RoundTo: округление до n знаков

// CalculateWinRate вычисляет долю прибыльных сделок.
//
// Параметры:
//   - profitable: количество прибыльных сделок
//   - total: общее количество сделок
//
// Возвращает:
//   - Долю в диапазоне [0, 1]
//   - 0 если total <= 0 (пустая выборка не делит на ноль)
func CalculateWinRate(profitable, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(profitable) / float64(total)
}

// CalculatePercentChange вычисляет изменение в процентах относительно base.
//
// Параметры:
//   - base: исходное значение
//   - current: текущее значение
//
// Возвращает:
//   - Изменение в процентах (1.5 означает +1.5%)
//   - 0 если base <= 0
func CalculatePercentChange(base, current float64) float64 {
	if base <= 0 {
		return 0
	}
	return (current - base) / base * 100
}

// CalculatePNL расчитывает прибыль/убыток по позиции.
//
// Формулы:
//   - buy:  PNL = (P_exit - P_entry) × qty
//   - sell: PNL = (P_entry - P_exit) × qty
//
// Параметры:
//   - direction: "buy" или "sell"
//   - entryPrice: цена входа
//   - exitPrice: цена выхода или текущая цена
//   - quantity: объём позиции
//
// Возвращает:
//   - PNL в валюте котировки (USDT)
//   - 0 при некорректном объёме или направлении
func CalculatePNL(direction string, entryPrice, exitPrice, quantity float64) float64 {
	if quantity <= 0 {
		return 0
	}

	switch direction {
	case "buy":
		return (exitPrice - entryPrice) * quantity
	case "sell":
		return (entryPrice - exitPrice) * quantity
	default:
		return 0
	}
}

// RoundTo округляет значение до n знаков после запятой.
//
// Примеры:
//   - RoundTo(1.23456, 2) = 1.23
//   - RoundTo(0.005, 2) = 0.01
func RoundTo(value float64, places int) float64 {
	if places < 0 {
		return value
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
