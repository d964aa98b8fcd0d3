package utils

import (
	"time"
)

// timeutil.go - утилиты для работы со временем
//
// Назначение:
// Границы календарных периодов для агрегации торговой статистики.
// Дневная прибыль сбрасывается при смене календарного дня (UTC),
// поэтому все функции работают в UTC.

// GetDayStartFrom возвращает начало дня для указанного времени в UTC
func GetDayStartFrom(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, принадлежат ли два момента одному календарному дню UTC
func SameDay(a, b time.Time) bool {
	return GetDayStartFrom(a).Equal(GetDayStartFrom(b))
}
