package models

import "time"

// BotSettings представляет глобальные настройки бота
//
// Хранится одним плоским JSON-документом (settings.json), целиком
// перезаписываемым при каждой успешной мутации. Флаг Running —
// "желаемое состояние" движка; восстанавливается при старте процесса.
type BotSettings struct {
	PaperTrading  bool      `json:"paperTrading"`
	Notifications bool      `json:"notifications"`
	TradingPairs  []string  `json:"tradingPairs"`
	Running       bool      `json:"running"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DefaultSettings возвращает настройки по умолчанию
//
// Используются при первом старте и как fallback при нечитаемом файле.
func DefaultSettings() *BotSettings {
	return &BotSettings{
		PaperTrading:  true,
		Notifications: true,
		TradingPairs: []string{
			"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT",
			"ADAUSDT", "DOTUSDT", "LINKUSDT", "AVAXUSDT",
		},
		Running: false,
	}
}

// Clone возвращает копию настроек
func (s *BotSettings) Clone() *BotSettings {
	c := *s
	c.TradingPairs = append([]string(nil), s.TradingPairs...)
	return &c
}
