package websocket

import (
	"time"

	"tradebot/internal/models"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypePriceUpdate - свежий пакет тикеров
	// Отправляется после каждого успешного цикла опроса провайдера
	MessageTypePriceUpdate MessageType = "priceUpdate"

	// MessageTypeTradeClosed - закрытие синтетической сделки
	MessageTypeTradeClosed MessageType = "tradeClosed"

	// MessageTypeStatusUpdate - обновление сводки состояния
	// Отправляется после закрытия сделки
	MessageTypeStatusUpdate MessageType = "statusUpdate"

	// MessageTypeBotState - изменение состояния движка (start/stop)
	MessageTypeBotState MessageType = "botState"
)

// BaseMessage - базовая структура для всех WebSocket сообщений
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// PriceUpdateMessage - сообщение с пакетом свежих тикеров
type PriceUpdateMessage struct {
	BaseMessage
	Data []models.Ticker `json:"data"`
}

// TradeClosedMessage - сообщение о закрытой сделке
type TradeClosedMessage struct {
	BaseMessage
	Data *models.ClosedTrade `json:"data"`
}

// StatusUpdateMessage - сообщение со сводкой состояния
type StatusUpdateMessage struct {
	BaseMessage
	Data *models.StatusSummary `json:"data"`
}

// BotStateMessage - сообщение об изменении состояния движка
type BotStateMessage struct {
	BaseMessage
	Running bool `json:"running"`
}

// ============ Фабричные функции для создания сообщений ============

// NewPriceUpdateMessage создает сообщение обновления цен
func NewPriceUpdateMessage(tickers []models.Ticker) *PriceUpdateMessage {
	return &PriceUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypePriceUpdate,
			Timestamp: time.Now().UTC(),
		},
		Data: tickers,
	}
}

// NewTradeClosedMessage создает сообщение о закрытой сделке
func NewTradeClosedMessage(trade *models.ClosedTrade) *TradeClosedMessage {
	return &TradeClosedMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeTradeClosed,
			Timestamp: time.Now().UTC(),
		},
		Data: trade,
	}
}

// NewStatusUpdateMessage создает сообщение со сводкой состояния
func NewStatusUpdateMessage(summary *models.StatusSummary) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeStatusUpdate,
			Timestamp: time.Now().UTC(),
		},
		Data: summary,
	}
}

// NewBotStateMessage создает сообщение об изменении состояния движка
func NewBotStateMessage(running bool) *BotStateMessage {
	return &BotStateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeBotState,
			Timestamp: time.Now().UTC(),
		},
		Running: running,
	}
}
