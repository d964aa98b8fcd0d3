package service

import (
	"time"

	"tradebot/internal/models"
)

// PushSink принимает события для push-рассылки клиентам
//
// Реализуется WebSocket hub'ом.
type PushSink interface {
	BroadcastTradeClosed(trade *models.ClosedTrade)
	BroadcastBotState(running bool)
	BroadcastStatusUpdate(summary *models.StatusSummary)
}

// EngineNotifier транслирует события движка в push-канал
//
// Декоратор над hub'ом: закрытие сделки меняет производную сводку
// (счётчики, win rate, прибыль), поэтому вслед за tradeClosed
// клиентам уходит свежий statusUpdate. Дашборд обновляет карточки
// без дополнительного запроса к /api/status.
type EngineNotifier struct {
	sink   PushSink
	status *StatusService
}

// NewEngineNotifier создает нотификатор движка
func NewEngineNotifier(sink PushSink, status *StatusService) *EngineNotifier {
	return &EngineNotifier{sink: sink, status: status}
}

// BroadcastTradeClosed отправляет закрытую сделку и свежую сводку
func (n *EngineNotifier) BroadcastTradeClosed(trade *models.ClosedTrade) {
	n.sink.BroadcastTradeClosed(trade)
	n.sink.BroadcastStatusUpdate(n.status.Summary(time.Now().UTC()))
}

// BroadcastBotState отправляет изменение состояния движка
func (n *EngineNotifier) BroadcastBotState(running bool) {
	n.sink.BroadcastBotState(running)
}
