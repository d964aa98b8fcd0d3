package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tradebot/internal/models"
)

// StatusProvider определяет зависимости StatusHandler
type StatusProvider interface {
	Summary(now time.Time) *models.StatusSummary
	RecentTrades(limit int) []*models.ClosedTrade
}

// StatusHandler обрабатывает запросы сводки состояния и журнала сделок
type StatusHandler struct {
	status StatusProvider
}

// NewStatusHandler создает новый StatusHandler
func NewStatusHandler(status StatusProvider) *StatusHandler {
	return &StatusHandler{status: status}
}

// GetStatus возвращает сводку состояния бота
// GET /api/status
//
// Response:
// - 200 OK: {botRunning, dailyProfit, cumulativeProfit, openCount,
//   openProfitableCount, totalClosedCount, winRate, paperTrading}
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.status.Summary(time.Now().UTC()))
}

// GetTrades возвращает последние закрытые сделки
// GET /api/trades
//
// Query Parameters:
// - limit: максимум сделок в ответе (по умолчанию 50)
//
// Response:
// - 200 OK: массив сделок в хронологическом порядке
func (h *StatusHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_limit", "Invalid limit parameter", "limit must be a number")
			return
		}
		limit = parsed
	}

	trades := h.status.RecentTrades(limit)
	if trades == nil {
		trades = []*models.ClosedTrade{}
	}
	respondWithJSON(w, http.StatusOK, trades)
}
