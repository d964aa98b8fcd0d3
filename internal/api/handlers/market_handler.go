package handlers

import (
	"net/http"

	"tradebot/internal/models"
)

// MarketDataSource определяет зависимости MarketHandler
type MarketDataSource interface {
	Snapshot() []models.Ticker
	Live() bool
}

// MarketLiveResponse - ответ /api/market/live
//
// Флаг live показывает, удался ли последний цикл опроса провайдера.
// Данные присутствуют всегда: при сбое отдается последний успешный снимок.
type MarketLiveResponse struct {
	Live bool            `json:"live"`
	Data []models.Ticker `json:"data"`
}

// MarketHandler обрабатывает запросы рыночных данных
type MarketHandler struct {
	market MarketDataSource
}

// NewMarketHandler создает новый MarketHandler
func NewMarketHandler(market MarketDataSource) *MarketHandler {
	return &MarketHandler{market: market}
}

// GetPrices возвращает текущие цены по всем отслеживаемым символам
// GET /api/prices
//
// Response:
// - 200 OK: объект symbol -> price
func (h *MarketHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	snapshot := h.market.Snapshot()

	prices := make(map[string]float64, len(snapshot))
	for _, ticker := range snapshot {
		prices[ticker.Symbol] = ticker.Price
	}

	respondWithJSON(w, http.StatusOK, prices)
}

// GetMarketLive возвращает полные тикеры с флагом актуальности
// GET /api/market/live
//
// Response:
// - 200 OK: {live: bool, data: [tickers]}
//
// Endpoint никогда не возвращает ошибку из-за недоступности провайдера:
// live=false сигнализирует, что данные могли устареть.
func (h *MarketHandler) GetMarketLive(w http.ResponseWriter, r *http.Request) {
	snapshot := h.market.Snapshot()
	if snapshot == nil {
		snapshot = []models.Ticker{}
	}

	respondWithJSON(w, http.StatusOK, MarketLiveResponse{
		Live: h.market.Live(),
		Data: snapshot,
	})
}
