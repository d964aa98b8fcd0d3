package handlers

import (
	"net/http"

	"tradebot/internal/models"
)

// RecommendationSource определяет зависимости HoldingsHandler
type RecommendationSource interface {
	Recommendations() []models.HoldingRecommendation
}

// HoldingsHandler обрабатывает запросы инвестиционных рекомендаций
type HoldingsHandler struct {
	holdings RecommendationSource
}

// NewHoldingsHandler создает новый HoldingsHandler
func NewHoldingsHandler(holdings RecommendationSource) *HoldingsHandler {
	return &HoldingsHandler{holdings: holdings}
}

// GetRecommendations возвращает курируемый список долгосрочных позиций
// GET /api/holdings/recommendations
//
// Response:
// - 200 OK: массив рекомендаций с текущими ценами и upside
func (h *HoldingsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.holdings.Recommendations())
}
