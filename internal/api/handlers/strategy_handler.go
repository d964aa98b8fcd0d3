package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/models"
	"tradebot/internal/service"
)

// StrategyManager определяет зависимости StrategyHandler
type StrategyManager interface {
	ListEnriched() []*models.EnrichedStrategy
	Update(id string, req *service.UpdateStrategyRequest) (*models.StrategyConfig, error)
}

// StrategyHandler обрабатывает запросы каталога стратегий
type StrategyHandler struct {
	strategies StrategyManager
}

// NewStrategyHandler создает новый StrategyHandler
func NewStrategyHandler(strategies StrategyManager) *StrategyHandler {
	return &StrategyHandler{strategies: strategies}
}

// GetStrategies возвращает каталог стратегий с агрегатами из журнала
// GET /api/strategies
//
// Response:
// - 200 OK: массив стратегий в порядке каталога
func (h *StrategyHandler) GetStrategies(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.strategies.ListEnriched())
}

// UpdateStrategy применяет частичное обновление к стратегии
// PATCH /api/strategies/{id}
//
// Request Body (все поля опциональны):
//
//	{
//	  "enabled": false,
//	  "targetProfitPct": 0.2,
//	  "stopLossPct": 0.1,
//	  "positionSize": 500
//	}
//
// Response:
// - 200 OK: обновленная стратегия
// - 400 Bad Request: нечитаемое тело или невалидные параметры
// - 404 Not Found: стратегия не найдена
//
// Поля с неожиданным типом игнорируются по отдельности: применяются
// только корректно типизированные поля.
func (h *StrategyHandler) UpdateStrategy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var raw map[string]jsoniter.RawMessage
	if err := fastJSON.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	var req service.UpdateStrategyRequest
	var enabled bool
	if decodeField(raw, "enabled", &enabled) {
		req.Enabled = &enabled
	}
	var targetProfit float64
	if decodeField(raw, "targetProfitPct", &targetProfit) {
		req.TargetProfitPct = &targetProfit
	}
	var stopLoss float64
	if decodeField(raw, "stopLossPct", &stopLoss) {
		req.StopLossPct = &stopLoss
	}
	var positionSize float64
	if decodeField(raw, "positionSize", &positionSize) {
		req.PositionSize = &positionSize
	}

	updated, err := h.strategies.Update(id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// handleServiceError конвертирует ошибки сервиса в HTTP ответы
func (h *StrategyHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStrategyNotFound):
		respondWithError(w, http.StatusNotFound, "strategy_not_found", "Strategy not found", err.Error())
	case errors.Is(err, models.ErrInvalidPositionSize),
		errors.Is(err, models.ErrInvalidTargetProfit),
		errors.Is(err, models.ErrInvalidStopLoss):
		respondWithError(w, http.StatusBadRequest, "invalid_parameters", "Invalid strategy parameters", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Failed to update strategy", err.Error())
	}
}
