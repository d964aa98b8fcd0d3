package handlers

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/models"
	"tradebot/internal/service"
)

// BotController определяет зависимости BotHandler
type BotController interface {
	GetSettings() *models.BotSettings
	UpdateSettings(req *service.UpdateSettingsRequest) (*models.BotSettings, error)
	SetRunning(running bool) *models.BotSettings
}

// BotHandler обрабатывает команды управления ботом и его настройки
type BotHandler struct {
	bot BotController
}

// NewBotHandler создает новый BotHandler
func NewBotHandler(bot BotController) *BotHandler {
	return &BotHandler{bot: bot}
}

// StartBot включает торговый движок
// POST /api/bot/start
//
// Идемпотентен: повторный запуск уже работающего бота возвращает 200.
//
// Response:
// - 200 OK: {"status": "started", "message": "Trading bot is now active"}
func (h *BotHandler) StartBot(w http.ResponseWriter, r *http.Request) {
	h.bot.SetRunning(true)

	respondWithJSON(w, http.StatusOK, SuccessResponse{
		Status:  "started",
		Message: "Trading bot is now active",
	})
}

// StopBot выключает торговый движок
// POST /api/bot/stop
//
// Открытые позиции не отменяются: они дозакрываются по своим таймерам.
//
// Response:
// - 200 OK: {"status": "stopped", "message": "Trading bot has been stopped"}
func (h *BotHandler) StopBot(w http.ResponseWriter, r *http.Request) {
	h.bot.SetRunning(false)

	respondWithJSON(w, http.StatusOK, SuccessResponse{
		Status:  "stopped",
		Message: "Trading bot has been stopped",
	})
}

// GetSettings возвращает текущие настройки бота
// GET /api/bot/settings
//
// Response:
// - 200 OK: {paperTrading, notifications, tradingPairs, running, updatedAt}
func (h *BotHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.bot.GetSettings())
}

// UpdateSettings применяет частичное обновление настроек
// POST /api/bot/settings
//
// Request Body (все поля опциональны):
//
//	{
//	  "paperTrading": true,
//	  "notifications": false,
//	  "tradingPairs": ["BTCUSDT", "ETHUSDT"]
//	}
//
// Response:
// - 200 OK: обновленные настройки
// - 400 Bad Request: нечитаемое тело или пустой список пар
//
// Поля с неожиданным типом игнорируются по отдельности: применяются
// только корректно типизированные поля.
func (h *BotHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var raw map[string]jsoniter.RawMessage
	if err := fastJSON.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return
	}

	var req service.UpdateSettingsRequest
	var paperTrading bool
	if decodeField(raw, "paperTrading", &paperTrading) {
		req.PaperTrading = &paperTrading
	}
	var notifications bool
	if decodeField(raw, "notifications", &notifications) {
		req.Notifications = &notifications
	}
	var tradingPairs []string
	if decodeField(raw, "tradingPairs", &tradingPairs) {
		req.TradingPairs = &tradingPairs
	}

	updated, err := h.bot.UpdateSettings(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTradingPairs) {
			respondWithError(w, http.StatusBadRequest, "invalid_parameters", "Trading pairs list cannot be empty", err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Failed to update settings", err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
