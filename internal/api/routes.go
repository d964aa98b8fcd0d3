package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradebot/internal/api/handlers"
	"tradebot/internal/api/middleware"
	"tradebot/internal/market"
	"tradebot/internal/service"
	"tradebot/internal/websocket"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	StatusService   *service.StatusService
	StrategyService *service.StrategyService
	SettingsService *service.SettingsService
	AccountService  *service.AccountService
	HoldingsService *service.HoldingsService
	MarketCache     *market.Cache
	Hub             *websocket.Hub
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Структура маршрутов:
//
// /api/
//
//	├── GET  /status                    - сводка состояния бота
//	├── GET  /prices                    - цены symbol -> price
//	├── GET  /market/live               - тикеры с флагом актуальности
//	├── GET  /strategies                - каталог стратегий
//	├── PATCH /strategies/{id}          - частичное обновление стратегии
//	├── GET  /trades?limit=             - последние закрытые сделки
//	├── POST /bot/start                 - запуск движка
//	├── POST /bot/stop                  - остановка движка
//	├── GET|POST /bot/settings          - настройки бота
//	├── GET  /account/balance           - балансы биржевого аккаунта
//	└── GET  /holdings/recommendations  - долгосрочные рекомендации
//
// /ws/stream - WebSocket для real-time обновлений
// /health    - health check
// /metrics   - Prometheus метрики
//
// Middleware применяется в следующем порядке:
// 1. Recovery (для всех маршрутов)
// 2. Logging (для всех маршрутов)
// 3. CORS (для всех маршрутов)
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)

	// Создание handlers с внедрением зависимостей
	var statusHandler *handlers.StatusHandler
	if deps != nil && deps.StatusService != nil {
		statusHandler = handlers.NewStatusHandler(deps.StatusService)
	}

	var marketHandler *handlers.MarketHandler
	if deps != nil && deps.MarketCache != nil {
		marketHandler = handlers.NewMarketHandler(deps.MarketCache)
	}

	var strategyHandler *handlers.StrategyHandler
	if deps != nil && deps.StrategyService != nil {
		strategyHandler = handlers.NewStrategyHandler(deps.StrategyService)
	}

	var botHandler *handlers.BotHandler
	if deps != nil && deps.SettingsService != nil {
		botHandler = handlers.NewBotHandler(deps.SettingsService)
	}

	var accountHandler *handlers.AccountHandler
	if deps != nil && deps.AccountService != nil {
		accountHandler = handlers.NewAccountHandler(deps.AccountService)
	}

	var holdingsHandler *handlers.HoldingsHandler
	if deps != nil && deps.HoldingsService != nil {
		holdingsHandler = handlers.NewHoldingsHandler(deps.HoldingsService)
	}

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	if statusHandler != nil {
		api.HandleFunc("/status", statusHandler.GetStatus).Methods("GET")
		api.HandleFunc("/trades", statusHandler.GetTrades).Methods("GET")
	}

	if marketHandler != nil {
		api.HandleFunc("/prices", marketHandler.GetPrices).Methods("GET")
		api.HandleFunc("/market/live", marketHandler.GetMarketLive).Methods("GET")
	}

	if strategyHandler != nil {
		api.HandleFunc("/strategies", strategyHandler.GetStrategies).Methods("GET")
		api.HandleFunc("/strategies/{id}", strategyHandler.UpdateStrategy).Methods("PATCH")
	}

	if botHandler != nil {
		api.HandleFunc("/bot/start", botHandler.StartBot).Methods("POST")
		api.HandleFunc("/bot/stop", botHandler.StopBot).Methods("POST")
		api.HandleFunc("/bot/settings", botHandler.GetSettings).Methods("GET")
		api.HandleFunc("/bot/settings", botHandler.UpdateSettings).Methods("POST")
	}

	if accountHandler != nil {
		api.HandleFunc("/account/balance", accountHandler.GetBalance).Methods("GET")
	}

	if holdingsHandler != nil {
		api.HandleFunc("/holdings/recommendations", holdingsHandler.GetRecommendations).Methods("GET")
	}

	// WebSocket route
	if deps != nil && deps.Hub != nil {
		hub := deps.Hub
		router.HandleFunc("/ws/stream", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, w, r)
		})
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Prometheus метрики
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}
