package service

import (
	"context"
	"time"

	"tradebot/internal/bot"
	"tradebot/internal/market"
	"tradebot/internal/models"
	"tradebot/internal/repository"
	"tradebot/internal/storage"
	"tradebot/internal/websocket"
)

// TradeStatsSource определяет интерфейс источника агрегатов по сделкам
type TradeStatsSource interface {
	StatsFor(strategyID string) models.StrategyStats
	TotalStats() models.StrategyStats
	Recent(n int) []*models.ClosedTrade
	ByStrategy(strategyID string) []*models.ClosedTrade
}

// EngineStatus определяет интерфейс чтения состояния движка
type EngineStatus interface {
	IsRunning() bool
	OpenPositions() []*models.Position
	DailyProfit(now time.Time) float64
	CumulativeProfit() float64
}

// EngineController определяет интерфейс управления движком
type EngineController interface {
	Start()
	Stop()
	IsRunning() bool
}

// PriceQuoter определяет интерфейс чтения цен из кэша
type PriceQuoter interface {
	Price(symbol string) (float64, bool)
}

// BalanceFetcher определяет интерфейс клиента биржевого аккаунта
type BalanceFetcher interface {
	FetchBalance(ctx context.Context) (*models.AccountBalance, error)
	Configured() bool
}

// StrategyPersister определяет интерфейс персистентности каталога
type StrategyPersister interface {
	Save(catalog []*models.StrategyConfig) error
}

// SettingsPersister определяет интерфейс персистентности настроек
type SettingsPersister interface {
	Save(settings *models.BotSettings) error
}

// PaperTradingSource определяет интерфейс чтения флага бумажной торговли
type PaperTradingSource interface {
	IsPaperTrading() bool
}

// Проверяем, что реальные коллабораторы реализуют интерфейсы
var _ TradeStatsSource = (*bot.Ledger)(nil)
var _ EngineStatus = (*bot.Engine)(nil)
var _ EngineController = (*bot.Engine)(nil)
var _ PriceQuoter = (*market.Cache)(nil)
var _ BalanceFetcher = (*market.AccountClient)(nil)
var _ StrategyPersister = (*storage.StrategyStore)(nil)
var _ SettingsPersister = (*storage.SettingsStore)(nil)

// Проверяем, что сервисы закрывают интерфейсы смежных пакетов
var _ bot.StrategySource = (*StrategyService)(nil)
var _ bot.Notifier = (*EngineNotifier)(nil)
var _ PushSink = (*websocket.Hub)(nil)
var _ bot.PriceSource = (*market.Cache)(nil)
var _ bot.TradeArchive = (*repository.TradeArchive)(nil)
var _ bot.Notifier = (*websocket.Hub)(nil)
var _ market.PriceBroadcaster = (*websocket.Hub)(nil)
var _ market.SymbolSource = (*SettingsService)(nil)
var _ PaperTradingSource = (*SettingsService)(nil)
