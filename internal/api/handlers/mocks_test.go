package handlers

import (
	"context"
	"time"

	"tradebot/internal/models"
	"tradebot/internal/service"
)

// ============ Mock StatusProvider ============

type mockStatus struct {
	summary  *models.StatusSummary
	trades   []*models.ClosedTrade
	gotLimit int
}

func (m *mockStatus) Summary(now time.Time) *models.StatusSummary {
	return m.summary
}

func (m *mockStatus) RecentTrades(limit int) []*models.ClosedTrade {
	m.gotLimit = limit
	return m.trades
}

// ============ Mock MarketDataSource ============

type mockMarket struct {
	tickers []models.Ticker
	live    bool
}

func (m *mockMarket) Snapshot() []models.Ticker {
	return m.tickers
}

func (m *mockMarket) Live() bool {
	return m.live
}

// ============ Mock BotController ============

type mockBot struct {
	settings        *models.BotSettings
	updateErr       error
	setRunningCalls []bool
	lastUpdate      *service.UpdateSettingsRequest
}

func newMockBot() *mockBot {
	return &mockBot{settings: models.DefaultSettings()}
}

func (m *mockBot) GetSettings() *models.BotSettings {
	return m.settings.Clone()
}

func (m *mockBot) UpdateSettings(req *service.UpdateSettingsRequest) (*models.BotSettings, error) {
	m.lastUpdate = req
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if req.PaperTrading != nil {
		m.settings.PaperTrading = *req.PaperTrading
	}
	if req.Notifications != nil {
		m.settings.Notifications = *req.Notifications
	}
	if req.TradingPairs != nil {
		m.settings.TradingPairs = append([]string(nil), (*req.TradingPairs)...)
	}
	return m.settings.Clone(), nil
}

func (m *mockBot) SetRunning(running bool) *models.BotSettings {
	m.setRunningCalls = append(m.setRunningCalls, running)
	m.settings.Running = running
	return m.settings.Clone()
}

// ============ Mock BalanceProvider ============

type mockAccount struct {
	balance *models.AccountBalance
}

func (m *mockAccount) GetBalance(ctx context.Context) *models.AccountBalance {
	return m.balance
}

// ============ Mock RecommendationSource ============

type mockHoldings struct {
	recs []models.HoldingRecommendation
}

func (m *mockHoldings) Recommendations() []models.HoldingRecommendation {
	return m.recs
}

// ============ Коллабораторы для реального StrategyService ============

// nopPersister считает вызовы Save, ничего не записывая
type nopPersister struct {
	saveCalls int
}

func (p *nopPersister) Save(catalog []*models.StrategyConfig) error {
	p.saveCalls++
	return nil
}

// zeroStats отдаёт пустые агрегаты для любой стратегии
type zeroStats struct{}

func (zeroStats) StatsFor(strategyID string) models.StrategyStats { return models.StrategyStats{} }
func (zeroStats) TotalStats() models.StrategyStats                { return models.StrategyStats{} }
func (zeroStats) Recent(n int) []*models.ClosedTrade              { return nil }
func (zeroStats) ByStrategy(strategyID string) []*models.ClosedTrade {
	return nil
}
