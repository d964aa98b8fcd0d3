package service

import (
	"context"
	"errors"
	"time"

	"tradebot/internal/models"
)

// ============ Mock TradeStatsSource ============

type mockStats struct {
	statsByID map[string]models.StrategyStats
	total     models.StrategyStats
	recent    []*models.ClosedTrade
}

func (m *mockStats) StatsFor(strategyID string) models.StrategyStats {
	return m.statsByID[strategyID]
}

func (m *mockStats) TotalStats() models.StrategyStats {
	return m.total
}

func (m *mockStats) Recent(n int) []*models.ClosedTrade {
	if n <= 0 || n > len(m.recent) {
		return m.recent
	}
	return m.recent[len(m.recent)-n:]
}

func (m *mockStats) ByStrategy(strategyID string) []*models.ClosedTrade {
	var result []*models.ClosedTrade
	for _, t := range m.recent {
		if t.StrategyID == strategyID {
			result = append(result, t)
		}
	}
	return result
}

// ============ Mock persisters ============

type mockStrategyPersister struct {
	saved   [][]*models.StrategyConfig
	saveErr error
}

func (m *mockStrategyPersister) Save(catalog []*models.StrategyConfig) error {
	snapshot := make([]*models.StrategyConfig, 0, len(catalog))
	for _, cfg := range catalog {
		snapshot = append(snapshot, cfg.Clone())
	}
	m.saved = append(m.saved, snapshot)
	return m.saveErr
}

type mockSettingsPersister struct {
	saved   []*models.BotSettings
	saveErr error
}

func (m *mockSettingsPersister) Save(settings *models.BotSettings) error {
	m.saved = append(m.saved, settings.Clone())
	return m.saveErr
}

// ============ Mock engine ============

type mockEngine struct {
	running    bool
	open       []*models.Position
	daily      float64
	cumulative float64
	startCalls int
	stopCalls  int
}

func (m *mockEngine) Start()          { m.running = true; m.startCalls++ }
func (m *mockEngine) Stop()           { m.running = false; m.stopCalls++ }
func (m *mockEngine) IsRunning() bool { return m.running }

func (m *mockEngine) OpenPositions() []*models.Position {
	return m.open
}

func (m *mockEngine) DailyProfit(_ time.Time) float64 { return m.daily }
func (m *mockEngine) CumulativeProfit() float64       { return m.cumulative }

// ============ Mock prices ============

type mockPrices struct {
	prices map[string]float64
}

func (m *mockPrices) Price(symbol string) (float64, bool) {
	p, ok := m.prices[symbol]
	return p, ok
}

// ============ Mock account client ============

var errUpstreamDown = errors.New("upstream down")

type mockBalanceFetcher struct {
	balance    *models.AccountBalance
	err        error
	configured bool
	calls      int
}

func (m *mockBalanceFetcher) FetchBalance(_ context.Context) (*models.AccountBalance, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.balance, nil
}

func (m *mockBalanceFetcher) Configured() bool { return m.configured }
