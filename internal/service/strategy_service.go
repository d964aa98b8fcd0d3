package service

import (
	"errors"
	"sync"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// Ошибки сервиса стратегий
var (
	ErrStrategyNotFound = errors.New("strategy not found")
)

// StrategyService реестр торговых стратегий
//
// Отвечает за:
// - Каталог стратегий в стабильном порядке конфигурации
// - Частичные обновления (применяются только переданные поля)
// - Персистентность каталога (fire-and-forget, сбой не откатывает
//   изменение в памяти)
//
// Удаления нет: каталог фиксирован на время жизни процесса, стратегии
// только включаются и выключаются.
type StrategyService struct {
	mu      sync.RWMutex
	catalog []*models.StrategyConfig
	index   map[string]*models.StrategyConfig

	store  StrategyPersister
	stats  TradeStatsSource
	logger *utils.Logger
}

// NewStrategyService создаёт реестр поверх загруженного каталога
func NewStrategyService(catalog []*models.StrategyConfig, store StrategyPersister, stats TradeStatsSource) *StrategyService {
	index := make(map[string]*models.StrategyConfig, len(catalog))
	for _, s := range catalog {
		index[s.ID] = s
	}

	return &StrategyService{
		catalog: catalog,
		index:   index,
		store:   store,
		stats:   stats,
		logger:  utils.L().WithComponent("strategy_service"),
	}
}

// List возвращает каталог стратегий в порядке конфигурации
func (s *StrategyService) List() []*models.StrategyConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.StrategyConfig, 0, len(s.catalog))
	for _, cfg := range s.catalog {
		result = append(result, cfg.Clone())
	}
	return result
}

// ListEnriched возвращает каталог с производной статистикой из леджера
func (s *StrategyService) ListEnriched() []*models.EnrichedStrategy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.EnrichedStrategy, 0, len(s.catalog))
	for _, cfg := range s.catalog {
		result = append(result, &models.EnrichedStrategy{
			StrategyConfig: *cfg.Clone(),
			StrategyStats:  s.stats.StatsFor(cfg.ID),
		})
	}
	return result
}

// EnabledStrategies возвращает включённые стратегии в порядке каталога
//
// Снимок для движка симуляции: копии, движок не видит последующих
// изменений до следующего тика.
func (s *StrategyService) EnabledStrategies() []*models.StrategyConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.StrategyConfig
	for _, cfg := range s.catalog {
		if cfg.Enabled {
			result = append(result, cfg.Clone())
		}
	}
	return result
}

// UpdateStrategyRequest частичное обновление конфигурации стратегии
//
// Все поля опциональны: применяются только переданные. Поля с
// неподходящим типом отбрасываются декодером на уровне HTTP и сюда
// не доходят.
type UpdateStrategyRequest struct {
	Enabled         *bool    `json:"enabled,omitempty"`
	TargetProfitPct *float64 `json:"targetProfitPct,omitempty"`
	StopLossPct     *float64 `json:"stopLossPct,omitempty"`
	PositionSize    *float64 `json:"positionSize,omitempty"`
}

// Update применяет частичное обновление к стратегии
//
// Кандидат валидируется целиком до применения: невалидное значение
// не меняет каталог. Успешное изменение синхронно записывается на
// диск; сбой записи логируется, состояние в памяти остаётся
// авторитетным и будет записано при следующей успешной мутации.
func (s *StrategyService) Update(id string, req *UpdateStrategyRequest) (*models.StrategyConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.index[id]
	if !ok {
		return nil, ErrStrategyNotFound
	}

	candidate := cfg.Clone()
	if req.Enabled != nil {
		candidate.Enabled = *req.Enabled
	}
	if req.TargetProfitPct != nil {
		candidate.TargetProfitPct = *req.TargetProfitPct
	}
	if req.StopLossPct != nil {
		candidate.StopLossPct = *req.StopLossPct
	}
	if req.PositionSize != nil {
		candidate.PositionSize = *req.PositionSize
	}

	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	*cfg = *candidate

	if err := s.store.Save(s.catalog); err != nil {
		s.logger.Warn("Failed to persist strategy catalog",
			utils.Strategy(id),
			utils.Err(err))
	}

	s.logger.Info("Strategy updated",
		utils.Strategy(id),
		utils.Bool("enabled", cfg.Enabled),
		utils.Float64("position_size", cfg.PositionSize))

	return cfg.Clone(), nil
}
