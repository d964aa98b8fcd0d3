package service

import (
	"errors"
	"sync"
	"time"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// Ошибки сервиса настроек
var (
	ErrEmptyTradingPairs = errors.New("trading pairs list must not be empty")
)

// SettingsService управляет документом настроек бота
//
// Отвечает за:
// - Чтение и частичное обновление настроек
// - Флаг желаемого состояния движка (running), переживающий рестарт
// - Синхронную запись каждой успешной мутации на диск
//
// Сбой записи логируется, состояние в памяти остаётся авторитетным.
type SettingsService struct {
	mu       sync.RWMutex
	settings *models.BotSettings

	store  SettingsPersister
	engine EngineController
	logger *utils.Logger
}

// NewSettingsService создаёт сервис поверх загруженных настроек
func NewSettingsService(settings *models.BotSettings, store SettingsPersister, engine EngineController) *SettingsService {
	return &SettingsService{
		settings: settings,
		store:    store,
		engine:   engine,
		logger:   utils.L().WithComponent("settings_service"),
	}
}

// GetSettings возвращает копию текущих настроек
func (s *SettingsService) GetSettings() *models.BotSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// UpdateSettingsRequest частичное обновление настроек
//
// Все поля опциональны - применяются только переданные.
type UpdateSettingsRequest struct {
	PaperTrading  *bool     `json:"paperTrading,omitempty"`
	Notifications *bool     `json:"notifications,omitempty"`
	TradingPairs  *[]string `json:"tradingPairs,omitempty"`
}

// UpdateSettings применяет частичное обновление настроек
func (s *SettingsService) UpdateSettings(req *UpdateSettingsRequest) (*models.BotSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.TradingPairs != nil && len(*req.TradingPairs) == 0 {
		return nil, ErrEmptyTradingPairs
	}

	if req.PaperTrading != nil {
		s.settings.PaperTrading = *req.PaperTrading
	}
	if req.Notifications != nil {
		s.settings.Notifications = *req.Notifications
	}
	if req.TradingPairs != nil {
		pairs := make([]string, len(*req.TradingPairs))
		copy(pairs, *req.TradingPairs)
		s.settings.TradingPairs = pairs
	}
	s.settings.UpdatedAt = time.Now().UTC()

	s.persistLocked()

	return s.settings.Clone(), nil
}

// SetRunning переключает желаемое состояние движка
//
// Флаг записывается на диск синхронно и восстанавливается при
// следующем старте процесса.
func (s *SettingsService) SetRunning(running bool) *models.BotSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if running {
		s.engine.Start()
	} else {
		s.engine.Stop()
	}

	s.settings.Running = running
	s.settings.UpdatedAt = time.Now().UTC()

	s.persistLocked()

	return s.settings.Clone()
}

// IsRunning сообщает фактическое состояние движка
func (s *SettingsService) IsRunning() bool {
	return s.engine.IsRunning()
}

// IsPaperTrading сообщает, включён ли режим бумажной торговли
func (s *SettingsService) IsPaperTrading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PaperTrading
}

// TradingPairs возвращает список отслеживаемых торговых пар
func (s *SettingsService) TradingPairs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pairs := make([]string, len(s.settings.TradingPairs))
	copy(pairs, s.settings.TradingPairs)
	return pairs
}

// persistLocked записывает настройки, вызывается под mu
func (s *SettingsService) persistLocked() {
	if err := s.store.Save(s.settings); err != nil {
		s.logger.Warn("Failed to persist settings", utils.Err(err))
	}
}
