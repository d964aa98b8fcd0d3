package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// SettingsStore персистентность документа настроек
//
// Документ settings.json: плоский JSON-объект, включая флаг running
// (желаемое состояние движка, восстанавливаемое при старте).
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore создаёт store для указанной директории данных
func NewSettingsStore(dataDir string) *SettingsStore {
	return &SettingsStore{
		path: filepath.Join(dataDir, "settings.json"),
	}
}

// Load читает настройки с диска
//
// При отсутствующем или нечитаемом файле возвращает настройки
// по умолчанию.
func (s *SettingsStore) Load() *models.BotSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := &models.BotSettings{}
	if err := readFile(s.path, settings); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			utils.Warn("Failed to load settings file, using defaults",
				utils.String("path", s.path),
				utils.Err(err))
		}
		return models.DefaultSettings()
	}

	return settings
}

// Save атомарно записывает весь документ настроек
func (s *SettingsStore) Save(settings *models.BotSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFileAtomic(s.path, settings)
}
