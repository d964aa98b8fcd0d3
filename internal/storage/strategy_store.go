package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

// StrategyStore персистентность каталога стратегий
//
// Документ strategies.json: плоский JSON-массив конфигураций.
// Порядок записей в файле задаёт порядок каталога.
type StrategyStore struct {
	mu   sync.Mutex
	path string
}

// NewStrategyStore создаёт store для указанной директории данных
func NewStrategyStore(dataDir string) *StrategyStore {
	return &StrategyStore{
		path: filepath.Join(dataDir, "strategies.json"),
	}
}

// Load читает каталог стратегий с диска
//
// При отсутствующем или нечитаемом файле возвращает defaults:
// сервер всегда стартует с работоспособным каталогом.
func (s *StrategyStore) Load(defaults []*models.StrategyConfig) []*models.StrategyConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	var catalog []*models.StrategyConfig
	if err := readFile(s.path, &catalog); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			utils.Warn("Failed to load strategies file, using defaults",
				utils.String("path", s.path),
				utils.Err(err))
		}
		return defaults
	}

	if len(catalog) == 0 {
		return defaults
	}

	return catalog
}

// Save атомарно записывает весь каталог стратегий
func (s *StrategyStore) Save(catalog []*models.StrategyConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFileAtomic(s.path, catalog)
}
