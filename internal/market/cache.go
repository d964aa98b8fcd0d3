package market

import (
	"sync"
	"time"

	"tradebot/internal/models"
)

// Cache хранит последние известные рыночные данные по символам
//
// Данные никогда не удаляются и не устаревают принудительно:
// при недоступном провайдере читатели продолжают видеть последние
// успешно полученные значения (last-known-good). Флаг live отражает
// исход последнего обновления.
type Cache struct {
	mu      sync.RWMutex
	tickers map[string]models.Ticker
	live    bool
}

// NewCache создаёт пустой кэш
//
// До первого успешного обновления кэш пуст и live == false.
func NewCache() *Cache {
	return &Cache{
		tickers: make(map[string]models.Ticker),
	}
}

// Get возвращает тикер по символу
//
// Второе значение false если символ ещё не появлялся в кэше.
func (c *Cache) Get(symbol string) (models.Ticker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tickers[symbol]
	return t, ok
}

// Price возвращает цену символа
//
// Второе значение false если цены нет: вызывающая сторона
// пропускает операцию, это не ошибка.
func (c *Cache) Price(symbol string) (float64, bool) {
	t, ok := c.Get(symbol)
	if !ok {
		return 0, false
	}
	return t.Price, true
}

// Snapshot возвращает копию всех тикеров
func (c *Cache) Snapshot() []models.Ticker {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.Ticker, 0, len(c.tickers))
	for _, t := range c.tickers {
		result = append(result, t)
	}
	return result
}

// Refresh атомарно вливает пакет свежих тикеров и поднимает флаг live
//
// Символы, отсутствующие в пакете, сохраняют прежние значения.
func (c *Cache) Refresh(batch []models.Ticker, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range batch {
		t.UpdatedAt = now
		c.tickers[t.Symbol] = t
	}
	c.live = true
}

// MarkStale сбрасывает флаг live после неудачного обновления
//
// Содержимое кэша при этом не трогается.
func (c *Cache) MarkStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = false
}

// Live сообщает, успешно ли прошло последнее обновление
func (c *Cache) Live() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live
}

// Size возвращает количество символов в кэше
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tickers)
}
