package market

import (
	"context"
	"sync"
	"time"

	"tradebot/internal/models"
	"tradebot/pkg/retry"
	"tradebot/pkg/utils"
)

// TickerFetcher источник рыночных данных для опроса
type TickerFetcher interface {
	FetchTickers(ctx context.Context, symbols []string) ([]models.Ticker, error)
}

// PriceBroadcaster получатель успешных обновлений цен
type PriceBroadcaster interface {
	BroadcastPriceUpdate(tickers []models.Ticker)
}

// SymbolSource отдаёт актуальный список символов для опроса
//
// Список приходит из настроек (tradingPairs) и может меняться
// между циклами без перезапуска поллера.
type SymbolSource interface {
	TradingPairs() []string
}

// Poller периодически обновляет кэш цен из внешнего провайдера
//
// Неудачный цикл только сбрасывает флаг live: кэш сохраняет
// последние известные значения, следующий цикл пробует снова.
type Poller struct {
	fetcher  TickerFetcher
	cache    *Cache
	symbols  SymbolSource
	hub      PriceBroadcaster // может быть nil
	interval time.Duration
	logger   *utils.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewPoller создаёт поллер с указанным интервалом
func NewPoller(fetcher TickerFetcher, cache *Cache, symbols SymbolSource, hub PriceBroadcaster, interval time.Duration) *Poller {
	return &Poller{
		fetcher:  fetcher,
		cache:    cache,
		symbols:  symbols,
		hub:      hub,
		interval: interval,
		logger:   utils.L().WithComponent("market-poller"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает цикл опроса в отдельной горутине
//
// Первое обновление выполняется сразу, не дожидаясь интервала.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

// Stop останавливает цикл опроса и дожидается его завершения
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	<-p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refresh(ctx)
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// refresh выполняет один цикл обновления кэша
func (p *Poller) refresh(ctx context.Context) {
	symbols := p.symbols.TradingPairs()
	if len(symbols) == 0 {
		return
	}

	// Короткий retry внутри цикла: бюджет попыток должен
	// укладываться в интервал опроса
	cfg := retry.Config{
		MaxRetries:   2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
		RetryIf:      retry.RetryIfNotContext,
	}

	tickers, err := retry.DoWithResult(ctx, func() ([]models.Ticker, error) {
		return p.fetcher.FetchTickers(ctx, symbols)
	}, cfg)
	if err != nil {
		p.cache.MarkStale()
		p.logger.Warn("Market data refresh failed, serving cached prices",
			utils.Int("symbols", len(symbols)),
			utils.Err(err))
		return
	}

	p.cache.Refresh(tickers, time.Now().UTC())

	if p.hub != nil {
		p.hub.BroadcastPriceUpdate(tickers)
	}
}
