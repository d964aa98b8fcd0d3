package bot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tradebot/internal/models"
	"tradebot/pkg/retry"
	"tradebot/pkg/utils"
)

// PriceSource источник текущих цен для движка
//
// Реализуется кэшем цен. Отсутствие цены — штатная ситуация:
// открытие молча пропускается.
type PriceSource interface {
	Price(symbol string) (float64, bool)
}

// StrategySource отдаёт включённые стратегии в порядке каталога
type StrategySource interface {
	EnabledStrategies() []*models.StrategyConfig
}

// Notifier получает события движка для push-рассылки клиентам
type Notifier interface {
	BroadcastTradeClosed(trade *models.ClosedTrade)
	BroadcastBotState(running bool)
}

// TradeArchive долговременное хранилище закрытых сделок
//
// Опциональный коллаборатор: ошибки записи логируются и не влияют
// на симуляцию.
type TradeArchive interface {
	InsertTrade(ctx context.Context, trade *models.ClosedTrade) error
}

// Engine движок симуляции торговли
//
// Вся мутация состояния происходит в одной горутине цикла Run:
// тики оценивают открытия, очередь закрытий исполняет отложенные
// выходы. Снаружи состояние только читается (под RWMutex).
//
// Start/Stop управляют только веткой открытия новых позиций.
// Запланированные закрытия исполняются всегда: у очереди нет
// операции отмены, поэтому остановка движка или выключение
// стратегии не оставляет "вечных" открытых позиций.
type Engine struct {
	tickInterval time.Duration
	baseline     float64

	prices     PriceSource
	strategies StrategySource
	ledger     *Ledger
	rnd        Rand
	notifier   Notifier     // может быть nil
	archive    TradeArchive // может быть nil
	logger     *utils.Logger

	// running гейтирует только ветку Idle -> Open
	running atomic.Bool

	mu    sync.RWMutex
	open  map[string]*models.Position
	queue *closeQueue

	// Дневная прибыль, привязанная к календарному дню UTC
	dailyProfit float64
	dailyDay    time.Time

	// Сумма прибыли всех закрытий с момента старта процесса
	realizedSum float64

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	// Будит цикл при добавлении более раннего закрытия
	wake chan struct{}
}

// EngineConfig параметры движка
type EngineConfig struct {
	TickInterval   time.Duration
	ProfitBaseline float64
}

// NewEngine создаёт движок симуляции
func NewEngine(cfg EngineConfig, prices PriceSource, strategies StrategySource, ledger *Ledger, rnd Rand) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 10 * time.Second
	}
	if rnd == nil {
		rnd = NewRand()
	}

	return &Engine{
		tickInterval: cfg.TickInterval,
		baseline:     cfg.ProfitBaseline,
		prices:       prices,
		strategies:   strategies,
		ledger:       ledger,
		rnd:          rnd,
		logger:       utils.L().WithComponent("engine"),
		open:         make(map[string]*models.Position),
		queue:        newCloseQueue(),
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
		wake:         make(chan struct{}, 1),
	}
}

// SetNotifier подключает push-канал (до запуска цикла)
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// SetArchive подключает архив сделок (до запуска цикла)
func (e *Engine) SetArchive(a TradeArchive) {
	e.archive = a
}

// Start включает открытие новых позиций
func (e *Engine) Start() {
	if e.running.Swap(true) {
		return
	}
	recordEngineState(true)
	e.logger.Info("Engine started")
	if e.notifier != nil {
		e.notifier.BroadcastBotState(true)
	}
}

// Stop выключает открытие новых позиций
//
// Уже запланированные закрытия продолжают исполняться.
func (e *Engine) Stop() {
	if !e.running.Swap(false) {
		return
	}
	recordEngineState(false)
	e.logger.Info("Engine stopped, pending closes will still resolve")
	if e.notifier != nil {
		e.notifier.BroadcastBotState(false)
	}
}

// IsRunning сообщает, включено ли открытие позиций
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Run запускает цикл движка и блокируется до Shutdown или отмены ctx
//
// Цикл ждёт ближайшее из двух событий: следующий тик и ближайший
// срок закрытия.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	closeTimer := time.NewTimer(time.Hour)
	if !closeTimer.Stop() {
		<-closeTimer.C
	}
	defer closeTimer.Stop()

	timerArmed := false

	rearm := func() {
		if timerArmed {
			if !closeTimer.Stop() {
				select {
				case <-closeTimer.C:
				default:
				}
			}
			timerArmed = false
		}

		e.mu.RLock()
		due, ok := e.queue.NextDue()
		e.mu.RUnlock()
		if ok {
			closeTimer.Reset(time.Until(due))
			timerArmed = true
		}
	}

	for {
		select {
		case <-ticker.C:
			e.tick(time.Now().UTC())
			rearm()
		case <-closeTimer.C:
			timerArmed = false
			e.processDue(time.Now().UTC())
			rearm()
		case <-e.wake:
			rearm()
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Shutdown останавливает цикл движка и дожидается его завершения
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	<-e.done
}

// tick выполняет одну оценку открытия по всем включённым стратегиям
//
// Для каждой стратегии в порядке каталога делается независимая
// вероятностная проверка; сработавшая проверка открывает позицию
// по текущей цене из кэша и планирует её закрытие.
func (e *Engine) tick(now time.Time) {
	if !e.running.Load() {
		return
	}

	for _, strategy := range e.strategies.EnabledStrategies() {
		profile, ok := ProfileFor(strategy.Category)
		if !ok {
			continue
		}

		if e.rnd.Float64() >= profile.OpenProbability {
			continue
		}

		price, ok := e.prices.Price(strategy.Symbol)
		if !ok {
			// Нет цены - нет позиции, это не ошибка
			SkippedNoPrice.WithLabelValues(strategy.Symbol).Inc()
			continue
		}

		e.openPosition(strategy, profile, price, now)
	}
}

// openPosition создаёт позицию и планирует её закрытие
func (e *Engine) openPosition(strategy *models.StrategyConfig, profile Profile, price float64, now time.Time) {
	direction := models.DirectionBuy
	if profile.RandomDirection && e.rnd.Float64() < 0.5 {
		direction = models.DirectionSell
	}

	pos := &models.Position{
		ID:         uuid.NewString(),
		StrategyID: strategy.ID,
		Symbol:     strategy.Symbol,
		Direction:  direction,
		Quantity:   strategy.PositionSize / price,
		EntryPrice: price,
		EntryTime:  now,
		Status:     models.PositionOpen,
	}

	delay := profile.HoldDelay(e.rnd.Float64())

	e.mu.Lock()
	e.open[pos.ID] = pos
	e.queue.Push(now.Add(delay), pos, strategy.Category)
	OpenPositionsGauge.Set(float64(len(e.open)))
	PendingCloses.Set(float64(e.queue.Len()))
	e.mu.Unlock()

	recordOpen(strategy.ID, strategy.Category)

	e.logger.Debug("Opened position",
		utils.TradeID(pos.ID),
		utils.Strategy(strategy.ID),
		utils.Symbol(pos.Symbol),
		utils.Direction(direction),
		utils.Price(price),
		utils.Quantity(pos.Quantity),
		utils.String("close_in", delay.String()))

	// Будим цикл: новое закрытие могло стать ближайшим
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// processDue закрывает все позиции с наступившим сроком
func (e *Engine) processDue(now time.Time) {
	e.mu.Lock()
	events := e.queue.PopDue(now)
	e.mu.Unlock()

	for _, ev := range events {
		e.closePosition(ev.position, ev.category, now)
	}
}

// closePosition исполняет отложенный выход
//
// Цена выхода синтетическая: entry * (1 + offset), где offset
// выбирается из распределения профиля категории в момент закрытия.
func (e *Engine) closePosition(pos *models.Position, category string, now time.Time) {
	profile, ok := ProfileFor(category)
	if !ok {
		profile = profiles[models.CategoryScalping]
	}

	offset := profile.ExitOffset(e.rnd.Float64())
	exitPrice := pos.EntryPrice * (1 + offset)
	trade := pos.Close(exitPrice, now)

	e.mu.Lock()
	delete(e.open, pos.ID)

	if !utils.SameDay(e.dailyDay, now) {
		e.dailyProfit = 0
		e.dailyDay = utils.GetDayStartFrom(now)
	}
	e.dailyProfit += trade.Profit
	e.realizedSum += trade.Profit

	OpenPositionsGauge.Set(float64(len(e.open)))
	PendingCloses.Set(float64(e.queue.Len()))
	e.mu.Unlock()

	e.ledger.Append(trade)
	recordClose(trade.StrategyID, trade.Profit)

	e.logger.Info("Closed trade",
		utils.TradeID(trade.ID),
		utils.Strategy(trade.StrategyID),
		utils.Symbol(trade.Symbol),
		utils.Price(exitPrice),
		utils.Profit(trade.Profit))

	if e.notifier != nil {
		e.notifier.BroadcastTradeClosed(trade)
	}

	if e.archive != nil {
		go func(t *models.ClosedTrade) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			// Пара коротких повторов на случай моргнувшей БД
			cfg := retry.ConservativeConfig()
			cfg.RetryIf = retry.RetryIfNotContext

			err := retry.Do(ctx, func() error {
				return e.archive.InsertTrade(ctx, t)
			}, cfg)
			if err != nil {
				e.logger.Warn("Trade archive insert failed",
					utils.TradeID(t.ID),
					utils.Err(err))
			}
		}(trade)
	}
}

// ============================================================
// Снимки состояния для сервисного слоя
// ============================================================

// OpenPositions возвращает копии открытых позиций
func (e *Engine) OpenPositions() []*models.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]*models.Position, 0, len(e.open))
	for _, p := range e.open {
		cp := *p
		result = append(result, &cp)
	}
	return result
}

// OpenCount возвращает количество открытых позиций
func (e *Engine) OpenCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.open)
}

// PendingCloseCount возвращает размер очереди закрытий
func (e *Engine) PendingCloseCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.queue.Len()
}

// DailyProfit возвращает прибыль текущего календарного дня UTC
//
// Если с последнего закрытия день сменился, дневная прибыль — ноль.
func (e *Engine) DailyProfit(now time.Time) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !utils.SameDay(e.dailyDay, now) {
		return 0
	}
	return e.dailyProfit
}

// CumulativeProfit возвращает накопленную прибыль
//
// baseline + сумма прибыли всех закрытий с момента старта процесса.
func (e *Engine) CumulativeProfit() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.baseline + e.realizedSum
}
