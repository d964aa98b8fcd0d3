package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"tradebot/internal/api"
	"tradebot/internal/bot"
	"tradebot/internal/config"
	"tradebot/internal/market"
	"tradebot/internal/models"
	"tradebot/internal/repository"
	"tradebot/internal/service"
	"tradebot/internal/storage"
	"tradebot/internal/websocket"
	"tradebot/pkg/crypto"
	"tradebot/pkg/utils"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger := utils.InitGlobalLogger(utils.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Logging.Development,
	})
	defer logger.Sync()

	logger.Info("Starting trading bot server")

	// Загрузка persisted-состояния (или дефолтов)
	strategyStore := storage.NewStrategyStore(cfg.Storage.DataDir)
	settingsStore := storage.NewSettingsStore(cfg.Storage.DataDir)
	catalog := strategyStore.Load(models.DefaultCatalog())
	settings := settingsStore.Load()

	// Ядро: журнал сделок, кэш цен, движок симуляции
	ledger := bot.NewLedger(cfg.Sim.LedgerCap)
	cache := market.NewCache()

	strategyService := service.NewStrategyService(catalog, strategyStore, ledger)

	engine := bot.NewEngine(bot.EngineConfig{
		TickInterval:   cfg.Sim.TickInterval,
		ProfitBaseline: cfg.Sim.ProfitBaseline,
	}, cache, strategyService, ledger, bot.NewRand())

	// WebSocket hub для push-обновлений дашборда
	hub := websocket.NewHub()
	go hub.Run()

	// Опциональный Postgres-архив закрытых сделок
	var archiveDB *sql.DB
	if cfg.ArchiveEnabled() {
		archiveDB, err = initArchive(cfg)
		if err != nil {
			// Архив вспомогательный: движок работает и без него
			logger.Warn("Trade archive unavailable, continuing without it", utils.Err(err))
			archiveDB = nil
		} else {
			engine.SetArchive(repository.NewTradeArchive(archiveDB))
			logger.Info("Trade archive connected")
		}
	}
	if archiveDB != nil {
		defer archiveDB.Close()
	}

	settingsService := service.NewSettingsService(settings, settingsStore, engine)
	statusService := service.NewStatusService(engine, ledger, cache, settingsService)

	// Каждое закрытие сделки дополняется свежей сводкой состояния
	engine.SetNotifier(service.NewEngineNotifier(hub, statusService))

	// Восстанавливаем желаемое состояние движка из настроек
	if settings.Running {
		engine.Start()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go engine.Run(ctx)

	// Клиент биржевого аккаунта: секрет хранится зашифрованным
	accountClient := buildAccountClient(cfg, logger)
	accountService := service.NewAccountService(accountClient, cache)
	holdingsService := service.NewHoldingsService(cache)

	// Поллер рыночных данных
	client := market.NewClient(cfg.Market.BaseURL, cfg.Market.RequestTimeout)
	poller := market.NewPoller(client, cache, settingsService, hub, cfg.Market.PollInterval)
	poller.Start(ctx)

	// HTTP сервер
	deps := &api.Dependencies{
		StatusService:   statusService,
		StrategyService: strategyService,
		SettingsService: settingsService,
		AccountService:  accountService,
		HoldingsService: holdingsService,
		MarketCache:     cache,
		Hub:             hub,
	}
	router := api.SetupRoutes(deps)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", utils.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", utils.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	poller.Stop()
	engine.Shutdown()
	hub.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", utils.Err(err))
	}

	logger.Info("Server exited")
}

// buildAccountClient собирает клиента биржевого аккаунта
//
// Без учётных данных возвращается ненастроенный клиент: endpoint
// баланса отвечает configured=false вместо ошибки. Невозможность
// расшифровать секрет деградирует так же.
func buildAccountClient(cfg *config.Config, logger *utils.Logger) *market.AccountClient {
	if !cfg.AccountConfigured() {
		return market.NewAccountClient(cfg.Market.BaseURL, "", "", cfg.Market.RequestTimeout)
	}

	secret, err := crypto.Decrypt(cfg.Account.EncryptedSecret, []byte(cfg.Account.EncryptionKey))
	if err != nil {
		logger.Error("Failed to decrypt account secret, running unconfigured", utils.Err(err))
		return market.NewAccountClient(cfg.Market.BaseURL, "", "", cfg.Market.RequestTimeout)
	}

	return market.NewAccountClient(cfg.Market.BaseURL, cfg.Account.APIKey, secret, cfg.Market.RequestTimeout)
}

// initArchive создает подключение к Postgres-архиву сделок
func initArchive(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Archive.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := repository.NewTradeArchive(db).EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure archive schema: %w", err)
	}

	return db, nil
}
