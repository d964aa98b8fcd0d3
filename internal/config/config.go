package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server  ServerConfig
	Market  MarketConfig
	Sim     SimConfig
	Storage StorageConfig
	Archive ArchiveConfig
	Account AccountConfig
	Logging LoggingConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port int
	Host string
}

// MarketConfig - настройки провайдера рыночных данных
type MarketConfig struct {
	BaseURL        string        // REST endpoint провайдера
	RequestTimeout time.Duration // таймаут одного запроса
	PollInterval   time.Duration // период опроса тикеров
}

// SimConfig - настройки движка симуляции
type SimConfig struct {
	TickInterval   time.Duration // период оценки открытия позиций
	ProfitBaseline float64       // стартовое значение накопленной прибыли
	LedgerCap      int           // лимит записей журнала для отображения
}

// StorageConfig - настройки JSON-персистентности
type StorageConfig struct {
	DataDir string // директория для strategies.json и settings.json
}

// ArchiveConfig - настройки опционального Postgres-архива сделок
type ArchiveConfig struct {
	DSN string // пусто = архив выключен
}

// AccountConfig - настройки доступа к биржевому аккаунту
type AccountConfig struct {
	APIKey          string // пусто = аккаунт не настроен
	EncryptedSecret string // секрет, зашифрованный AES-256-GCM
	EncryptionKey   string // ключ расшифровки (32 байта)
}

// LoggingConfig - настройки логирования
type LoggingConfig struct {
	Level       string
	Format      string
	Development bool // подробные стектрейсы, console-удобный вывод
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Market: MarketConfig{
			BaseURL:        getEnv("MARKET_BASE_URL", "https://api.binance.com"),
			RequestTimeout: getEnvAsDuration("MARKET_REQUEST_TIMEOUT", 10*time.Second),
			PollInterval:   getEnvAsDuration("MARKET_POLL_INTERVAL", 5*time.Second),
		},
		Sim: SimConfig{
			TickInterval:   getEnvAsDuration("SIM_TICK_INTERVAL", 10*time.Second),
			ProfitBaseline: getEnvAsFloat("PROFIT_BASELINE", 4200),
			LedgerCap:      getEnvAsInt("LEDGER_CAP", 1000),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Archive: ArchiveConfig{
			DSN: getEnv("ARCHIVE_DB_DSN", ""),
		},
		Account: AccountConfig{
			APIKey:          getEnv("ACCOUNT_API_KEY", ""),
			EncryptedSecret: getEnv("ACCOUNT_API_SECRET_ENCRYPTED", ""),
			EncryptionKey:   getEnv("ENCRYPTION_KEY", ""),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.validateSecurity(); err != nil {
		return nil, err
	}

	if err := cfg.validateRanges(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateSecurity проверяет параметры безопасности
//
// Ключ шифрования обязателен только когда заданы учётные данные
// аккаунта: без них сервер работает в режиме configured:false.
func (c *Config) validateSecurity() error {
	if c.Account.APIKey == "" {
		return nil
	}

	if c.Account.EncryptedSecret == "" {
		return fmt.Errorf("ACCOUNT_API_SECRET_ENCRYPTED is required when ACCOUNT_API_KEY is set")
	}

	if c.Account.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required for decrypting the account secret")
	}

	if len(c.Account.EncryptionKey) != 32 {
		return fmt.Errorf("ENCRYPTION_KEY must be exactly 32 bytes for AES-256")
	}

	return nil
}

// validateRanges проверяет числовые диапазоны параметров
func (c *Config) validateRanges() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Market.RequestTimeout <= 0 {
		return fmt.Errorf("MARKET_REQUEST_TIMEOUT must be positive, got %v", c.Market.RequestTimeout)
	}

	if c.Market.PollInterval < time.Second {
		return fmt.Errorf("MARKET_POLL_INTERVAL must be at least 1s, got %v", c.Market.PollInterval)
	}

	if c.Sim.TickInterval < time.Second {
		return fmt.Errorf("SIM_TICK_INTERVAL must be at least 1s, got %v", c.Sim.TickInterval)
	}

	if c.Sim.LedgerCap < 1 {
		return fmt.Errorf("LEDGER_CAP must be positive, got %d", c.Sim.LedgerCap)
	}

	if c.Storage.DataDir == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}

	return nil
}

// ArchiveEnabled сообщает, включён ли Postgres-архив сделок
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.DSN != ""
}

// AccountConfigured сообщает, заданы ли учётные данные аккаунта
func (c *Config) AccountConfigured() bool {
	return c.Account.APIKey != "" && c.Account.EncryptedSecret != ""
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
