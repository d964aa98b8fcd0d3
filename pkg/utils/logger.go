package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger.go - структурированное логирование на базе zap
//
// Назначение:
// Единая точка инициализации и доступа к логгеру приложения.
//
// Возможности:
// - Форматы JSON и text, уровни debug..fatal
// - Вывод в файл или stderr (fallback на stderr при ошибке открытия)
// - Глобальный логгер с ленивой инициализацией
// - Доменные конструкторы полей (strategy_id, symbol, profit, ...)

// LogConfig конфигурация логгера
type LogConfig struct {
	Level       string // debug, info, warn, error, fatal
	Format      string // json, text
	Output      string // путь к файлу; пусто = stderr
	Development bool   // режим разработки (подробные стектрейсы)
}

// Logger обёртка над zap.Logger с sugar-вариантом для Printf-стиля
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// parseLevel преобразует строковый уровень в zapcore.Level
//
// Неизвестные значения дают InfoLevel.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger создаёт логгер по конфигурации
//
// Никогда не возвращает nil и не паникует: при недоступном файле
// вывода используется stderr.
func InitLogger(config LogConfig) *Logger {
	level := parseLevel(config.Level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(config.Format) {
	case "text", "console":
		if config.Development {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var sink zapcore.WriteSyncer
	if config.Output != "" {
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			sink = zapcore.AddSync(os.Stderr)
		} else {
			sink = zapcore.AddSync(file)
		}
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(encoder, sink, level)

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(0)}
	if config.Development {
		opts = append(opts, zap.Development())
	}

	zl := zap.New(core, opts...)
	return &Logger{
		Logger: zl,
		sugar:  zl.Sugar(),
	}
}

// Sugar возвращает SugaredLogger для Printf-стиля
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.sugar
}

// With возвращает новый логгер с добавленными полями
func (l *Logger) With(fields ...zap.Field) *Logger {
	zl := l.Logger.With(fields...)
	return &Logger{
		Logger: zl,
		sugar:  zl.Sugar(),
	}
}

// WithComponent возвращает логгер с полем component
func (l *Logger) WithComponent(component string) *Logger {
	return l.With(Component(component))
}

// WithStrategy возвращает логгер с полем strategy_id
func (l *Logger) WithStrategy(strategyID string) *Logger {
	return l.With(Strategy(strategyID))
}

// WithSymbol возвращает логгер с полем symbol
func (l *Logger) WithSymbol(symbol string) *Logger {
	return l.With(Symbol(symbol))
}

// ============================================================
// Глобальный логгер
// ============================================================

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// GetGlobalLogger возвращает глобальный логгер
//
// Ленивая инициализация с конфигурацией по умолчанию.
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	if globalLogger != nil {
		defer globalMu.RUnlock()
		return globalLogger
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = InitLogger(LogConfig{})
	}
	return globalLogger
}

// InitGlobalLogger инициализирует глобальный логгер по конфигурации
func InitGlobalLogger(config LogConfig) *Logger {
	logger := InitLogger(config)
	SetGlobalLogger(logger)
	return logger
}

// SetGlobalLogger устанавливает глобальный логгер
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// L короткий доступ к глобальному логгеру
func L() *Logger {
	return GetGlobalLogger()
}

// ============================================================
// Глобальные функции логирования
// ============================================================

// Debug логирует сообщение уровня debug через глобальный логгер
func Debug(msg string, fields ...zap.Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Info логирует сообщение уровня info через глобальный логгер
func Info(msg string, fields ...zap.Field) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn логирует сообщение уровня warn через глобальный логгер
func Warn(msg string, fields ...zap.Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

// Error логирует сообщение уровня error через глобальный логгер
func Error(msg string, fields ...zap.Field) {
	GetGlobalLogger().Error(msg, fields...)
}

// Debugf логирует форматированное сообщение уровня debug
func Debugf(template string, args ...interface{}) {
	GetGlobalLogger().sugar.Debugf(template, args...)
}

// Infof логирует форматированное сообщение уровня info
func Infof(template string, args ...interface{}) {
	GetGlobalLogger().sugar.Infof(template, args...)
}

// Warnf логирует форматированное сообщение уровня warn
func Warnf(template string, args ...interface{}) {
	GetGlobalLogger().sugar.Warnf(template, args...)
}

// Errorf логирует форматированное сообщение уровня error
func Errorf(template string, args ...interface{}) {
	GetGlobalLogger().sugar.Errorf(template, args...)
}

// fieldsToInterface преобразует zap-поля в плоский слайс key, value, ...
func fieldsToInterface(fields []zap.Field) []interface{} {
	result := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		result = append(result, f.Key, enc.Fields[f.Key])
	}
	return result
}

// ============================================================
// Доменные конструкторы полей
// ============================================================

// Strategy поле strategy_id
func Strategy(id string) zap.Field {
	return zap.String("strategy_id", id)
}

// Symbol поле symbol
func Symbol(symbol string) zap.Field {
	return zap.String("symbol", symbol)
}

// TradeID поле trade_id
func TradeID(id string) zap.Field {
	return zap.String("trade_id", id)
}

// Price поле price
func Price(price float64) zap.Field {
	return zap.Float64("price", price)
}

// Quantity поле quantity
func Quantity(qty float64) zap.Field {
	return zap.Float64("quantity", qty)
}

// Profit поле profit
func Profit(profit float64) zap.Field {
	return zap.Float64("profit", profit)
}

// Direction поле direction
func Direction(direction string) zap.Field {
	return zap.String("direction", direction)
}

// Category поле category
func Category(category string) zap.Field {
	return zap.String("category", category)
}

// Latency поле latency_ms
func Latency(ms float64) zap.Field {
	return zap.Float64("latency_ms", ms)
}

// RequestID поле request_id
func RequestID(id string) zap.Field {
	return zap.String("request_id", id)
}

// Component поле component
func Component(component string) zap.Field {
	return zap.String("component", component)
}

// ============================================================
// Переэкспорт стандартных конструкторов zap
// ============================================================

// String переэкспорт zap.String
func String(key, value string) zap.Field {
	return zap.String(key, value)
}

// Int переэкспорт zap.Int
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Int64 переэкспорт zap.Int64
func Int64(key string, value int64) zap.Field {
	return zap.Int64(key, value)
}

// Float64 переэкспорт zap.Float64
func Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// Bool переэкспорт zap.Bool
func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

// Err переэкспорт zap.Error
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Any переэкспорт zap.Any
func Any(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}
