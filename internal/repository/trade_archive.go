package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tradebot/internal/models"
)

// TradeArchive - долговременный архив закрытых сделок
//
// Назначение: опциональное зеркало журнала сделок в Postgres для
// анализа за пределами дисплейного окна. Включается только при
// заданном ARCHIVE_DB_DSN; журнал в памяти остаётся источником
// истины, сбои архива логируются вызывающей стороной и не влияют
// на симуляцию.
type TradeArchive struct {
	db *sql.DB
}

// NewTradeArchive создает новый экземпляр архива
func NewTradeArchive(db *sql.DB) *TradeArchive {
	return &TradeArchive{db: db}
}

// EnsureSchema создает таблицу trades, если её ещё нет
func (r *TradeArchive) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS trades (
			id          TEXT PRIMARY KEY,
			strategy_id TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			direction   TEXT NOT NULL,
			quantity    DOUBLE PRECISION NOT NULL,
			entry_price DOUBLE PRECISION NOT NULL,
			entry_time  TIMESTAMPTZ NOT NULL,
			exit_price  DOUBLE PRECISION NOT NULL,
			exit_time   TIMESTAMPTZ NOT NULL,
			profit      DOUBLE PRECISION NOT NULL
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure trades schema: %w", err)
	}
	return nil
}

// InsertTrade записывает закрытую сделку
//
// Сделки неизменяемы: конфликт по id молча игнорируется, повторная
// доставка не создает дублей.
func (r *TradeArchive) InsertTrade(ctx context.Context, trade *models.ClosedTrade) error {
	query := `
		INSERT INTO trades (id, strategy_id, symbol, direction, quantity,
			entry_price, entry_time, exit_price, exit_time, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.StrategyID,
		trade.Symbol,
		trade.Direction,
		trade.Quantity,
		trade.EntryPrice,
		trade.EntryTime,
		trade.ExitPrice,
		trade.ExitTime,
		trade.Profit,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade %s: %w", trade.ID, err)
	}

	return nil
}

// RecentTrades возвращает последние сделки в хронологическом порядке
func (r *TradeArchive) RecentTrades(ctx context.Context, limit int) ([]*models.ClosedTrade, error) {
	query := `
		SELECT id, strategy_id, symbol, direction, quantity,
			entry_price, entry_time, exit_price, exit_time, profit
		FROM trades
		ORDER BY exit_time DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent trades: %w", err)
	}
	defer rows.Close()

	trades, err := scanTrades(rows)
	if err != nil {
		return nil, err
	}

	// Запрос отдает новые первыми, наружу - хронологический порядок
	reverse(trades)
	return trades, nil
}

// TradesByStrategy возвращает сделки одной стратегии
func (r *TradeArchive) TradesByStrategy(ctx context.Context, strategyID string, limit int) ([]*models.ClosedTrade, error) {
	query := `
		SELECT id, strategy_id, symbol, direction, quantity,
			entry_price, entry_time, exit_price, exit_time, profit
		FROM trades
		WHERE strategy_id = $1
		ORDER BY exit_time DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, strategyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades for %s: %w", strategyID, err)
	}
	defer rows.Close()

	trades, err := scanTrades(rows)
	if err != nil {
		return nil, err
	}

	reverse(trades)
	return trades, nil
}

// Count возвращает количество сделок в архиве
func (r *TradeArchive) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

// DeleteOlderThan удаляет сделки старше указанного момента
//
// Обслуживание архива, на журнал в памяти не влияет.
func (r *TradeArchive) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE exit_time < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old trades: %w", err)
	}
	return result.RowsAffected()
}

// scanTrades читает строки результата в модели
func scanTrades(rows *sql.Rows) ([]*models.ClosedTrade, error) {
	var trades []*models.ClosedTrade
	for rows.Next() {
		t := &models.ClosedTrade{}
		err := rows.Scan(
			&t.ID,
			&t.StrategyID,
			&t.Symbol,
			&t.Direction,
			&t.Quantity,
			&t.EntryPrice,
			&t.EntryTime,
			&t.ExitPrice,
			&t.ExitTime,
			&t.Profit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		t.Status = models.PositionClosed
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func reverse(trades []*models.ClosedTrade) {
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}
}
