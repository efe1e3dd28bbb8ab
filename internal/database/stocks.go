package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/portfolio-service/internal/models"
)

const stockColumns = `
	id, symbol, name, COALESCE(sector, ''), COALESCE(industry, ''), COALESCE(description, ''),
	current_price, COALESCE(previous_close, 0), COALESCE(day_high, 0), COALESCE(day_low, 0),
	COALESCE(volume, 0), COALESCE(market_cap, 0), COALESCE(pe_ratio, 0), COALESCE(dividend_yield, 0),
	COALESCE(fifty_two_week_high, 0), COALESCE(fifty_two_week_low, 0), active, last_updated, created_at`

// stockSortColumns whitelists the columns a listing may be ordered by
var stockSortColumns = map[string]string{
	"symbol":        "symbol",
	"name":          "name",
	"current_price": "current_price",
	"volume":        "volume",
	"market_cap":    "market_cap",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// queryRower is satisfied by both *sql.DB and *sql.Tx
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SaveStock inserts a stock or updates the existing row for its symbol
func (db *DB) SaveStock(ctx context.Context, s *models.Stock) error {
	return saveStock(ctx, db.conn, s)
}

func saveStock(ctx context.Context, q queryRower, s *models.Stock) error {
	query := `
		INSERT INTO stocks (
			symbol, name, sector, industry, description,
			current_price, previous_close, day_high, day_low, volume,
			market_cap, pe_ratio, dividend_yield, fifty_two_week_high, fifty_two_week_low,
			active, last_updated, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			industry = EXCLUDED.industry,
			description = EXCLUDED.description,
			current_price = EXCLUDED.current_price,
			previous_close = EXCLUDED.previous_close,
			day_high = EXCLUDED.day_high,
			day_low = EXCLUDED.day_low,
			volume = EXCLUDED.volume,
			market_cap = EXCLUDED.market_cap,
			pe_ratio = EXCLUDED.pe_ratio,
			dividend_yield = EXCLUDED.dividend_yield,
			fifty_two_week_high = EXCLUDED.fifty_two_week_high,
			fifty_two_week_low = EXCLUDED.fifty_two_week_low,
			active = EXCLUDED.active,
			last_updated = EXCLUDED.last_updated
		RETURNING id, created_at
	`
	now := time.Now()
	s.Symbol = models.NormalizeSymbol(s.Symbol)
	if s.LastUpdated.IsZero() {
		s.LastUpdated = now
	}

	err := q.QueryRowContext(ctx, query,
		s.Symbol, s.Name, nullString(s.Sector), nullString(s.Industry), nullString(s.Description),
		s.CurrentPrice, s.PreviousClose, s.DayHigh, s.DayLow, s.Volume,
		s.MarketCap, s.PERatio, s.DividendYield, s.FiftyTwoWeekHigh, s.FiftyTwoWeekLow,
		s.Active, s.LastUpdated, now,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save stock %s: %w", s.Symbol, err)
	}
	return nil
}

// SeedStocks inserts the catalog in one transaction when the stocks table
// is empty. It reports how many stocks were inserted.
func (db *DB) SeedStocks(ctx context.Context, stocks []*models.Stock) (int, error) {
	count, err := db.CountStocks(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stocks {
		if err := saveStock(ctx, tx, s); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(stocks), nil
}

// GetStock retrieves an active stock by symbol
func (db *DB) GetStock(ctx context.Context, symbol string) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE symbol = $1 AND active = true`

	s, err := scanStock(db.conn.QueryRowContext(ctx, query, models.NormalizeSymbol(symbol)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stock %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return s, nil
}

// GetActiveStocks retrieves every active stock ordered by symbol
func (db *DB) GetActiveStocks(ctx context.Context) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE active = true ORDER BY symbol`
	return db.scanStocks(db.conn.QueryContext(ctx, query))
}

// CountStocks returns the number of rows in the catalog
func (db *DB) CountStocks(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM stocks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stocks: %w", err)
	}
	return count, nil
}

// UpdateStockQuote stores a new simulated quote for a stock
func (db *DB) UpdateStockQuote(ctx context.Context, s *models.Stock) error {
	query := `
		UPDATE stocks SET
			current_price = $2, day_high = $3, day_low = $4, volume = $5, last_updated = $6
		WHERE symbol = $1
	`
	result, err := db.conn.ExecContext(ctx, query,
		s.Symbol, s.CurrentPrice, s.DayHigh, s.DayLow, s.Volume, s.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote for %s: %w", s.Symbol, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("stock %s: %w", s.Symbol, ErrNotFound)
	}
	return nil
}

// SearchStocks lists active stocks matching q, one page at a time
func (db *DB) SearchStocks(ctx context.Context, q models.StockQuery) (*models.StockPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 50
	}
	sortColumn, ok := stockSortColumns[q.SortBy]
	if !ok {
		sortColumn = "symbol"
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}

	where := `
		WHERE active = true
		  AND ($1::text = '' OR symbol ILIKE '%' || $1::text || '%' OR name ILIKE '%' || $1::text || '%')
		  AND ($2::text = '' OR sector = $2::text)
	`

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM stocks`+where, q.Search, q.Sector).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count stocks: %w", err)
	}

	query := `SELECT ` + stockColumns + ` FROM stocks` + where +
		` ORDER BY ` + sortColumn + ` ` + direction + `, symbol ASC LIMIT $3 OFFSET $4`
	stocks, err := db.scanStocks(db.conn.QueryContext(ctx, query, q.Search, q.Sector, q.Limit, (q.Page-1)*q.Limit))
	if err != nil {
		return nil, err
	}

	return &models.StockPage{
		Stocks:      stocks,
		CurrentPage: q.Page,
		TotalPages:  (total + q.Limit - 1) / q.Limit,
		TotalStocks: total,
	}, nil
}

// GetSectors returns the distinct non-empty sectors of active stocks
func (db *DB) GetSectors(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT sector FROM stocks
		WHERE active = true AND sector IS NOT NULL AND sector <> ''
		ORDER BY sector
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	defer rows.Close()

	sectors := []string{}
	for rows.Next() {
		var sector string
		if err := rows.Scan(&sector); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	return sectors, rows.Err()
}

func scanStock(row rowScanner) (*models.Stock, error) {
	var s models.Stock
	err := row.Scan(
		&s.ID, &s.Symbol, &s.Name, &s.Sector, &s.Industry, &s.Description,
		&s.CurrentPrice, &s.PreviousClose, &s.DayHigh, &s.DayLow,
		&s.Volume, &s.MarketCap, &s.PERatio, &s.DividendYield,
		&s.FiftyTwoWeekHigh, &s.FiftyTwoWeekLow, &s.Active, &s.LastUpdated, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) scanStocks(rows *sql.Rows, err error) ([]*models.Stock, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	stocks := []*models.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stocks: %w", err)
	}
	return stocks, nil
}
