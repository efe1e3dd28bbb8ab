package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/portfolio-service/internal/models"
)

// UpsertMarketPrice records the latest price for a symbol, inserting it if absent
func (db *DB) UpsertMarketPrice(ctx context.Context, p *models.MarketPrice) error {
	query := `
		INSERT INTO market_prices (symbol, price, timestamp)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE SET
			price = EXCLUDED.price,
			timestamp = EXCLUDED.timestamp
	`
	p.Symbol = models.NormalizeSymbol(p.Symbol)
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	if _, err := db.conn.ExecContext(ctx, query, p.Symbol, p.Price, p.Timestamp); err != nil {
		return fmt.Errorf("failed to upsert market price for %s: %w", p.Symbol, err)
	}
	return nil
}

// GetMarketPrice retrieves the latest price for a symbol
func (db *DB) GetMarketPrice(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	query := `SELECT symbol, price, timestamp FROM market_prices WHERE symbol = $1`

	var p models.MarketPrice
	err := db.conn.QueryRowContext(ctx, query, models.NormalizeSymbol(symbol)).Scan(&p.Symbol, &p.Price, &p.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("market price for %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get market price: %w", err)
	}
	return &p, nil
}

// GetAllMarketPrices retrieves every known price ordered by symbol
func (db *DB) GetAllMarketPrices(ctx context.Context) ([]*models.MarketPrice, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT symbol, price, timestamp FROM market_prices ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query market prices: %w", err)
	}
	defer rows.Close()

	prices := []*models.MarketPrice{}
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.Symbol, &p.Price, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan market price: %w", err)
		}
		prices = append(prices, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate market prices: %w", err)
	}
	return prices, nil
}

// Snapshot returns the latest committed price of every symbol
func (db *DB) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	prices, err := db.GetAllMarketPrices(ctx)
	if err != nil {
		return nil, err
	}
	return models.SnapshotFromPrices(prices), nil
}
