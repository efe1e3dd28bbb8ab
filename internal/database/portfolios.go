package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/portfolio-service/internal/models"
)

// CreatePortfolio inserts a new portfolio
func (db *DB) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	query := `
		INSERT INTO portfolios (owner_id, name, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	now := time.Now()
	p.Currency = models.NormalizeCurrency(p.Currency)

	err := db.conn.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.Currency, now, now).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// GetPortfolioByID retrieves a portfolio by ID
func (db *DB) GetPortfolioByID(ctx context.Context, id int) (*models.Portfolio, error) {
	query := `
		SELECT id, owner_id, name, currency, created_at, updated_at
		FROM portfolios
		WHERE id = $1
	`
	var p models.Portfolio
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Currency, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	return &p, nil
}

// PortfolioExists reports whether a portfolio with id exists
func (db *DB) PortfolioExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM portfolios WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check portfolio: %w", err)
	}
	return exists, nil
}

// GetPortfoliosByOwner retrieves all portfolios owned by ownerID
func (db *DB) GetPortfoliosByOwner(ctx context.Context, ownerID string) ([]*models.Portfolio, error) {
	query := `
		SELECT id, owner_id, name, currency, created_at, updated_at
		FROM portfolios
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := db.conn.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := []*models.Portfolio{}
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Currency, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate portfolios: %w", err)
	}
	return portfolios, nil
}

// DeletePortfolio removes a portfolio and, by cascade, its transactions
func (db *DB) DeletePortfolio(ctx context.Context, id int) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("portfolio %d: %w", id, ErrNotFound)
	}
	return nil
}
