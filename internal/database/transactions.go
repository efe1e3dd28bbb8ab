package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/trogers1052/portfolio-service/internal/models"
)

const transactionColumns = `id, portfolio_id, symbol, quantity, price, type, external_id, source, created_at`

// CreateTransaction appends a transaction to a portfolio ledger
func (db *DB) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (
			portfolio_id, symbol, quantity, price, type, external_id, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	createdAt := t.CreatedAt.UTC()
	if t.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := db.conn.QueryRowContext(ctx, query,
		t.PortfolioID, t.Symbol, t.Quantity, t.Price, string(t.Type),
		nullString(t.ExternalID), nullString(t.Source), createdAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = createdAt
	return nil
}

// TransactionExistsByExternalID reports whether a broker fill was already recorded
func (db *DB) TransactionExistsByExternalID(ctx context.Context, externalID, source string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE external_id = $1 AND source = $2)`
	var exists bool
	if err := db.conn.QueryRowContext(ctx, query, externalID, source).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transaction: %w", err)
	}
	return exists, nil
}

// GetTransactionsByPortfolio retrieves a portfolio ledger oldest first.
// Rows sharing a timestamp come back in insertion order.
func (db *DB) GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE portfolio_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return db.scanTransactions(db.conn.QueryContext(ctx, query, portfolioID))
}

func (db *DB) scanTransactions(rows *sql.Rows, err error) ([]*models.Transaction, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var txType string
		var externalID, source sql.NullString

		err := rows.Scan(
			&t.ID, &t.PortfolioID, &t.Symbol, &t.Quantity, &t.Price, &txType,
			&externalID, &source, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		t.Type = models.TransactionType(txType)
		if externalID.Valid {
			t.ExternalID = externalID.String
		}
		if source.Valid {
			t.Source = source.String
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
