package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/portfolio-service/internal/models"
)

const alertColumns = `id, owner_id, symbol, condition_type, threshold, triggered, triggered_at, created_at`

// CreateAlert inserts a new untriggered alert
func (db *DB) CreateAlert(ctx context.Context, a *models.Alert) error {
	query := `
		INSERT INTO alerts (owner_id, symbol, condition_type, threshold, triggered, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
		RETURNING id
	`
	now := time.Now()
	a.Symbol = models.NormalizeSymbol(a.Symbol)

	err := db.conn.QueryRowContext(ctx, query, a.OwnerID, a.Symbol, string(a.Condition), a.Threshold, now).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	a.Triggered = false
	a.TriggeredAt = nil
	a.CreatedAt = now
	return nil
}

// GetAlertByID retrieves an alert by ID
func (db *DB) GetAlertByID(ctx context.Context, id int) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	a, err := scanAlert(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alert %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return a, nil
}

// GetAlertsByOwner retrieves all alerts of a user, newest first
func (db *DB) GetAlertsByOwner(ctx context.Context, ownerID string) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	return db.scanAlerts(db.conn.QueryContext(ctx, query, ownerID))
}

// GetUntriggeredAlerts retrieves every alert still waiting for its condition
func (db *DB) GetUntriggeredAlerts(ctx context.Context) ([]*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE triggered = false ORDER BY id`
	return db.scanAlerts(db.conn.QueryContext(ctx, query))
}

// MarkAlertTriggered flips the triggered flag. It reports false when the
// alert was already triggered, so concurrent sweeps fire at most once.
func (db *DB) MarkAlertTriggered(ctx context.Context, id int, at time.Time) (bool, error) {
	query := `UPDATE alerts SET triggered = true, triggered_at = $2 WHERE id = $1 AND triggered = false`
	result, err := db.conn.ExecContext(ctx, query, id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark alert triggered: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// DeleteAlert removes an alert by ID
func (db *DB) DeleteAlert(ctx context.Context, id int) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("alert %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanAlert(row rowScanner) (*models.Alert, error) {
	var a models.Alert
	var condition string
	var triggeredAt sql.NullTime

	err := row.Scan(&a.ID, &a.OwnerID, &a.Symbol, &condition, &a.Threshold, &a.Triggered, &triggeredAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Condition = models.AlertCondition(condition)
	if triggeredAt.Valid {
		a.TriggeredAt = &triggeredAt.Time
	}
	return &a, nil
}

func (db *DB) scanAlerts(rows *sql.Rows, err error) ([]*models.Alert, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []*models.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}
