package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("all tables exist", func(t *testing.T) {
		expectedTables := []string{
			"portfolios",
			"transactions",
			"stocks",
			"market_prices",
			"alerts",
		}

		for _, tableName := range expectedTables {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.tables
					WHERE table_schema = 'public'
					AND table_name = $1
				)
			`, tableName).Scan(&exists)

			require.NoError(t, err, "failed to check table existence for %s", tableName)
			assert.True(t, exists, "table %s should exist", tableName)
		}
	})

	t.Run("transactions table has correct columns", func(t *testing.T) {
		expectedColumns := map[string]string{
			"id":           "integer",
			"portfolio_id": "integer",
			"symbol":       "character varying",
			"quantity":     "numeric",
			"price":        "numeric",
			"type":         "character varying",
			"external_id":  "character varying",
			"source":       "character varying",
			"created_at":   "timestamp without time zone",
		}

		for colName, expectedType := range expectedColumns {
			var actualType string
			err := testDB.GetRawConn().QueryRow(`
				SELECT data_type
				FROM information_schema.columns
				WHERE table_name = 'transactions' AND column_name = $1
			`, colName).Scan(&actualType)

			require.NoError(t, err, "column %s should exist in transactions table", colName)
			assert.Equal(t, expectedType, actualType, "column %s should have type %s", colName, expectedType)
		}
	})

	t.Run("transaction type is constrained", func(t *testing.T) {
		testDB.TruncateAll(t)
		p := testDB.CreateTestPortfolio(t, "user-1")

		_, err := testDB.GetRawConn().Exec(`
			INSERT INTO transactions (portfolio_id, symbol, quantity, price, type)
			VALUES ($1, 'AAPL', 1, 1, 'HOLD')
		`, p.ID)
		assert.Error(t, err)
	})

	t.Run("migrating twice is a no-op", func(t *testing.T) {
		assert.NoError(t, testDB.Migrate(migrationsPath()))
	})
}
