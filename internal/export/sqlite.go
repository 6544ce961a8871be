package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"genie/synthdata-api/internal/domain"
)

const transactionsSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	transaction_id    TEXT PRIMARY KEY,
	timestamp         TEXT NOT NULL,
	customer_id       TEXT NOT NULL,
	merchant_id       TEXT NOT NULL,
	merchant_name     TEXT NOT NULL,
	merchant_category TEXT NOT NULL,
	mcc_code          TEXT NOT NULL,
	amount            REAL NOT NULL,
	currency          TEXT NOT NULL,
	transaction_type  TEXT NOT NULL,
	card_last_4       TEXT NOT NULL,
	customer_city     TEXT NOT NULL,
	customer_state    TEXT NOT NULL,
	customer_zip      TEXT NOT NULL,
	merchant_city     TEXT NOT NULL,
	merchant_state    TEXT NOT NULL,
	merchant_zip      TEXT NOT NULL,
	distance_km       REAL NOT NULL,
	is_online         INTEGER NOT NULL,
	device_type       TEXT NOT NULL,
	is_anomaly        INTEGER NOT NULL,
	anomaly_type      TEXT,
	risk_score        REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
CREATE INDEX IF NOT EXISTS idx_transactions_anomaly ON transactions(is_anomaly);
`

const insertTransaction = `
INSERT INTO transactions VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

// WriteSQLite writes the batch to a SQLite database at path, creating the
// transactions table and indexes if needed. The whole batch goes in as a
// single transaction.
func WriteSQLite(path string, batch []domain.Transaction) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(transactionsSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertTransaction)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range batch {
		txn := &batch[i]
		if _, err := stmt.Exec(
			txn.TransactionID,
			txn.Timestamp,
			txn.CustomerID,
			txn.MerchantID,
			txn.MerchantName,
			txn.MerchantCategory,
			txn.MCCCode,
			txn.Amount,
			txn.Currency,
			txn.TransactionType,
			txn.CardLast4,
			txn.CustomerLocation.City,
			txn.CustomerLocation.State,
			txn.CustomerLocation.Zip,
			txn.MerchantLocation.City,
			txn.MerchantLocation.State,
			txn.MerchantLocation.Zip,
			txn.DistanceKM,
			txn.IsOnline,
			txn.DeviceType,
			txn.IsAnomaly,
			txn.AnomalyType, // nil maps to NULL
			txn.RiskScore,
		); err != nil {
			return fmt.Errorf("insert %s: %w", txn.TransactionID, err)
		}
	}

	return tx.Commit()
}
