package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"genie/synthdata-api/internal/domain"
)

var csvHeader = []string{
	"transaction_id", "timestamp", "customer_id", "merchant_id",
	"merchant_name", "merchant_category", "mcc_code", "amount", "currency",
	"transaction_type", "card_last_4",
	"customer_city", "customer_state", "customer_zip",
	"merchant_city", "merchant_state", "merchant_zip",
	"distance_km", "is_online", "device_type",
	"is_anomaly", "anomaly_type", "risk_score",
}

// WriteCSV writes the batch as a flat CSV with nested locations expanded
// into per-coordinate columns.
func WriteCSV(path string, batch []domain.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range batch {
		txn := &batch[i]
		anomalyType := ""
		if txn.AnomalyType != nil {
			anomalyType = *txn.AnomalyType
		}
		row := []string{
			txn.TransactionID,
			txn.Timestamp,
			txn.CustomerID,
			txn.MerchantID,
			txn.MerchantName,
			txn.MerchantCategory,
			txn.MCCCode,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Currency,
			txn.TransactionType,
			txn.CardLast4,
			txn.CustomerLocation.City,
			txn.CustomerLocation.State,
			txn.CustomerLocation.Zip,
			txn.MerchantLocation.City,
			txn.MerchantLocation.State,
			txn.MerchantLocation.Zip,
			strconv.FormatFloat(txn.DistanceKM, 'f', 2, 64),
			strconv.FormatBool(txn.IsOnline),
			txn.DeviceType,
			strconv.FormatBool(txn.IsAnomaly),
			anomalyType,
			strconv.FormatFloat(txn.RiskScore, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	return w.Error()
}
