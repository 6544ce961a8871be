package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genie/synthdata-api/internal/anomaly"
	"genie/synthdata-api/internal/domain"
	"genie/synthdata-api/internal/generator"
)

func sampleBatch(t *testing.T) []domain.Transaction {
	t.Helper()
	eng := generator.New(42, domain.RegionMajorCities)
	batch, err := eng.GenerateBatch(generator.BatchOptions{NumRecords: 100})
	require.NoError(t, err)
	return anomaly.New(42).Inject(batch, 10.0)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	batch := sampleBatch(t)
	path := filepath.Join(t.TempDir(), "dataset.json")

	require.NoError(t, WriteJSON(path, batch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []domain.Transaction
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, batch, got)
}

func TestWriteCSVShape(t *testing.T) {
	batch := sampleBatch(t)
	path := filepath.Join(t.TempDir(), "dataset.csv")

	require.NoError(t, WriteCSV(path, batch))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(batch)+1, "header plus one row per record")

	assert.Equal(t, csvHeader, rows[0])
	for _, row := range rows[1:] {
		assert.Len(t, row, len(csvHeader))
	}

	// First data row matches the first record.
	assert.Equal(t, batch[0].TransactionID, rows[1][0])
	assert.Equal(t, batch[0].Timestamp, rows[1][1])
}

func TestWriteSQLite(t *testing.T) {
	batch := sampleBatch(t)
	path := filepath.Join(t.TempDir(), "dataset.db")

	require.NoError(t, WriteSQLite(path, batch))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var total int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&total))
	assert.Equal(t, len(batch), total)

	var anomalies int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE is_anomaly = 1").Scan(&anomalies))
	assert.Equal(t, 10, anomalies)

	// anomaly_type is NULL for normal records and set for anomalies.
	var nulls int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE anomaly_type IS NULL").Scan(&nulls))
	assert.Equal(t, len(batch)-10, nulls)
}
