package generator

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genie/synthdata-api/internal/domain"
)

const (
	testStart = "2024-01-01"
	testEnd   = "2024-12-31"
)

func generateTestBatch(t *testing.T, seed int64, n int) []domain.Transaction {
	t.Helper()
	eng := New(seed, domain.RegionMajorCities)
	batch, err := eng.GenerateBatch(BatchOptions{
		NumRecords: n,
		StartDate:  testStart,
		EndDate:    testEnd,
	})
	require.NoError(t, err)
	require.Len(t, batch, n)
	return batch
}

// ─── Validation ───────────────────────────────────────────────────────────────

func TestGenerateBatchValidation(t *testing.T) {
	tests := []struct {
		name string
		opts BatchOptions
	}{
		{"too few records", BatchOptions{NumRecords: 50, StartDate: testStart, EndDate: testEnd}},
		{"too many records", BatchOptions{NumRecords: 100001, StartDate: testStart, EndDate: testEnd}},
		{"inverted date window", BatchOptions{NumRecords: 100, StartDate: testEnd, EndDate: testStart}},
		{"malformed start date", BatchOptions{NumRecords: 100, StartDate: "01/15/2024", EndDate: testEnd}},
		{"malformed end date", BatchOptions{NumRecords: 100, StartDate: testStart, EndDate: "2024-13-40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(1, domain.RegionMajorCities)
			_, err := eng.GenerateBatch(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "want ErrInvalidInput, got %v", err)
		})
	}
}

func TestGenerateBatchBoundsAccepted(t *testing.T) {
	eng := New(7, domain.RegionMajorCities)
	batch, err := eng.GenerateBatch(BatchOptions{
		NumRecords: MinBatchRecords,
		StartDate:  testStart,
		EndDate:    testStart, // single-day window is valid
	})
	require.NoError(t, err)
	assert.Len(t, batch, MinBatchRecords)
}

// ─── Determinism ──────────────────────────────────────────────────────────────

func TestSameSeedSameBatch(t *testing.T) {
	a := generateTestBatch(t, 42, 200)
	b := generateTestBatch(t, 42, 200)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb), "identical seeds must reproduce the batch byte for byte")
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := generateTestBatch(t, 1, 100)
	b := generateTestBatch(t, 2, 100)

	same := true
	for i := range a {
		if a[i].TransactionID != b[i].TransactionID || a[i].Amount != b[i].Amount {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds should produce different batches")
}

// ─── Ordering ─────────────────────────────────────────────────────────────────

func TestBatchSortedByTimestamp(t *testing.T) {
	batch := generateTestBatch(t, 3, 500)
	sorted := sort.SliceIsSorted(batch, func(i, j int) bool {
		return batch[i].Timestamp < batch[j].Timestamp
	})
	assert.True(t, sorted, "batch must be in chronological order")
}

// ─── Referential stability ────────────────────────────────────────────────────

func TestCustomerFieldsStable(t *testing.T) {
	batch := generateTestBatch(t, 4, 1000)

	type identity struct{ city, card string }
	seen := make(map[string]identity)
	for i := range batch {
		txn := &batch[i]
		id := identity{txn.CustomerLocation.City, txn.CardLast4}
		if prev, okSeen := seen[txn.CustomerID]; okSeen {
			assert.Equal(t, prev, id, "customer %s changed city or card mid-batch", txn.CustomerID)
		} else {
			seen[txn.CustomerID] = id
		}
	}
	assert.Greater(t, len(seen), 1, "expected multiple distinct customers")
}

func TestCustomerPoolSize(t *testing.T) {
	batch := generateTestBatch(t, 5, 1000)
	customers := make(map[string]bool)
	for i := range batch {
		customers[batch[i].CustomerID] = true
	}
	// Pool defaults to num_records/40, floor 10.
	assert.LessOrEqual(t, len(customers), 25)
	assert.GreaterOrEqual(t, len(customers), 2)
}

// ─── Per-record invariants ────────────────────────────────────────────────────

func TestRecordInvariants(t *testing.T) {
	batch := generateTestBatch(t, 6, 500)

	for i := range batch {
		txn := &batch[i]

		assert.Regexp(t, `^TXN_\d{8}_[A-Z0-9]{6}$`, txn.TransactionID)
		assert.Regexp(t, `^CUST_\d{7}$`, txn.CustomerID)
		assert.Regexp(t, `^MERCH_\d{5}$`, txn.MerchantID)
		assert.Regexp(t, `^\d{4}$`, txn.CardLast4)
		assert.Regexp(t, `^\d{4}$`, txn.MCCCode)
		assert.Regexp(t, `^\d{5}$`, txn.CustomerLocation.Zip)

		assert.Equal(t, domain.CurrencyUSD, txn.Currency)
		assert.GreaterOrEqual(t, txn.Amount, 1.0)
		assert.LessOrEqual(t, txn.Amount, 10000.0)
		assert.InDelta(t, txn.Amount, float64(int(txn.Amount*100+0.5))/100, 1e-9, "amount must be 2-decimal")

		assert.False(t, txn.IsAnomaly)
		assert.Nil(t, txn.AnomalyType)
		assert.GreaterOrEqual(t, txn.RiskScore, 0.01)
		assert.LessOrEqual(t, txn.RiskScore, 0.25)

		ts, err := txn.Time()
		require.NoError(t, err, "timestamp %q must parse", txn.Timestamp)
		windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		windowEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.False(t, ts.Before(windowStart))
		assert.True(t, ts.Before(windowEnd))

		if txn.IsOnline {
			assert.Equal(t, domain.TypeOnline, txn.TransactionType)
			assert.Contains(t, []string{domain.DeviceOnline, domain.DeviceMobileApp}, txn.DeviceType)
		} else {
			assert.GreaterOrEqual(t, txn.DistanceKM, 0.0)
			assert.Contains(t,
				[]string{domain.DeviceChipAndPin, domain.DeviceContactless, domain.DeviceSwipe},
				txn.DeviceType)
		}
	}
}

func TestGeographicLocality(t *testing.T) {
	batch := generateTestBatch(t, 8, 2000)

	var physical, local int
	for i := range batch {
		if batch[i].IsOnline {
			continue
		}
		physical++
		if batch[i].DistanceKM <= 50 {
			local++
		}
	}
	require.Greater(t, physical, 0)
	ratio := float64(local) / float64(physical)
	// ~80% of merchants anchor to the customer's home city; with jitter the
	// local share stays well above half.
	assert.Greater(t, ratio, 0.55, "local share was %.2f", ratio)
}

func TestRegionFilterRestrictsCities(t *testing.T) {
	eng := New(9, domain.RegionNortheast)
	batch, err := eng.GenerateBatch(BatchOptions{
		NumRecords: 200,
		StartDate:  testStart,
		EndDate:    testEnd,
	})
	require.NoError(t, err)

	northeast := map[string]bool{
		"New York": true, "Philadelphia": true, "Boston": true, "Washington": true,
	}
	for i := range batch {
		assert.True(t, northeast[batch[i].CustomerLocation.City],
			"customer city %q is outside the northeast set", batch[i].CustomerLocation.City)
	}
}

// ─── Profile factories ────────────────────────────────────────────────────────

func TestCustomerProfileRanges(t *testing.T) {
	eng := New(10, domain.RegionMajorCities)

	for i := 0; i < 50; i++ {
		p := eng.getOrCreateCustomer(eng.newCustomerID())

		assert.GreaterOrEqual(t, len(p.PreferredCategories), 3)
		assert.LessOrEqual(t, len(p.PreferredCategories), 7)
		dedup := make(map[string]bool)
		for _, c := range p.PreferredCategories {
			dedup[c] = true
		}
		assert.Len(t, dedup, len(p.PreferredCategories), "preferred categories must be distinct")

		assert.GreaterOrEqual(t, p.AvgTransactionAmount, 10.0)
		assert.LessOrEqual(t, p.AvgTransactionAmount, 500.0)
		assert.Len(t, p.CardLast4, 4)
		assert.Len(t, p.hourCDF, 24)
	}
}

func TestCustomerProfileCached(t *testing.T) {
	eng := New(11, domain.RegionMajorCities)
	first := eng.getOrCreateCustomer("CUST_0000001")
	second := eng.getOrCreateCustomer("CUST_0000001")
	assert.Same(t, first, second, "repeated lookups must return the identical profile")
}

func TestMerchantProfileAnchoring(t *testing.T) {
	eng := New(12, domain.RegionMajorCities)
	anchor := eng.cities[0]
	p := eng.getOrCreateMerchant("MERCH_10001", &anchor)

	assert.Equal(t, anchor.Name, p.City)
	assert.InDelta(t, anchor.Lat, p.Lat, 0.1001)
	assert.InDelta(t, anchor.Lon, p.Lon, 0.1001)
	assert.Regexp(t, `^\d{5}$`, p.Zip)
	assert.Contains(t, p.Name, "#")
}

func TestTimestampsRespectActiveHours(t *testing.T) {
	batch := generateTestBatch(t, 13, 2000)

	night := 0
	for i := range batch {
		ts, err := batch[i].Time()
		require.NoError(t, err)
		if h := ts.Hour(); h >= 1 && h <= 5 {
			night++
		}
	}
	// The dead-of-night window is heavily damped but never zero.
	ratio := float64(night) / float64(len(batch))
	assert.Less(t, ratio, 0.15, "night share was %.2f", ratio)
}
