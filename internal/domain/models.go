// Package domain contains all core types used across the application.
// Keeping the record contract in one place makes the generation and
// injection rules easy to reason about.
package domain

import "time"

// ─── Constants ───────────────────────────────────────────────────────────────

// CurrencyUSD is the only currency the generator emits today.
const CurrencyUSD = "USD"

// TimestampLayout is the wire format of every record's timestamp. The width
// is fixed, so lexicographic order over formatted strings is chronological
// order — batch sorting relies on this.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Anomaly archetypes, in round-robin assignment order.
const (
	AnomalyGeographic   = "geographic"
	AnomalyVelocity     = "velocity"
	AnomalyAmount       = "amount"
	AnomalyCategory     = "category"
	AnomalyTemporal     = "temporal"
	AnomalyMerchantRisk = "merchant_risk"
)

// AnomalyTypes lists the six archetypes in the order the injector cycles
// through them.
var AnomalyTypes = []string{
	AnomalyGeographic,
	AnomalyVelocity,
	AnomalyAmount,
	AnomalyCategory,
	AnomalyTemporal,
	AnomalyMerchantRisk,
}

// Named region filters over the reference city set.
const (
	RegionMajorCities = "US_MAJOR_CITIES"
	RegionNortheast   = "US_NORTHEAST"
	RegionWestCoast   = "US_WEST_COAST"
	RegionMidwest     = "US_MIDWEST"
	RegionSouth       = "US_SOUTH"
)

// Transaction types.
const (
	TypeDebitCard     = "debit_card"
	TypeCreditCard    = "credit_card"
	TypeMobilePayment = "mobile_payment"
	TypeOnline        = "online"
)

// Device types.
const (
	DeviceChipAndPin  = "chip_and_pin"
	DeviceContactless = "contactless"
	DeviceSwipe       = "swipe"
	DeviceOnline      = "online"
	DeviceMobileApp   = "mobile_app"
)

// ─── Core domain types ────────────────────────────────────────────────────────

// Location is the nested city/state/zip block used for both the customer and
// merchant sides of a record.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Transaction is a single synthetic financial transaction. It is created by
// the generation engine, optionally rewritten once by the anomaly injector,
// and read-only after that.
//
// Field names form the contract consumed by the metrics calculator and by
// downstream fraud-detection pipelines; do not rename them.
type Transaction struct {
	TransactionID    string   `json:"transaction_id"`
	Timestamp        string   `json:"timestamp"` // TimestampLayout, always UTC
	CustomerID       string   `json:"customer_id"`
	MerchantID       string   `json:"merchant_id"`
	MerchantName     string   `json:"merchant_name"`
	MerchantCategory string   `json:"merchant_category"`
	MCCCode          string   `json:"mcc_code"`
	Amount           float64  `json:"amount"` // 2-decimal fixed point
	Currency         string   `json:"currency"`
	TransactionType  string   `json:"transaction_type"`
	CardLast4        string   `json:"card_last_4"`
	CustomerLocation Location `json:"customer_location"`
	MerchantLocation Location `json:"merchant_location"`
	DistanceKM       float64  `json:"distance_km"`
	IsOnline         bool     `json:"is_online"`
	DeviceType       string   `json:"device_type"`
	IsAnomaly        bool     `json:"is_anomaly"`
	AnomalyType      *string  `json:"anomaly_type"` // nil until injected
	RiskScore        float64  `json:"risk_score"`   // always within [0,1]
}

// Time parses the record's timestamp. Fixed-width UTC strings are the
// canonical representation; this is the one place parsing happens.
func (t *Transaction) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, t.Timestamp)
}
