// Package generator implements the transaction generation engine.
//
// Architecture:
//
//	One Engine instance owns one seeded random stream and one pair of
//	profile caches (customers, merchants). Profiles are created lazily on
//	first reference and reused for the rest of the run, which is what keeps
//	a batch jointly coherent: the same customer always resolves to the same
//	home city, card suffix, and spending habits. Nothing here is safe for
//	concurrent use — callers wanting parallelism build one engine per
//	goroutine.
//
// Realism levers:
//   - ~80% of merchants are anchored next to the customer's home city
//   - hourly weights peak at lunch and dinner, dampened outside each
//     customer's active window
//   - amounts follow a lognormal centred between the customer's and the
//     merchant category's typical ticket
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"genie/synthdata-api/internal/domain"
	"genie/synthdata-api/internal/geo"
	"genie/synthdata-api/internal/refdata"
)

// ErrInvalidInput is returned (wrapped) when batch parameters fail
// validation. It surfaces before any record is generated.
var ErrInvalidInput = errors.New("invalid input")

// Batch size bounds accepted by GenerateBatch.
const (
	MinBatchRecords = 100
	MaxBatchRecords = 100000
)

// Default date window when the caller leaves it blank.
const (
	DefaultStartDate = "2024-01-01"
	DefaultEndDate   = "2024-12-31"

	dateLayout = "2006-01-02"
)

// Probability that a merchant is anchored near the customer's home city.
const localMerchantProbability = 0.8

// Probability that a physical-category transaction still happens online.
const onlineProbability = 0.15

// Engine generates synthetic transactions. One instance per logical
// request; see the package comment for the ownership rules.
type Engine struct {
	rng       *rand.Rand
	cities    []refdata.City
	customers map[string]*CustomerProfile
	merchants map[string]*MerchantProfile
}

// New creates an engine with its own random stream and empty profile
// caches. A zero seed means "not reproducible": the stream is seeded from
// the clock. The region filter subsets the candidate city list; an
// unrecognized region falls back to the full set.
func New(seed int64, region string) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		rng:       rand.New(rand.NewSource(seed)),
		cities:    refdata.CitiesForRegion(region),
		customers: make(map[string]*CustomerProfile),
		merchants: make(map[string]*MerchantProfile),
	}
}

// Customer returns the cached profile for an ID, if one was created in this
// run.
func (e *Engine) Customer(id string) (*CustomerProfile, bool) {
	p, ok := e.customers[id]
	return p, ok
}

// getOrCreateCustomer resolves a customer ID to its profile, creating and
// caching it on first reference.
func (e *Engine) getOrCreateCustomer(customerID string) *CustomerProfile {
	if p, ok := e.customers[customerID]; ok {
		return p
	}
	p := newCustomerProfile(e.rng, customerID, e.cities)
	e.customers[customerID] = p
	return p
}

func (e *Engine) getOrCreateMerchant(merchantID string, nearCity *refdata.City) *MerchantProfile {
	if m, ok := e.merchants[merchantID]; ok {
		return m
	}
	m := newMerchantProfile(e.rng, merchantID, nearCity, e.cities)
	e.merchants[merchantID] = m
	return m
}

// GenerateTransaction produces one transaction for the given customer within
// the date window. An empty customerID synthesizes a fresh one; zero times
// default to the 2024 calendar year.
func (e *Engine) GenerateTransaction(customerID string, start, end time.Time) domain.Transaction {
	if start.IsZero() {
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if end.IsZero() {
		end = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	if customerID == "" {
		customerID = e.newCustomerID()
	}
	customer := e.getOrCreateCustomer(customerID)

	// Fresh merchant ID per transaction; collisions resolve to the cached
	// profile. Most merchants sit near the customer's home city.
	merchantID := fmt.Sprintf("MERCH_%05d", 10000+e.rng.Intn(90000))
	var merchant *MerchantProfile
	if e.rng.Float64() < localMerchantProbability {
		merchant = e.getOrCreateMerchant(merchantID, &customer.HomeCity)
	} else {
		merchant = e.getOrCreateMerchant(merchantID, nil)
	}

	ts := e.generateTimestamp(start, end, customer)
	amount := e.generateAmount(customer, merchant)

	// The customer isn't exactly at the city centre either; jitter their
	// position independently of the merchant's.
	customerLat := customer.HomeCity.Lat + uniform(e.rng, -0.05, 0.05)
	customerLon := customer.HomeCity.Lon + uniform(e.rng, -0.05, 0.05)
	distance := geo.Distance(customerLat, customerLon, merchant.Lat, merchant.Lon)

	isOnline := refdata.OnlineCategories[merchant.Category] || e.rng.Float64() < onlineProbability

	var deviceType, txnType string
	if isOnline {
		devices := []string{domain.DeviceOnline, domain.DeviceMobileApp}
		deviceType = devices[e.rng.Intn(len(devices))]
		txnType = domain.TypeOnline
	} else {
		devices := []string{domain.DeviceChipAndPin, domain.DeviceContactless, domain.DeviceSwipe}
		deviceType = devices[e.rng.Intn(len(devices))]
		txnType = e.drawTransactionType()
	}

	transactionID := fmt.Sprintf("TXN_%s_%s", ts.Format("20060102"), randUpperAlnum(e.rng, 6))

	return domain.Transaction{
		TransactionID:    transactionID,
		Timestamp:        ts.Format(domain.TimestampLayout),
		CustomerID:       customer.CustomerID,
		MerchantID:       merchant.MerchantID,
		MerchantName:     merchant.Name,
		MerchantCategory: merchant.Category,
		MCCCode:          merchant.MCC,
		Amount:           amount,
		Currency:         domain.CurrencyUSD,
		TransactionType:  txnType,
		CardLast4:        customer.CardLast4,
		CustomerLocation: domain.Location{
			City:  customer.HomeCity.Name,
			State: customer.HomeCity.State,
			Zip:   customer.HomeCity.ZipPrefix + randDigits(e.rng, 2),
		},
		MerchantLocation: domain.Location{
			City:  merchant.City,
			State: merchant.State,
			Zip:   merchant.Zip,
		},
		DistanceKM: round2(distance),
		IsOnline:   isOnline,
		DeviceType: deviceType,
		IsAnomaly:  false,
		RiskScore:  round2(uniform(e.rng, 0.01, 0.25)),
	}
}

// BatchOptions parameterizes GenerateBatch.
type BatchOptions struct {
	NumRecords int

	// Date window, YYYY-MM-DD. Blank fields take the 2024 defaults.
	StartDate string
	EndDate   string

	// NumCustomers sizes the pre-synthesized customer pool.
	// Zero means max(10, NumRecords/40).
	NumCustomers int

	// OnRecord, if set, is invoked after each record with (done, total).
	// Used by CLI callers to drive a progress bar.
	OnRecord func(done, total int)
}

// GenerateBatch produces NumRecords transactions drawn from a shared
// customer pool, sorted ascending by timestamp. Deterministic for a given
// engine seed and option set.
func (e *Engine) GenerateBatch(opts BatchOptions) ([]domain.Transaction, error) {
	if opts.NumRecords < MinBatchRecords || opts.NumRecords > MaxBatchRecords {
		return nil, fmt.Errorf("%w: num_records must be between %d and %d, got %d",
			ErrInvalidInput, MinBatchRecords, MaxBatchRecords, opts.NumRecords)
	}

	startDate := opts.StartDate
	if startDate == "" {
		startDate = DefaultStartDate
	}
	endDate := opts.EndDate
	if endDate == "" {
		endDate = DefaultEndDate
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q is not a valid YYYY-MM-DD date", ErrInvalidInput, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q is not a valid YYYY-MM-DD date", ErrInvalidInput, endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start_date %s is after end_date %s", ErrInvalidInput, startDate, endDate)
	}

	numCustomers := opts.NumCustomers
	if numCustomers <= 0 {
		numCustomers = opts.NumRecords / 40
		if numCustomers < 10 {
			numCustomers = 10
		}
	}

	// Pre-synthesize the customer pool; every record picks uniformly from it.
	customerIDs := make([]string, numCustomers)
	for i := range customerIDs {
		customerIDs[i] = e.newCustomerID()
	}

	batch := make([]domain.Transaction, 0, opts.NumRecords)
	for i := 0; i < opts.NumRecords; i++ {
		id := customerIDs[e.rng.Intn(len(customerIDs))]
		batch = append(batch, e.GenerateTransaction(id, start, end))
		if opts.OnRecord != nil {
			opts.OnRecord(i+1, opts.NumRecords)
		}
	}

	// Fixed-width UTC timestamps sort chronologically as strings. Stable so
	// equal timestamps keep generation order and the batch stays
	// reproducible.
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Timestamp < batch[j].Timestamp
	})

	return batch, nil
}

func (e *Engine) newCustomerID() string {
	return fmt.Sprintf("CUST_%07d", 1000000+e.rng.Intn(9000000))
}

// generateTimestamp picks a uniform day in the window, then an hour from the
// customer's precomputed cumulative weight curve with a single uniform draw.
func (e *Engine) generateTimestamp(start, end time.Time, customer *CustomerProfile) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	day := start.AddDate(0, 0, e.rng.Intn(days+1))

	cdf := customer.hourCDF
	u := e.rng.Float64() * cdf[len(cdf)-1]
	hour := sort.SearchFloat64s(cdf, u)
	if hour > 23 {
		hour = 23
	}

	minute := e.rng.Intn(60)
	second := e.rng.Intn(60)

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC)
}

// generateAmount blends the customer's habitual spend with the merchant
// category's typical ticket, then spreads it lognormally.
func (e *Engine) generateAmount(customer *CustomerProfile, merchant *MerchantProfile) float64 {
	base := (customer.AvgTransactionAmount + merchant.AvgAmount) / 2
	amount := lognormal(e.rng, math.Log(base), 0.5)
	return round2(clampFloat(amount, 1, 10000))
}

// drawTransactionType draws a physical payment type, weighted
// debit 40% / credit 40% / mobile 20%.
func (e *Engine) drawTransactionType() string {
	switch r := e.rng.Float64(); {
	case r < 0.4:
		return domain.TypeDebitCard
	case r < 0.8:
		return domain.TypeCreditCard
	default:
		return domain.TypeMobilePayment
	}
}
