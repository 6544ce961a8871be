package generator

import (
	"fmt"
	"math/rand"

	"genie/synthdata-api/internal/refdata"
)

// CustomerProfile is a customer's stable behavioural fingerprint: where they
// live, what they buy, how much they spend, and when they are awake. Profiles
// are created on first reference, cached by customer ID for the run, and
// never mutated afterwards.
type CustomerProfile struct {
	CustomerID           string
	HomeCity             refdata.City
	PreferredCategories  []string
	AvgTransactionAmount float64
	ActiveStart          int // first active hour, inclusive
	ActiveEnd            int // last active hour, inclusive
	CardLast4            string

	// hourCDF is the cumulative hourly weight curve for this customer,
	// precomputed so each timestamp draw is one uniform sample + search.
	hourCDF []float64
}

// MerchantProfile is a merchant's identity and location. Same cache and
// lifecycle discipline as CustomerProfile.
type MerchantProfile struct {
	MerchantID string
	Name       string
	Category   string
	MCC        string
	City       string
	State      string
	Zip        string
	Lat        float64
	Lon        float64
	AvgAmount  float64
	StdAmount  float64
	HighRisk   bool
}

// baseHourWeights encodes how likely a transaction is at each hour of day,
// with peaks at lunch (12:00) and dinner (19:00).
var baseHourWeights = [24]float64{
	0.5, 0.3, 0.2, 0.2, 0.3, 0.5, // 0-5 night
	1.0, 2.0, 3.0, 4.0, 5.0, 6.0, // 6-11 morning
	8.0, 7.0, 5.0, 4.0, 4.0, 5.0, // 12-17 afternoon
	7.0, 8.0, 6.0, 4.0, 2.0, 1.0, // 18-23 evening
}

// offHoursDamping scales hour weights outside the customer's active window.
// Deliberately non-zero: real people occasionally transact while "asleep".
const offHoursDamping = 0.1

func newCustomerProfile(rng *rand.Rand, customerID string, cities []refdata.City) *CustomerProfile {
	home := cities[rng.Intn(len(cities))]

	// 3-7 distinct preferred categories, sampled without replacement.
	names := refdata.CategoryNames()
	count := 3 + rng.Intn(5)
	perm := rng.Perm(len(names))
	preferred := make([]string, count)
	for i := 0; i < count; i++ {
		preferred[i] = names[perm[i]]
	}

	avg := clampFloat(lognormal(rng, 3.5, 0.8), 10, 500)

	// 90% daytime shoppers; the rest are night owls.
	var start, end int
	if rng.Float64() < 0.9 {
		start = 7 + rng.Intn(4)  // 7-10
		end = 20 + rng.Intn(4)   // 20-23
	} else {
		start = rng.Intn(7)      // 0-6
		end = 2 + rng.Intn(7)    // 2-8
	}

	return &CustomerProfile{
		CustomerID:           customerID,
		HomeCity:             home,
		PreferredCategories:  preferred,
		AvgTransactionAmount: avg,
		ActiveStart:          start,
		ActiveEnd:            end,
		CardLast4:            randDigits(rng, 4),
		hourCDF:              buildHourCDF(start, end),
	}
}

// buildHourCDF dampens the base weights outside [start,end] and accumulates
// them into a cumulative array.
func buildHourCDF(start, end int) []float64 {
	cdf := make([]float64, 24)
	var total float64
	for h := 0; h < 24; h++ {
		w := baseHourWeights[h]
		if h < start || h > end {
			w *= offHoursDamping
		}
		total += w
		cdf[h] = total
	}
	return cdf
}

func newMerchantProfile(rng *rand.Rand, merchantID string, nearCity *refdata.City, cities []refdata.City) *MerchantProfile {
	cat := refdata.Categories[rng.Intn(len(refdata.Categories))]

	pool, ok := refdata.MerchantNames[cat.Name]
	if !ok || len(pool) == 0 {
		pool = []string{refdata.FallbackMerchantName}
	}
	storeNum := 100 + rng.Intn(9900) // 100-9999
	name := fmt.Sprintf("%s #%d", pool[rng.Intn(len(pool))], storeNum)

	city := nearCity
	if city == nil {
		c := cities[rng.Intn(len(cities))]
		city = &c
	}

	// Jitter within roughly 10 km of the city centre.
	latOffset := uniform(rng, -0.1, 0.1)
	lonOffset := uniform(rng, -0.1, 0.1)

	highRisk := rng.Float64() < 0.02
	if highRisk {
		brand := refdata.HighRiskBrands[rng.Intn(len(refdata.HighRiskBrands))]
		name = fmt.Sprintf("%s #%d", brand, storeNum)
	}

	return &MerchantProfile{
		MerchantID: merchantID,
		Name:       name,
		Category:   cat.Name,
		MCC:        cat.MCC,
		City:       city.Name,
		State:      city.State,
		Zip:        city.ZipPrefix + randDigits(rng, 2),
		Lat:        city.Lat + latOffset,
		Lon:        city.Lon + lonOffset,
		AvgAmount:  cat.AvgAmount,
		StdAmount:  cat.StdAmount,
		HighRisk:   highRisk,
	}
}
