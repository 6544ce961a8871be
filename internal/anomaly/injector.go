// Package anomaly rewrites a controlled fraction of a finished batch into
// labeled fraud signatures.
//
// The injector deliberately breaks the coherence the generation engine
// worked to establish — geography, tempo, amounts, category habits — in one
// of six fixed archetypes, without disturbing the rest of the batch. It
// never mutates the caller's slice: every rewritten record is a freshly
// constructed value placed into a copied batch.
//
// Selection is an explicit shuffle-then-slice over the index range, and the
// six archetypes are assigned round-robin in selection order, so type counts
// come out near-even rather than proportionally random.
package anomaly

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"genie/synthdata-api/internal/domain"
	"genie/synthdata-api/internal/refdata"
)

// Rate bounds; out-of-range rates are clamped, not rejected.
const (
	MinRate = 0.0
	MaxRate = 20.0
)

// Injector owns one seeded random stream. Not safe for concurrent use;
// build one per logical request.
type Injector struct {
	rng *rand.Rand
}

// New creates an injector. A zero seed means "not reproducible": the stream
// is seeded from the clock.
func New(seed int64) *Injector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Injector{rng: rand.New(rand.NewSource(seed))}
}

// Inject returns a copy of batch with floor(len(batch)*rate/100) records
// rewritten into anomalies. Rate is a percentage clamped to [0,20]. An empty
// batch or a zero anomaly count returns the batch unchanged. Record
// positions, transaction IDs, and customer/merchant IDs are never altered.
func (inj *Injector) Inject(batch []domain.Transaction, rate float64) []domain.Transaction {
	if len(batch) == 0 {
		return batch
	}

	rate = math.Min(math.Max(rate, MinRate), MaxRate)
	count := int(float64(len(batch)) * rate / 100)
	if count == 0 {
		return batch
	}

	out := make([]domain.Transaction, len(batch))
	copy(out, batch)

	// Positions of each customer's records, for the amount archetype's
	// peer-average lookup.
	byCustomer := make(map[string][]int, len(out))
	for i, txn := range out {
		byCustomer[txn.CustomerID] = append(byCustomer[txn.CustomerID], i)
	}

	// Shuffle the ascending index range and take the first count entries:
	// distinct positions, uniform without replacement, fixed order for a
	// given seed.
	selected := inj.rng.Perm(len(out))[:count]

	for i, idx := range selected {
		anomalyType := domain.AnomalyTypes[i%len(domain.AnomalyTypes)]
		switch anomalyType {
		case domain.AnomalyGeographic:
			out[idx] = inj.injectGeographic(out[idx])
		case domain.AnomalyVelocity:
			out[idx] = inj.injectVelocity(out[idx])
		case domain.AnomalyAmount:
			out[idx] = inj.injectAmount(out[idx], idx, out, byCustomer)
		case domain.AnomalyCategory:
			out[idx] = inj.injectCategory(out[idx])
		case domain.AnomalyTemporal:
			out[idx] = inj.injectTemporal(out[idx])
		case domain.AnomalyMerchantRisk:
			out[idx] = inj.injectMerchantRisk(out[idx])
		}
	}

	return out
}

// flag stamps the anomaly label and a risk score drawn from the archetype's
// band onto the record.
func (inj *Injector) flag(txn domain.Transaction, anomalyType string, riskLo, riskHi float64) domain.Transaction {
	txn.IsAnomaly = true
	t := anomalyType
	txn.AnomalyType = &t
	txn.RiskScore = inj.round2(inj.uniform(riskLo, riskHi))
	return txn
}

// injectGeographic fabricates impossible travel: the customer and merchant
// sides of one purchase are placed in a fixed distant city pair.
func (inj *Injector) injectGeographic(txn domain.Transaction) domain.Transaction {
	pair := refdata.DistantCityPairs[inj.rng.Intn(len(refdata.DistantCityPairs))]
	txn.CustomerLocation = pair.Customer
	txn.MerchantLocation = pair.Merchant
	txn.DistanceKM = inj.round2(inj.uniform(2000, 4500))
	return inj.flag(txn, domain.AnomalyGeographic, 0.75, 0.95)
}

// injectVelocity dresses the record up as one purchase of a rapid burst.
func (inj *Injector) injectVelocity(txn domain.Transaction) domain.Transaction {
	txn.MerchantName = fmt.Sprintf("Rapid Purchase #%d", 1+inj.rng.Intn(10))
	txn.MerchantCategory = refdata.VelocityCategories[inj.rng.Intn(len(refdata.VelocityCategories))]
	return inj.flag(txn, domain.AnomalyVelocity, 0.70, 0.90)
}

// injectAmount inflates the amount to 10-50x the customer's typical spend,
// derived from their other non-anomalous records in the batch.
func (inj *Injector) injectAmount(txn domain.Transaction, idx int, batch []domain.Transaction, byCustomer map[string][]int) domain.Transaction {
	avg := 50.0 // fallback when the customer has no usable peers
	var sum float64
	var n int
	for _, i := range byCustomer[txn.CustomerID] {
		if i == idx || batch[i].IsAnomaly {
			continue
		}
		sum += batch[i].Amount
		n++
	}
	if n > 0 {
		avg = sum / float64(n)
	}

	multiplier := inj.uniform(10, 50)
	txn.Amount = inj.round2(math.Min(9999.99, avg*multiplier))

	txn.MerchantCategory = refdata.LuxuryCategories[inj.rng.Intn(len(refdata.LuxuryCategories))]
	txn.MerchantName = fmt.Sprintf("%s #%d",
		refdata.LuxuryMerchants[inj.rng.Intn(len(refdata.LuxuryMerchants))],
		100+inj.rng.Intn(900))

	return inj.flag(txn, domain.AnomalyAmount, 0.65, 0.85)
}

// injectCategory moves the purchase into a category the customer never
// shops in, with name and MCC fixed by the pool entry.
func (inj *Injector) injectCategory(txn domain.Transaction) domain.Transaction {
	unusual := refdata.UnusualCategories[inj.rng.Intn(len(refdata.UnusualCategories))]
	txn.MerchantCategory = unusual.Name
	txn.MerchantName = fmt.Sprintf("%s #%d", unusual.MerchantName, 100+inj.rng.Intn(900))
	txn.MCCCode = unusual.MCC
	return inj.flag(txn, domain.AnomalyCategory, 0.60, 0.80)
}

// injectTemporal moves the purchase into the 01:00-05:00 dead zone while
// keeping its date. A timestamp that fails to parse is replaced with the
// current time first — injection must never fail on malformed input.
func (inj *Injector) injectTemporal(txn domain.Transaction) domain.Transaction {
	ts, err := txn.Time()
	if err != nil {
		ts = time.Now().UTC()
	}

	hour := 1 + inj.rng.Intn(5)
	minute := inj.rng.Intn(60)
	ts = time.Date(ts.Year(), ts.Month(), ts.Day(), hour, minute, ts.Second(), 0, time.UTC)
	txn.Timestamp = ts.Format(domain.TimestampLayout)

	return inj.flag(txn, domain.AnomalyTemporal, 0.55, 0.75)
}

// injectMerchantRisk reroutes the purchase through a high-risk merchant;
// category and MCC follow the merchant's name.
func (inj *Injector) injectMerchantRisk(txn domain.Transaction) domain.Transaction {
	brand := refdata.HighRiskMerchants[inj.rng.Intn(len(refdata.HighRiskMerchants))]
	txn.MerchantName = fmt.Sprintf("%s #%d", brand, 100+inj.rng.Intn(900))

	switch {
	case strings.Contains(brand, "Crypto") || strings.Contains(brand, "Currency"):
		txn.MerchantCategory = "Cryptocurrency"
		txn.MCCCode = "6051"
	case strings.Contains(brand, "Casino") || strings.Contains(brand, "Gambling"):
		txn.MerchantCategory = "Gambling"
		txn.MCCCode = "7995"
	default:
		txn.MerchantCategory = "Money Services"
		txn.MCCCode = "6050"
	}

	// These merchants see larger tickets.
	txn.Amount = inj.round2(inj.uniform(200, 2000))

	return inj.flag(txn, domain.AnomalyMerchantRisk, 0.80, 0.98)
}

func (inj *Injector) uniform(lo, hi float64) float64 {
	return lo + inj.rng.Float64()*(hi-lo)
}

func (inj *Injector) round2(v float64) float64 {
	return math.Round(v*100) / 100
}
