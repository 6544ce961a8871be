// Package metrics computes read-only quality aggregates over a finished
// batch: amount distribution, temporal patterns, geographic coherence,
// anomaly breakdown, and customer consistency. It consumes the batch as-is
// and never modifies it.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"genie/synthdata-api/internal/domain"
)

// Report is the full set of aggregates for one batch.
type Report struct {
	TotalTransactions    int                 `json:"total_transactions"`
	UniqueCustomers      int                 `json:"unique_customers"`
	UniqueMerchants      int                 `json:"unique_merchants"`
	DateRange            DateRange           `json:"date_range"`
	AmountStats          AmountStats         `json:"amount_stats"`
	TemporalPatterns     TemporalPatterns    `json:"temporal_patterns"`
	GeographicCoherence  GeographicCoherence `json:"geographic_coherence"`
	AnomalyBreakdown     AnomalyBreakdown    `json:"anomaly_breakdown"`
	CustomerBehavior     CustomerBehavior    `json:"customer_behavior"`
	CategoryDistribution []CategoryShare     `json:"category_distribution"`
}

// DateRange is the first and last transaction date observed.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AmountStats summarizes the amount distribution.
type AmountStats struct {
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	Std         float64            `json:"std"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Percentiles map[string]float64 `json:"percentiles"`
}

// HourCount is one bucket of the hourly histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayCount is one bucket of the day-of-week histogram.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// TemporalPatterns summarizes when transactions happen.
type TemporalPatterns struct {
	PeakHour           string      `json:"peak_hour"`
	PeakDay            string      `json:"peak_day"`
	WeekendPct         float64     `json:"weekend_pct"`
	BusinessHoursPct   float64     `json:"business_hours_pct"`
	HourlyDistribution []HourCount `json:"hourly_distribution"`
	DailyDistribution  []DayCount  `json:"daily_distribution"`
}

// GeographicCoherence buckets physical transactions by customer-to-merchant
// distance.
type GeographicCoherence struct {
	Within10KM   float64 `json:"within_10km"`
	Within50KM   float64 `json:"within_50km"`
	LongDistance float64 `json:"long_distance"`
	OnlinePct    float64 `json:"online_pct"`
}

// AnomalyBreakdown counts injected anomalies by archetype.
type AnomalyBreakdown struct {
	TotalAnomalies int            `json:"total_anomalies"`
	AnomalyRate    float64        `json:"anomaly_rate"`
	ByType         map[string]int `json:"by_type"`
}

// CustomerBehavior measures how consistent customers are with their own
// spending.
type CustomerBehavior struct {
	AvgTransactionsPerCustomer float64 `json:"avg_transactions_per_customer"`
	ConsistencyScore           float64 `json:"consistency_score"`
}

// CategoryShare is one entry of the category distribution.
type CategoryShare struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

var dayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Calculate computes the full report for a batch. An empty batch yields a
// zeroed report rather than an error.
func Calculate(batch []domain.Transaction) Report {
	if len(batch) == 0 {
		return emptyReport()
	}

	customers := make(map[string]bool)
	merchants := make(map[string]bool)
	amounts := make([]float64, 0, len(batch))
	var timestamps []time.Time

	for i := range batch {
		txn := &batch[i]
		customers[txn.CustomerID] = true
		merchants[txn.MerchantID] = true
		amounts = append(amounts, txn.Amount)
		if ts, err := txn.Time(); err == nil {
			timestamps = append(timestamps, ts)
		}
	}

	return Report{
		TotalTransactions:    len(batch),
		UniqueCustomers:      len(customers),
		UniqueMerchants:      len(merchants),
		DateRange:            calcDateRange(timestamps),
		AmountStats:          calcAmountStats(amounts),
		TemporalPatterns:     calcTemporalPatterns(timestamps),
		GeographicCoherence:  calcGeographic(batch),
		AnomalyBreakdown:     calcAnomalyBreakdown(batch),
		CustomerBehavior:     calcCustomerBehavior(batch, len(customers)),
		CategoryDistribution: calcCategoryDistribution(batch),
	}
}

func emptyReport() Report {
	return Report{
		DateRange: DateRange{Start: "N/A", End: "N/A"},
		AmountStats: AmountStats{
			Percentiles: map[string]float64{"25": 0, "50": 0, "75": 0, "95": 0},
		},
		TemporalPatterns: TemporalPatterns{
			PeakHour:           "N/A",
			PeakDay:            "N/A",
			HourlyDistribution: []HourCount{},
			DailyDistribution:  []DayCount{},
		},
		AnomalyBreakdown:     AnomalyBreakdown{ByType: map[string]int{}},
		CategoryDistribution: []CategoryShare{},
	}
}

func calcDateRange(timestamps []time.Time) DateRange {
	if len(timestamps) == 0 {
		return DateRange{Start: "N/A", End: "N/A"}
	}
	min, max := timestamps[0], timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	return DateRange{Start: min.Format("2006-01-02"), End: max.Format("2006-01-02")}
}

func calcAmountStats(amounts []float64) AmountStats {
	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)
	n := len(sorted)

	var sum float64
	for _, a := range sorted {
		sum += a
	}
	mean := sum / float64(n)

	var variance float64
	if n > 1 {
		for _, a := range sorted {
			variance += (a - mean) * (a - mean)
		}
		variance /= float64(n - 1)
	}

	percentile := func(p int) float64 {
		idx := n * p / 100
		if idx > n-1 {
			idx = n - 1
		}
		return round2(sorted[idx])
	}

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return AmountStats{
		Mean:   round2(mean),
		Median: round2(median),
		Std:    round2(math.Sqrt(variance)),
		Min:    round2(sorted[0]),
		Max:    round2(sorted[n-1]),
		Percentiles: map[string]float64{
			"25": percentile(25),
			"50": percentile(50),
			"75": percentile(75),
			"95": percentile(95),
		},
	}
}

func calcTemporalPatterns(timestamps []time.Time) TemporalPatterns {
	if len(timestamps) == 0 {
		return emptyReport().TemporalPatterns
	}

	hourCounts := make(map[int]int)
	dayCounts := make(map[string]int)
	var weekend, business int

	for _, ts := range timestamps {
		hourCounts[ts.Hour()]++
		dayCounts[ts.Weekday().String()]++
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
		if h := ts.Hour(); h >= 9 && h < 18 {
			business++
		}
	}

	peakHour, peakDay := 0, dayOrder[0]
	for h := 0; h < 24; h++ {
		if hourCounts[h] > hourCounts[peakHour] {
			peakHour = h
		}
	}
	for _, d := range dayOrder {
		if dayCounts[d] > dayCounts[peakDay] {
			peakDay = d
		}
	}

	hourly := make([]HourCount, 24)
	for h := 0; h < 24; h++ {
		hourly[h] = HourCount{Hour: h, Count: hourCounts[h]}
	}
	daily := make([]DayCount, len(dayOrder))
	for i, d := range dayOrder {
		daily[i] = DayCount{Day: d, Count: dayCounts[d]}
	}

	total := float64(len(timestamps))
	return TemporalPatterns{
		PeakHour:           fmt.Sprintf("%02d:00-%02d:00", peakHour, (peakHour+1)%24),
		PeakDay:            peakDay,
		WeekendPct:         round1(float64(weekend) / total * 100),
		BusinessHoursPct:   round1(float64(business) / total * 100),
		HourlyDistribution: hourly,
		DailyDistribution:  daily,
	}
}

func calcGeographic(batch []domain.Transaction) GeographicCoherence {
	var within10, within50, longDist, physical, online int
	for i := range batch {
		if batch[i].IsOnline {
			online++
			continue
		}
		physical++
		switch d := batch[i].DistanceKM; {
		case d <= 10:
			within10++
			within50++
		case d <= 50:
			within50++
		default:
			longDist++
		}
	}

	if physical == 0 {
		return GeographicCoherence{OnlinePct: 100}
	}

	pct := func(n int) float64 { return round1(float64(n) / float64(physical) * 100) }
	return GeographicCoherence{
		Within10KM:   pct(within10),
		Within50KM:   pct(within50),
		LongDistance: pct(longDist),
		OnlinePct:    round1(float64(online) / float64(len(batch)) * 100),
	}
}

func calcAnomalyBreakdown(batch []domain.Transaction) AnomalyBreakdown {
	byType := make(map[string]int)
	total := 0
	for i := range batch {
		if !batch[i].IsAnomaly {
			continue
		}
		total++
		name := "unknown"
		if batch[i].AnomalyType != nil {
			name = *batch[i].AnomalyType
		}
		byType[name]++
	}
	return AnomalyBreakdown{
		TotalAnomalies: total,
		AnomalyRate:    round2(float64(total) / float64(len(batch)) * 100),
		ByType:         byType,
	}
}

// calcCustomerBehavior scores consistency as 1 minus the mean coefficient of
// variation of each customer's non-anomalous amounts; lower variation means
// more consistent customers.
func calcCustomerBehavior(batch []domain.Transaction, numCustomers int) CustomerBehavior {
	amounts := make(map[string][]float64)
	for i := range batch {
		if batch[i].IsAnomaly {
			continue
		}
		amounts[batch[i].CustomerID] = append(amounts[batch[i].CustomerID], batch[i].Amount)
	}

	var scores []float64
	for _, vals := range amounts {
		if len(vals) < 2 {
			continue
		}
		var sum float64
		for _, v := range vals {
			sum += v
		}
		mean := sum / float64(len(vals))
		if mean <= 0 {
			continue
		}
		var variance float64
		for _, v := range vals {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(len(vals)-1))
		cv := std / mean
		scores = append(scores, math.Max(0, 1-math.Min(cv, 1)))
	}

	consistency := 0.5
	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		consistency = round2(sum / float64(len(scores)))
	}

	return CustomerBehavior{
		AvgTransactionsPerCustomer: round1(float64(len(batch)) / float64(numCustomers)),
		ConsistencyScore:           consistency,
	}
}

func calcCategoryDistribution(batch []domain.Transaction) []CategoryShare {
	counts := make(map[string]int)
	for i := range batch {
		counts[batch[i].MerchantCategory]++
	}

	shares := make([]CategoryShare, 0, len(counts))
	for cat, count := range counts {
		shares = append(shares, CategoryShare{
			Category:   cat,
			Count:      count,
			Percentage: round1(float64(count) / float64(len(batch)) * 100),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > 15 {
		shares = shares[:15]
	}
	return shares
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
