package generator

import (
	"math"
	"math/rand"
)

const digits = "0123456789"
const upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// uniform draws a float64 uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// lognormal draws from a lognormal distribution whose logarithm has the
// given mean and standard deviation.
func lognormal(rng *rand.Rand, mu, sigma float64) float64 {
	return math.Exp(mu + sigma*rng.NormFloat64())
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round2 rounds to 2 decimal places, the fixed-point precision of amounts,
// distances, and risk scores on the wire.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func randDigits(rng *rand.Rand, n int) string {
	return randString(rng, digits, n)
}

func randUpperAlnum(rng *rand.Rand, n int) string {
	return randString(rng, upperAlnum, n)
}

func randString(rng *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
