package scenario

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Mackliffe/rent2own-engine/internal/domain/rank"
	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	regimeCount        = 4
)

// Market regime cases.
const (
	caseSteadyGrowth = 0
	caseFlatMarket   = 1
	caseDecline      = 2
	caseChoppy       = 3
)

// Monthly drift and noise per regime, as fractions of the price.
const (
	growthDrift  = 0.008
	declineDrift = -0.006
	calmNoise    = 0.004
	choppyNoise  = 0.06
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, n).
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func randomBetween(lo, hi float64) float64 {
	return lo + getRandomFloat()*(hi-lo)
}

// generateSeries produces months of monthly observations for one
// segment under a randomly chosen market regime.
func generateSeries(months int, startPrice float64) trend.Series {
	var drift, noise float64
	switch getRandomInt(regimeCount) {
	case caseSteadyGrowth:
		drift, noise = growthDrift, calmNoise
	case caseFlatMarket:
		drift, noise = 0, calmNoise
	case caseDecline:
		drift, noise = declineDrift, calmNoise
	case caseChoppy:
		drift, noise = 0, choppyNoise
	}

	base := time.Now().UTC().AddDate(0, -months, 0)
	series := make(trend.Series, 0, months)
	price := startPrice
	for i := 0; i < months; i++ {
		series = append(series, trend.Point{
			Timestamp: base.AddDate(0, i, 0),
			Price:     price,
		})
		shock := (getRandomFloat()*2 - 1) * noise
		price *= 1 + drift + shock
		if price < 1 {
			price = 1
		}
	}
	return series
}

// generateBuyers produces buyer profiles spread across the configured
// income range, with debts and credit quality drawn independently.
func generateBuyers(cfg *Config) []rank.Buyer {
	buyers := make([]rank.Buyer, 0, cfg.Buyers)
	for i := 0; i < cfg.Buyers; i++ {
		income := randomBetween(cfg.MinIncome, cfg.MaxIncome)
		buyers = append(buyers, rank.Buyer{
			MonthlyIncome:          income,
			MonthlyDebtObligations: income * randomBetween(0, 0.25),
			CreditQuality:          randomBetween(30, 100),
			PreferredCity:          cfg.Cities[getRandomInt(len(cfg.Cities))],
		})
	}
	return buyers
}

// generateCandidates produces listings with unique IDs across the
// configured segments and price range.
func generateCandidates(cfg *Config) []rank.Candidate {
	candidates := make([]rank.Candidate, 0, cfg.Candidates)
	for i := 0; i < cfg.Candidates; i++ {
		candidates = append(candidates, rank.Candidate{
			ID:           uuid.New().String(),
			Price:        randomBetween(cfg.MinPrice, cfg.MaxPrice),
			City:         cfg.Cities[getRandomInt(len(cfg.Cities))],
			PropertyType: cfg.PropertyTypes[getRandomInt(len(cfg.PropertyTypes))],
		})
	}
	return candidates
}
