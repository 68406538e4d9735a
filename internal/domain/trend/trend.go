// Package trend summarizes historical price series for a market segment:
// direction from a least-squares slope, volatility from period-over-period
// percentage changes, and a one-period linear price projection.
package trend

import (
	"fmt"
	"math"
	"time"
)

// defaultFlatTolerance is the slope band, relative to the mean price, inside
// which a series counts as flat.
const defaultFlatTolerance = 0.001

// Direction classifies where a segment's prices are heading.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionFlat    Direction = "flat"
)

// Point is one observed price for a segment.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Series is a chronologically ordered price history with unique timestamps.
// Ordering is the caller's responsibility; the segment store enforces it on
// ingestion.
type Series []Point

// Summary is the aggregate view of one segment's price history.
type Summary struct {
	Direction      Direction `json:"direction"`
	Volatility     float64   `json:"volatility"`
	ProjectedPrice float64   `json:"projected_price"`
}

// Aggregator computes trend summaries.
type Aggregator struct {
	flatTolerance float64
}

// NewAggregator creates an Aggregator with the default flat tolerance,
// overridable via options.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{flatTolerance: defaultFlatTolerance}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize reduces a series to direction, volatility and a projected price.
func (a *Aggregator) Summarize(series Series) (Summary, error) {
	if len(series) < 2 {
		return Summary{}, fmt.Errorf("%w: got %d", ErrInsufficientData, len(series))
	}

	slope, intercept := leastSquares(series)
	mean := meanPrice(series)

	direction := DirectionFlat
	band := a.flatTolerance * math.Abs(mean)
	switch {
	case slope > band:
		direction = DirectionRising
	case slope < -band:
		direction = DirectionFalling
	}

	projected := intercept + slope*float64(len(series))
	if projected < 0 {
		projected = 0
	}

	return Summary{
		Direction:      direction,
		Volatility:     volatility(series),
		ProjectedPrice: projected,
	}, nil
}

// leastSquares fits price = intercept + slope*i over period indices 0..n-1.
func leastSquares(series Series) (slope, intercept float64) {
	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.Price
		sumXY += x * p.Price
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// volatility is the population standard deviation of period-over-period
// percentage changes. Changes off a zero price are skipped; they have no
// percentage representation.
func volatility(series Series) float64 {
	changes := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Price
		if prev == 0 {
			continue
		}
		changes = append(changes, (series[i].Price-prev)/prev)
	}
	if len(changes) == 0 {
		return 0
	}

	var sum float64
	for _, c := range changes {
		sum += c
	}
	mean := sum / float64(len(changes))

	var ss float64
	for _, c := range changes {
		d := c - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(changes)))
}

func meanPrice(series Series) float64 {
	var sum float64
	for _, p := range series {
		sum += p.Price
	}
	return sum / float64(len(series))
}
