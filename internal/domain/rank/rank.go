// Package rank orders candidate properties for a buyer by combining
// affordability fit, risk tier and market trend favorability into one
// composite score.
package rank

import (
	"fmt"
	"sort"

	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	"github.com/Mackliffe/rent2own-engine/internal/domain/risk"
	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
)

// Default ranking configuration.
const (
	defaultAffordabilityWeight = 50
	defaultRiskWeight          = 30
	defaultTrendWeight         = 20
	defaultDownPaymentRatio    = 0.10
	defaultTermMonths          = 120
	defaultAnnualRatePercent   = 12
	volatilityReference        = 0.25

	favorabilityRising   = 1.0
	favorabilityOutpaced = 0.75 // rising market the buyer cannot afford
	favorabilityFlat     = 0.5
	favorabilityFalling  = 0.25
	volatilityPenaltyMax = 0.25
)

// Buyer is the profile driving a ranking request.
type Buyer struct {
	MonthlyIncome          float64
	MonthlyDebtObligations float64
	CreditQuality          float64
	Budget                 float64 // 0 means no cap
	PreferredCity          string
	PreferredPropertyType  string
	TermMonths             int // 0 means use the ranker default
}

// Candidate is one property under consideration. Attributes are opaque
// display data carried through untouched.
type Candidate struct {
	ID           string
	Price        float64
	City         string
	PropertyType string
	Attributes   map[string]string
}

// Recommendation is one ranked result.
type Recommendation struct {
	PropertyID        string    `json:"property_id"`
	Price             float64   `json:"price"`
	CompositeScore    float64   `json:"composite_score"`
	AffordabilityFit  float64   `json:"affordability_fit"`
	RiskScore         float64   `json:"risk_score"`
	RiskTier          risk.Tier `json:"risk_tier"`
	TrendFavorability float64   `json:"trend_favorability"`
}

// Diagnostic records why a candidate was excluded from a ranking batch.
type Diagnostic struct {
	PropertyID string `json:"property_id"`
	Reason     error  `json:"-"`
}

// TrendSource supplies the trend summary for a market segment.
type TrendSource interface {
	Summary(city, propertyType string) (trend.Summary, error)
}

// Ranker evaluates and orders candidates. It is safe for concurrent use.
type Ranker struct {
	evaluator *afford.Evaluator
	scorer    *risk.Scorer
	trends    TrendSource

	affordabilityWeight float64
	riskWeight          float64
	trendWeight         float64
	downPaymentRatio    float64
	defaultTermMonths   int
	annualRatePercent   float64
}

// New creates a Ranker over the given trend source with default weights,
// overridable via options.
func New(trends TrendSource, opts ...Option) *Ranker {
	r := &Ranker{
		evaluator:           afford.NewEvaluator(),
		scorer:              risk.NewScorer(),
		trends:              trends,
		affordabilityWeight: defaultAffordabilityWeight,
		riskWeight:          defaultRiskWeight,
		trendWeight:         defaultTrendWeight,
		downPaymentRatio:    defaultDownPaymentRatio,
		defaultTermMonths:   defaultTermMonths,
		annualRatePercent:   defaultAnnualRatePercent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank evaluates every candidate and returns recommendations in descending
// composite order. A failing candidate never aborts the batch; it is dropped
// from the results and reported in the diagnostics.
func (r *Ranker) Rank(buyer Buyer, candidates []Candidate) ([]Recommendation, []Diagnostic) {
	recommendations := make([]Recommendation, 0, len(candidates))
	var diagnostics []Diagnostic

	for _, c := range candidates {
		rec, err := r.EvaluateCandidate(buyer, c)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{PropertyID: c.ID, Reason: err})
			continue
		}
		recommendations = append(recommendations, rec)
	}

	SortRecommendations(recommendations)
	return recommendations, diagnostics
}

// EvaluateCandidate scores a single candidate for the buyer. Evaluations are
// independent, so batch callers may fan them out across goroutines and
// re-sort with SortRecommendations.
func (r *Ranker) EvaluateCandidate(buyer Buyer, c Candidate) (Recommendation, error) {
	if buyer.Budget > 0 && c.Price > buyer.Budget {
		return Recommendation{}, fmt.Errorf("%w: price %v, budget %v", ErrOverBudget, c.Price, buyer.Budget)
	}

	termMonths := buyer.TermMonths
	if termMonths <= 0 {
		termMonths = r.defaultTermMonths
	}

	payment, err := amortize.PaymentForTerms(amortize.Terms{
		PropertyPrice:     c.Price,
		DownPaymentRatio:  r.downPaymentRatio,
		TermMonths:        termMonths,
		AnnualRatePercent: r.annualRatePercent,
	})
	if err != nil {
		return Recommendation{}, err
	}

	affordability, err := r.evaluator.Evaluate(afford.Profile{
		MonthlyIncome:          buyer.MonthlyIncome,
		MonthlyDebtObligations: buyer.MonthlyDebtObligations,
		ProposedMonthlyPayment: payment,
	})
	if err != nil {
		return Recommendation{}, err
	}

	summary, err := r.trends.Summary(c.City, c.PropertyType)
	if err != nil {
		return Recommendation{}, err
	}

	assessment, err := r.scorer.Score(risk.Inputs{
		Affordability:   affordability,
		CreditQuality:   buyer.CreditQuality,
		TrendVolatility: summary.Volatility,
	})
	if err != nil {
		return Recommendation{}, err
	}

	fit := clamp01(1 - affordability.Ratio)
	favorability := trendFavorability(summary, affordability.Verdict)

	total := r.affordabilityWeight + r.riskWeight + r.trendWeight
	composite := (r.affordabilityWeight*fit +
		r.riskWeight*assessment.Score/100 +
		r.trendWeight*favorability) / total

	return Recommendation{
		PropertyID:        c.ID,
		Price:             c.Price,
		CompositeScore:    composite,
		AffordabilityFit:  fit,
		RiskScore:         assessment.Score,
		RiskTier:          assessment.Tier,
		TrendFavorability: favorability,
	}, nil
}

// SortRecommendations orders by descending composite score, breaking ties in
// favor of the lower-risk candidate, then the cheaper one, then by property
// ID so the order never depends on input order.
func SortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.RiskScore != b.RiskScore {
			// A higher assessment score is the lower risk.
			return a.RiskScore > b.RiskScore
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.PropertyID < b.PropertyID
	})
}

// trendFavorability grades a segment's outlook for this buyer: a rising
// market they can afford is ideal, flat is neutral, and falling or volatile
// markets grade lower.
func trendFavorability(summary trend.Summary, verdict afford.Verdict) float64 {
	base := favorabilityFlat
	switch summary.Direction {
	case trend.DirectionRising:
		if verdict == afford.VerdictDoesNotQualify {
			base = favorabilityOutpaced
		} else {
			base = favorabilityRising
		}
	case trend.DirectionFalling:
		base = favorabilityFalling
	case trend.DirectionFlat:
		base = favorabilityFlat
	}
	penalty := volatilityPenaltyMax * clamp01(summary.Volatility/volatilityReference)
	return clamp01(base - penalty)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
