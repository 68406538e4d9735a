// Package app wires the financial engine components behind one façade:
// the segment store, trend cache, domain calculators, and the worker
// pool that fans candidate evaluation out during ranking.
package app

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Mackliffe/rent2own-engine/internal/adapters/cache"
	"github.com/Mackliffe/rent2own-engine/internal/adapters/mq/queue"
	"github.com/Mackliffe/rent2own-engine/internal/adapters/mq/worker"
	"github.com/Mackliffe/rent2own-engine/internal/adapters/repository"
	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	"github.com/Mackliffe/rent2own-engine/internal/domain/rank"
	"github.com/Mackliffe/rent2own-engine/internal/domain/risk"
	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
	"github.com/Mackliffe/rent2own-engine/pkg/logger"
	"github.com/Mackliffe/rent2own-engine/pkg/metrics"
)

// Service is the engine façade. All domain calculators are built once
// in New from the configured policy knobs; Start only brings up the
// asynchronous plumbing (queue and worker pool), so every computation
// also works synchronously on an unstarted service.
type Service struct {
	mu      sync.Mutex
	started bool

	logger logger.Logger
	store  repository.Store
	cache  cache.Cache

	evaluator  *afford.Evaluator
	scorer     *risk.Scorer
	aggregator *trend.Aggregator
	ranker     *rank.Ranker

	jobQueue   queue.Queue
	workerPool *worker.Pool

	workerCount int
	queueSize   int

	qualifyThreshold     float64
	conditionalThreshold float64
	flatTolerance        float64

	riskWeights  [3]float64
	tierCutoffs  [3]float64
	creditScale  float64
	volReference float64
	dpStep       float64

	rankWeights [3]float64
	defaultDown float64
	defaultTerm int
	annualRate  float64
}

// New builds a Service with the given options applied over the
// defaults, then materializes the domain calculators.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:          8,
		queueSize:            4096,
		qualifyThreshold:     0.36,
		conditionalThreshold: 0.45,
		flatTolerance:        0.001,
		riskWeights:          [3]float64{40, 35, 25},
		tierCutoffs:          [3]float64{75, 50, 25},
		creditScale:          100,
		volReference:         0.25,
		dpStep:               5,
		rankWeights:          [3]float64{50, 30, 20},
		defaultDown:          0.10,
		defaultTerm:          120,
		annualRate:           12,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.cache == nil {
		s.cache = cache.NewMemory()
	}

	s.evaluator = afford.NewEvaluator(
		afford.WithThresholds(s.qualifyThreshold, s.conditionalThreshold),
	)
	s.scorer = risk.NewScorer(
		risk.WithWeights(s.riskWeights[0], s.riskWeights[1], s.riskWeights[2]),
		risk.WithTierCutoffs(s.tierCutoffs[0], s.tierCutoffs[1], s.tierCutoffs[2]),
		risk.WithCreditScale(s.creditScale),
		risk.WithVolatilityReference(s.volReference),
		risk.WithDownPaymentStep(s.dpStep),
	)
	s.aggregator = trend.NewAggregator(
		trend.WithFlatTolerance(s.flatTolerance),
	)
	s.ranker = rank.New(trendSource{svc: s},
		rank.WithEvaluator(s.evaluator),
		rank.WithScorer(s.scorer),
		rank.WithWeights(s.rankWeights[0], s.rankWeights[1], s.rankWeights[2]),
		rank.WithDefaultDownPaymentRatio(s.defaultDown),
		rank.WithDefaultTermMonths(s.defaultTerm),
		rank.WithAnnualRatePercent(s.annualRate),
	)

	return s
}

// Start brings up the job queue and worker pool. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.jobQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workerPool = worker.NewPool(s.workerCount, s.jobQueue, s.ranker)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "engine started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop drains the worker pool and closes the queue. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.workerPool != nil {
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "engine stopped")
}

// ComputeSchedule produces the full rent-to-own amortization schedule
// for the given terms.
func (s *Service) ComputeSchedule(ctx context.Context, terms amortize.Terms) ([]amortize.Period, error) {
	schedule, err := amortize.ComputeSchedule(terms)
	if err != nil {
		return nil, err
	}
	metrics.RecordScheduleComputed()
	s.logger.Debug(ctx, "schedule computed",
		logger.Float64("price", terms.PropertyPrice),
		logger.Int("termMonths", terms.TermMonths),
	)
	return schedule, nil
}

// EvaluateAffordability runs the payment-to-income evaluation.
func (s *Service) EvaluateAffordability(ctx context.Context, p afford.Profile) (afford.Result, error) {
	res, err := s.evaluator.Evaluate(p)
	if err != nil {
		return afford.Result{}, err
	}
	metrics.RecordAffordabilityEvaluation(string(res.Verdict))
	return res, nil
}

// MaxAffordablePrice inverts the payment formula at the qualifying
// threshold under the given financing terms.
func (s *Service) MaxAffordablePrice(ctx context.Context, monthlyIncome, existingDebts float64, ft afford.FinancingTerms) (float64, error) {
	return s.evaluator.MaxAffordablePrice(monthlyIncome, existingDebts, ft)
}

// AssessRisk combines affordability, credit quality, and market
// volatility into a composite risk assessment.
func (s *Service) AssessRisk(ctx context.Context, in risk.Inputs) (risk.Assessment, error) {
	a, err := s.scorer.Score(in)
	if err != nil {
		return risk.Assessment{}, err
	}
	metrics.RecordRiskAssessment(string(a.Tier))
	return a, nil
}

// UpsertSeries replaces the price history for a market segment and
// invalidates any memoized summary for it.
func (s *Service) UpsertSeries(ctx context.Context, city, propertyType string, series trend.Series) error {
	seg := repository.Segment{City: city, PropertyType: propertyType}
	if err := s.store.Put(ctx, seg, series); err != nil {
		return err
	}
	s.invalidate(ctx, seg)
	return nil
}

// AppendPrice appends one observation to a segment's history and
// invalidates the memoized summary.
func (s *Service) AppendPrice(ctx context.Context, city, propertyType string, point trend.Point) error {
	seg := repository.Segment{City: city, PropertyType: propertyType}
	if err := s.store.Append(ctx, seg, point); err != nil {
		return err
	}
	s.invalidate(ctx, seg)
	return nil
}

func (s *Service) invalidate(ctx context.Context, seg repository.Segment) {
	if err := s.cache.Delete(seg.Key()); err != nil {
		s.logger.Warn(ctx, "cache invalidation failed",
			logger.String("segment", seg.Key()),
			logger.Error(err),
		)
	}
	metrics.UpdateSegmentsTracked(s.store.Count(ctx))
}

// TrendSummary returns the trend summary for a market segment,
// memoized through the cache until the segment's series changes.
func (s *Service) TrendSummary(ctx context.Context, city, propertyType string) (trend.Summary, error) {
	seg := repository.Segment{City: city, PropertyType: propertyType}

	if raw, ok := s.cache.Get(seg.Key()); ok {
		var cached trend.Summary
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			metrics.RecordCacheHit()
			return cached, nil
		}
		// Unreadable entry; recompute below.
		_ = s.cache.Delete(seg.Key())
	}
	metrics.RecordCacheMiss()

	series, err := s.store.Series(ctx, seg)
	if err != nil {
		return trend.Summary{}, err
	}
	summary, err := s.aggregator.Summarize(series)
	if err != nil {
		return trend.Summary{}, err
	}
	metrics.RecordTrendSummary()

	if raw, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(seg.Key(), string(raw)); err != nil {
			s.logger.Warn(ctx, "cache set failed",
				logger.String("segment", seg.Key()),
				logger.Error(err),
			)
		}
	}
	return summary, nil
}

// Rank scores and orders the candidate properties for a buyer. When
// the service is started the candidates are evaluated concurrently on
// the worker pool; otherwise the ranker runs inline. Diagnostics are
// returned sorted by property ID.
func (s *Service) Rank(ctx context.Context, buyer rank.Buyer, candidates []rank.Candidate) ([]rank.Recommendation, []rank.Diagnostic) {
	metrics.RecordRankRequest()
	start := time.Now()
	defer func() {
		metrics.ObserveRankDuration(time.Since(start).Seconds())
	}()

	s.mu.Lock()
	q := s.jobQueue
	parallel := s.started && q != nil
	s.mu.Unlock()

	if !parallel {
		recs, diags := s.ranker.Rank(buyer, candidates)
		for range recs {
			metrics.RecordCandidateEvaluated()
		}
		for range diags {
			metrics.RecordCandidateSkipped()
		}
		sortDiagnostics(diags)
		return recs, diags
	}

	recs := make([]rank.Recommendation, 0, len(candidates))
	diags := make([]rank.Diagnostic, 0)
	reply := make(chan queue.Outcome, len(candidates))

	outstanding := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		job := queue.Job{Buyer: buyer, Candidate: c, Reply: reply}
		if !q.Enqueue(ctx, job) {
			diags = append(diags, rank.Diagnostic{PropertyID: c.ID, Reason: queue.ErrQueueClosed})
			metrics.RecordCandidateSkipped()
			continue
		}
		outstanding[c.ID] = struct{}{}
	}

collect:
	for len(outstanding) > 0 {
		select {
		case out := <-reply:
			delete(outstanding, out.PropertyID)
			if out.Err != nil {
				diags = append(diags, rank.Diagnostic{PropertyID: out.PropertyID, Reason: out.Err})
				continue
			}
			recs = append(recs, out.Recommendation)
		case <-ctx.Done():
			// Workers stop delivering once the context is cancelled;
			// report the candidates whose outcomes never arrived.
			for id := range outstanding {
				diags = append(diags, rank.Diagnostic{PropertyID: id, Reason: ctx.Err()})
			}
			break collect
		}
	}

	rank.SortRecommendations(recs)
	sortDiagnostics(diags)
	return recs, diags
}

// Segments lists the market segments with recorded history.
func (s *Service) Segments(ctx context.Context) []repository.Segment {
	return s.store.Segments(ctx)
}

func sortDiagnostics(diags []rank.Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		return diags[i].PropertyID < diags[j].PropertyID
	})
}

// trendSource adapts the service's memoized summaries to the ranker.
type trendSource struct {
	svc *Service
}

func (t trendSource) Summary(city, propertyType string) (trend.Summary, error) {
	return t.svc.TrendSummary(context.Background(), city, propertyType)
}
