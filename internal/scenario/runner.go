package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mackliffe/rent2own-engine/internal/app"
	"github.com/Mackliffe/rent2own-engine/pkg/logger"
)

// Report summarizes one scenario run.
type Report struct {
	RunID             string
	SegmentsSeeded    int
	BuyersEvaluated   int
	Recommendations   int
	Diagnostics       int
	SchedulesVerified int
	Duration          time.Duration
}

// Run seeds the service with synthetic market history, ranks generated
// candidates for generated buyers, and verifies the results against
// the engine's invariants.
func Run(ctx context.Context, svc *app.Service, cfg *Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := logger.Get().Named("scenario")
	report := &Report{RunID: uuid.New().String()}
	start := time.Now()

	log.Info(ctx, "starting scenario run",
		logger.String("runID", report.RunID),
		logger.Int("buyers", cfg.Buyers),
		logger.Int("candidates", cfg.Candidates),
	)

	// Step 1: seed every segment with generated price history.
	for _, city := range cfg.Cities {
		for _, propertyType := range cfg.PropertyTypes {
			series := generateSeries(cfg.SeriesMonths, randomBetween(cfg.MinPrice, cfg.MaxPrice))
			if err := svc.UpsertSeries(ctx, city, propertyType, series); err != nil {
				return nil, fmt.Errorf("seeding %s/%s failed: %w", city, propertyType, err)
			}
			report.SegmentsSeeded++
		}
	}

	// Step 2: generate the population.
	buyers := generateBuyers(cfg)
	candidates := generateCandidates(cfg)

	// Step 3: rank the same candidate set for each buyer and check the
	// results.
	for i, buyer := range buyers {
		recommendations, diagnostics := svc.Rank(ctx, buyer, candidates)
		report.BuyersEvaluated++
		report.Recommendations += len(recommendations)
		report.Diagnostics += len(diagnostics)

		if err := verifyOrdering(recommendations); err != nil {
			return nil, fmt.Errorf("buyer %d: %w", i, err)
		}
		if len(recommendations)+len(diagnostics) != len(candidates) {
			return nil, fmt.Errorf("%w: buyer %d: %d results for %d candidates",
				ErrVerificationFailed, i, len(recommendations)+len(diagnostics), len(candidates))
		}

		// Spot-check the schedule behind the top recommendation.
		if len(recommendations) > 0 {
			if err := verifySchedule(ctx, svc, recommendations[0].Price); err != nil {
				return nil, fmt.Errorf("buyer %d: %w", i, err)
			}
			report.SchedulesVerified++
		}

		if cfg.Verbose && len(recommendations) > 0 {
			top := recommendations[0]
			log.Info(ctx, "top recommendation",
				logger.Int("buyer", i),
				logger.String("propertyID", top.PropertyID),
				logger.Float64("compositeScore", top.CompositeScore),
				logger.String("riskTier", string(top.RiskTier)),
			)
		}
	}

	report.Duration = time.Since(start)
	log.Info(ctx, "scenario run complete",
		logger.String("runID", report.RunID),
		logger.Int("recommendations", report.Recommendations),
		logger.Int("diagnostics", report.Diagnostics),
		logger.String("duration", report.Duration.String()),
	)
	return report, nil
}
