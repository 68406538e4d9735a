package scenario

import (
	"context"
	"fmt"
	"math"

	"github.com/Mackliffe/rent2own-engine/internal/app"
	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	"github.com/Mackliffe/rent2own-engine/internal/domain/rank"
)

// conservationTolerance bounds float drift when re-adding the rounded
// rent and equity portions of a period.
const conservationTolerance = 1e-6

// verifyOrdering checks that recommendations are sorted by composite
// score, best first.
func verifyOrdering(recommendations []rank.Recommendation) error {
	for i := 1; i < len(recommendations); i++ {
		if recommendations[i].CompositeScore > recommendations[i-1].CompositeScore {
			return fmt.Errorf("%w: recommendation %d (%s) outscores its predecessor",
				ErrVerificationFailed, i, recommendations[i].PropertyID)
		}
	}
	return nil
}

// verifySchedule recomputes the amortization schedule for a
// recommended price and checks period conservation and final equity.
func verifySchedule(ctx context.Context, svc *app.Service, price float64) error {
	terms := amortize.Terms{
		PropertyPrice:     price,
		DownPaymentRatio:  0.10,
		TermMonths:        120,
		AnnualRatePercent: 12,
	}
	schedule, err := svc.ComputeSchedule(ctx, terms)
	if err != nil {
		return fmt.Errorf("schedule verification: %w", err)
	}

	for _, period := range schedule {
		diff := period.TotalPayment - (period.RentPortion + period.EquityPortion)
		if math.Abs(diff) > conservationTolerance {
			return fmt.Errorf("%w: period %d leaks %.9f", ErrVerificationFailed, period.Index, diff)
		}
	}

	want := amortize.RoundMinorUnit(terms.FinancedAmount())
	got := schedule[len(schedule)-1].CumulativeEquity
	if got != want {
		return fmt.Errorf("%w: final equity %.2f, financed %.2f", ErrVerificationFailed, got, want)
	}
	return nil
}
