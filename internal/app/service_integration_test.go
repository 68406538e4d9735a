package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/Mackliffe/rent2own-engine/internal/adapters/cache"
	"github.com/Mackliffe/rent2own-engine/internal/app"
	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	"github.com/Mackliffe/rent2own-engine/internal/domain/rank"
	"github.com/Mackliffe/rent2own-engine/internal/domain/risk"
	"github.com/Mackliffe/rent2own-engine/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service with seeded market history", t, func() {
		mock := cache.NewMock()
		svc := app.New(
			app.WithWorkerCount(2),
			app.WithQueueSize(1000),
			app.WithCache(mock),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)

		So(svc.UpsertSeries(ctx, "Nairobi", "apartment",
			monthly(100_000, 102_000, 104_500, 107_000, 109_000, 112_000)), ShouldBeNil)
		So(svc.UpsertSeries(ctx, "Mombasa", "house",
			monthly(250_000, 249_000, 250_500, 249_500, 250_000, 250_200)), ShouldBeNil)

		Convey("When walking a buyer through the full pipeline", func() {
			buyer := rank.Buyer{
				MonthlyIncome:          500_000,
				MonthlyDebtObligations: 40_000,
				CreditQuality:          85,
			}

			terms := amortize.Terms{
				PropertyPrice:     12_000_000,
				DownPaymentRatio:  0.10,
				TermMonths:        120,
				AnnualRatePercent: 12,
			}
			schedule, err := svc.ComputeSchedule(ctx, terms)
			So(err, ShouldBeNil)
			So(schedule, ShouldHaveLength, 120)

			affordRes, err := svc.EvaluateAffordability(ctx, afford.Profile{
				MonthlyIncome:          buyer.MonthlyIncome,
				MonthlyDebtObligations: buyer.MonthlyDebtObligations,
				ProposedMonthlyPayment: schedule[0].TotalPayment,
			})
			So(err, ShouldBeNil)

			summary, err := svc.TrendSummary(ctx, "Nairobi", "apartment")
			So(err, ShouldBeNil)
			So(summary.Direction, ShouldEqual, trend.DirectionRising)

			assessment, err := svc.AssessRisk(ctx, risk.Inputs{
				Affordability:   affordRes,
				CreditQuality:   buyer.CreditQuality,
				TrendVolatility: summary.Volatility,
			})
			So(err, ShouldBeNil)

			recs, diags := svc.Rank(ctx, buyer, []rank.Candidate{
				{ID: "p-1", Price: 10_000_000, City: "Nairobi", PropertyType: "apartment"},
				{ID: "p-2", Price: 14_000_000, City: "Mombasa", PropertyType: "house"},
			})

			Convey("Then every stage produces consistent results", func() {
				So(assessment.Score, ShouldBeBetweenOrEqual, 0, 100)
				So(diags, ShouldBeEmpty)
				So(recs, ShouldHaveLength, 2)
				So(recs[0].CompositeScore, ShouldBeGreaterThanOrEqualTo, recs[1].CompositeScore)
			})

			Convey("And trend summaries are memoized across stages", func() {
				// The rank call reuses the summary computed above.
				So(mock.Hits, ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When the buyer has a budget cap", func() {
			buyer := rank.Buyer{
				MonthlyIncome:          500_000,
				MonthlyDebtObligations: 40_000,
				CreditQuality:          85,
				Budget:                 11_000_000,
			}

			recs, diags := svc.Rank(ctx, buyer, []rank.Candidate{
				{ID: "p-1", Price: 10_000_000, City: "Nairobi", PropertyType: "apartment"},
				{ID: "p-2", Price: 14_000_000, City: "Mombasa", PropertyType: "house"},
			})

			Convey("Then over-budget candidates are excluded with a diagnostic", func() {
				So(recs, ShouldHaveLength, 1)
				So(recs[0].PropertyID, ShouldEqual, "p-1")
				So(diags, ShouldHaveLength, 1)
				So(diags[0].PropertyID, ShouldEqual, "p-2")
			})
		})

		Convey("When the service is stopped", func() {
			svc.Stop()

			recs, diags := svc.Rank(ctx, rank.Buyer{
				MonthlyIncome: 500_000,
				CreditQuality: 85,
			}, []rank.Candidate{
				{ID: "p-1", Price: 10_000_000, City: "Nairobi", PropertyType: "apartment"},
			})

			Convey("Then ranking still works inline", func() {
				So(diags, ShouldBeEmpty)
				So(recs, ShouldHaveLength, 1)
			})
		})
	})
}
