package afford_test

import (
	"errors"
	"testing"

	afford "github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	amortize "github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluate(t *testing.T) {
	Convey("Given an evaluator with default thresholds", t, func() {
		evaluator := afford.NewEvaluator()

		Convey("When income 150,000 carries debts 10,000 and a 45,000 payment", func() {
			result, err := evaluator.Evaluate(afford.Profile{
				MonthlyIncome:          150_000,
				MonthlyDebtObligations: 10_000,
				ProposedMonthlyPayment: 45_000,
			})
			So(err, ShouldBeNil)

			Convey("Then the ratio is 0.3667 and the verdict is conditional", func() {
				So(result.Ratio, ShouldAlmostEqual, 55_000.0/150_000.0, 1e-9)
				So(result.Verdict, ShouldEqual, afford.VerdictConditional)
			})
		})

		Convey("When the ratio lands at or below 0.36 it qualifies", func() {
			result, err := evaluator.Evaluate(afford.Profile{
				MonthlyIncome:          100_000,
				MonthlyDebtObligations: 6_000,
				ProposedMonthlyPayment: 30_000,
			})
			So(err, ShouldBeNil)
			So(result.Ratio, ShouldEqual, 0.36)
			So(result.Verdict, ShouldEqual, afford.VerdictQualifies)
		})

		Convey("When the ratio exceeds 0.45 it does not qualify", func() {
			result, err := evaluator.Evaluate(afford.Profile{
				MonthlyIncome:          100_000,
				MonthlyDebtObligations: 20_000,
				ProposedMonthlyPayment: 30_000,
			})
			So(err, ShouldBeNil)
			So(result.Verdict, ShouldEqual, afford.VerdictDoesNotQualify)
		})

		Convey("When income is non-positive it reports ErrInvalidIncome", func() {
			_, err := evaluator.Evaluate(afford.Profile{MonthlyIncome: 0, ProposedMonthlyPayment: 100})
			So(errors.Is(err, afford.ErrInvalidIncome), ShouldBeTrue)
		})

		Convey("And the verdict is monotonic in income", func() {
			// Stepping income up while holding debts and payment fixed must
			// never move the verdict to a stricter tier.
			strictness := map[afford.Verdict]int{
				afford.VerdictQualifies:      0,
				afford.VerdictConditional:    1,
				afford.VerdictDoesNotQualify: 2,
			}
			prev := 3
			for income := 50_000.0; income <= 500_000; income += 25_000 {
				result, err := evaluator.Evaluate(afford.Profile{
					MonthlyIncome:          income,
					MonthlyDebtObligations: 15_000,
					ProposedMonthlyPayment: 40_000,
				})
				So(err, ShouldBeNil)
				So(strictness[result.Verdict], ShouldBeLessThanOrEqualTo, prev)
				prev = strictness[result.Verdict]
			}
		})
	})

	Convey("Given custom thresholds", t, func() {
		evaluator := afford.NewEvaluator(afford.WithThresholds(0.30, 0.40))

		Convey("Then the verdict boundaries move with them", func() {
			result, err := evaluator.Evaluate(afford.Profile{
				MonthlyIncome:          100_000,
				ProposedMonthlyPayment: 32_000,
			})
			So(err, ShouldBeNil)
			So(result.Verdict, ShouldEqual, afford.VerdictConditional)
		})
	})
}

func TestMaxAffordablePrice(t *testing.T) {
	Convey("Given an evaluator with default thresholds", t, func() {
		evaluator := afford.NewEvaluator()
		terms := afford.FinancingTerms{
			DownPaymentRatio:  0.10,
			TermMonths:        120,
			AnnualRatePercent: 12,
		}

		Convey("When solving for the maximum affordable price", func() {
			price, err := evaluator.MaxAffordablePrice(200_000, 12_000, terms)
			So(err, ShouldBeNil)
			So(price, ShouldBeGreaterThan, 0)

			Convey("Then feeding it back through the payment formula lands on the qualify threshold", func() {
				payment, err := amortize.PaymentForTerms(amortize.Terms{
					PropertyPrice:     price,
					DownPaymentRatio:  terms.DownPaymentRatio,
					TermMonths:        terms.TermMonths,
					AnnualRatePercent: terms.AnnualRatePercent,
				})
				So(err, ShouldBeNil)

				result, err := evaluator.Evaluate(afford.Profile{
					MonthlyIncome:          200_000,
					MonthlyDebtObligations: 12_000,
					ProposedMonthlyPayment: payment,
				})
				So(err, ShouldBeNil)
				So(result.Ratio, ShouldAlmostEqual, evaluator.QualifyThreshold(), 1e-6)
			})
		})

		Convey("When existing debt already exceeds the threshold the price is zero", func() {
			price, err := evaluator.MaxAffordablePrice(100_000, 50_000, terms)
			So(err, ShouldBeNil)
			So(price, ShouldEqual, 0)
		})

		Convey("When income is non-positive it reports ErrInvalidIncome", func() {
			_, err := evaluator.MaxAffordablePrice(0, 0, terms)
			So(errors.Is(err, afford.ErrInvalidIncome), ShouldBeTrue)
		})

		Convey("When the down payment ratio is 1 there is nothing to solve for", func() {
			_, err := evaluator.MaxAffordablePrice(100_000, 0, afford.FinancingTerms{
				DownPaymentRatio: 1.0,
				TermMonths:       120,
			})
			So(errors.Is(err, amortize.ErrInvalidTerms), ShouldBeTrue)
		})
	})
}
