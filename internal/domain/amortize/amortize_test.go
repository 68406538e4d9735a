package amortize_test

import (
	"errors"
	"testing"

	amortize "github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeSchedule_ZeroRate(t *testing.T) {
	Convey("Given zero-rate terms for a 10M property over 120 months", t, func() {
		terms := amortize.Terms{
			PropertyPrice:     10_000_000,
			DownPaymentRatio:  0.10,
			TermMonths:        120,
			AnnualRatePercent: 0,
		}

		Convey("When computing the schedule", func() {
			schedule, err := amortize.ComputeSchedule(terms)
			So(err, ShouldBeNil)
			So(schedule, ShouldHaveLength, 120)

			Convey("Then every payment is the straight-line 75,000 split entirely into equity", func() {
				for _, p := range schedule {
					So(p.TotalPayment, ShouldEqual, 75_000)
					So(p.EquityPortion, ShouldEqual, 75_000)
					So(p.RentPortion, ShouldEqual, 0)
				}
			})

			Convey("And the final cumulative equity equals the financed amount", func() {
				So(schedule[len(schedule)-1].CumulativeEquity, ShouldEqual, 9_000_000)
			})
		})
	})
}

func TestComputeSchedule_WithRate(t *testing.T) {
	Convey("Given terms with a 12% annual rate", t, func() {
		terms := amortize.Terms{
			PropertyPrice:     5_000_000,
			DownPaymentRatio:  0.20,
			TermMonths:        60,
			AnnualRatePercent: 12,
		}

		Convey("When computing the schedule", func() {
			schedule, err := amortize.ComputeSchedule(terms)
			So(err, ShouldBeNil)
			So(schedule, ShouldHaveLength, 60)

			Convey("Then each period's split sums to the total payment", func() {
				for _, p := range schedule {
					So(p.RentPortion+p.EquityPortion, ShouldAlmostEqual, p.TotalPayment, 0.001)
				}
			})

			Convey("And cumulative equity is monotonically non-decreasing", func() {
				prev := 0.0
				for _, p := range schedule {
					So(p.CumulativeEquity, ShouldBeGreaterThanOrEqualTo, prev)
					prev = p.CumulativeEquity
				}
			})

			Convey("And the final cumulative equity retires the financed amount exactly", func() {
				final := schedule[len(schedule)-1]
				So(final.CumulativeEquity, ShouldEqual, amortize.RoundMinorUnit(terms.FinancedAmount()))
			})

			Convey("And the equity portion grows while the rent portion declines", func() {
				So(schedule[0].EquityPortion, ShouldBeLessThan, schedule[30].EquityPortion)
				So(schedule[0].RentPortion, ShouldBeGreaterThan, schedule[30].RentPortion)
			})

			Convey("And total collected equals payment times term", func() {
				sum := 0.0
				for _, p := range schedule {
					sum += p.RentPortion + p.EquityPortion
				}
				So(sum, ShouldAlmostEqual, schedule[0].TotalPayment*60, 0.01)
			})
		})
	})
}

func TestComputeSchedule_InvalidTerms(t *testing.T) {
	Convey("Given malformed terms", t, func() {
		cases := []amortize.Terms{
			{PropertyPrice: 1_000_000, DownPaymentRatio: 0.1, TermMonths: 0, AnnualRatePercent: 10},
			{PropertyPrice: 0, DownPaymentRatio: 0.1, TermMonths: 60, AnnualRatePercent: 10},
			{PropertyPrice: -5, DownPaymentRatio: 0.1, TermMonths: 60, AnnualRatePercent: 10},
			{PropertyPrice: 1_000_000, DownPaymentRatio: -0.1, TermMonths: 60, AnnualRatePercent: 10},
			{PropertyPrice: 1_000_000, DownPaymentRatio: 1.5, TermMonths: 60, AnnualRatePercent: 10},
			{PropertyPrice: 1_000_000, DownPaymentRatio: 0.1, TermMonths: 60, AnnualRatePercent: -1},
		}

		Convey("Then ComputeSchedule reports ErrInvalidTerms for each", func() {
			for _, terms := range cases {
				_, err := amortize.ComputeSchedule(terms)
				So(errors.Is(err, amortize.ErrInvalidTerms), ShouldBeTrue)
			}
		})
	})
}

func TestPaymentForTerms(t *testing.T) {
	Convey("Given a financed amount of 10,000 at 12% over 24 months", t, func() {
		terms := amortize.Terms{
			PropertyPrice:     10_000,
			DownPaymentRatio:  0,
			TermMonths:        24,
			AnnualRatePercent: 12,
		}

		Convey("When computing the constant payment", func() {
			payment, err := amortize.PaymentForTerms(terms)
			So(err, ShouldBeNil)

			Convey("Then it matches the standard annuity formula", func() {
				// 10000 * 0.01 / (1 - 1.01^-24) = 470.73...
				So(payment, ShouldAlmostEqual, 470.73, 0.01)
			})
		})
	})
}

func TestFinancedAmountForPayment(t *testing.T) {
	Convey("Given a constant payment derived from known terms", t, func() {
		terms := amortize.Terms{
			PropertyPrice:     2_400_000,
			DownPaymentRatio:  0.25,
			TermMonths:        180,
			AnnualRatePercent: 9.5,
		}
		payment, err := amortize.PaymentForTerms(terms)
		So(err, ShouldBeNil)

		Convey("When inverting the payment formula", func() {
			financed, err := amortize.FinancedAmountForPayment(payment, terms.AnnualRatePercent, terms.TermMonths)
			So(err, ShouldBeNil)

			Convey("Then the original financed amount is recovered", func() {
				So(financed, ShouldAlmostEqual, terms.FinancedAmount(), 0.01)
			})
		})

		Convey("When the rate is zero the inverse is a plain product", func() {
			financed, err := amortize.FinancedAmountForPayment(500, 0, 12)
			So(err, ShouldBeNil)
			So(financed, ShouldEqual, 6_000)
		})

		Convey("When the payment is non-positive the financed amount is zero", func() {
			financed, err := amortize.FinancedAmountForPayment(0, 10, 12)
			So(err, ShouldBeNil)
			So(financed, ShouldEqual, 0)
		})

		Convey("When the term is invalid it reports ErrInvalidTerms", func() {
			_, err := amortize.FinancedAmountForPayment(500, 10, 0)
			So(errors.Is(err, amortize.ErrInvalidTerms), ShouldBeTrue)
		})
	})
}
