// Package amortize computes rent-to-own payment schedules.
//
// Each period's constant payment is split into a rent portion (cost of
// occupancy, interest-equivalent) and an equity portion (credited toward
// eventual ownership, principal-equivalent) using a declining-balance split.
// Internal arithmetic is unrounded; monetary values are rounded to the
// currency's minor unit only when the schedule is emitted.
package amortize

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// monthsPerYear converts an annual percentage rate to a periodic rate.
const monthsPerYear = 12

// Terms describes one rent-to-own contract to be amortized.
type Terms struct {
	// PropertyPrice is the agreed full price of the property.
	PropertyPrice float64

	// DownPaymentRatio is the upfront fraction of the price, in [0, 1].
	DownPaymentRatio float64

	// TermMonths is the contract length in months, typically 60, 120 or 180.
	TermMonths int

	// AnnualRatePercent is the annual financing rate, e.g. 12.5 for 12.5%.
	AnnualRatePercent float64
}

// FinancedAmount returns the balance carried by the contract after the down
// payment.
func (t Terms) FinancedAmount() float64 {
	return t.PropertyPrice * (1 - t.DownPaymentRatio)
}

// PeriodicRate returns the per-month rate as a fraction.
func (t Terms) PeriodicRate() float64 {
	return t.AnnualRatePercent / monthsPerYear / 100
}

// Validate reports whether the terms describe a computable contract.
func (t Terms) Validate() error {
	switch {
	case t.TermMonths <= 0:
		return fmt.Errorf("%w: term months must be positive, got %d", ErrInvalidTerms, t.TermMonths)
	case t.PropertyPrice <= 0:
		return fmt.Errorf("%w: property price must be positive, got %v", ErrInvalidTerms, t.PropertyPrice)
	case t.DownPaymentRatio < 0 || t.DownPaymentRatio > 1:
		return fmt.Errorf("%w: down payment ratio must be in [0,1], got %v", ErrInvalidTerms, t.DownPaymentRatio)
	case t.AnnualRatePercent < 0:
		return fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidTerms, t.AnnualRatePercent)
	}
	return nil
}

// Period is one row of a payment schedule. RentPortion + EquityPortion equals
// TotalPayment for every period, and CumulativeEquity at the final period
// equals the financed amount.
type Period struct {
	Index            int     `json:"index"` // 1-based
	TotalPayment     float64 `json:"total_payment"`
	RentPortion      float64 `json:"rent_portion"`
	EquityPortion    float64 `json:"equity_portion"`
	CumulativeEquity float64 `json:"cumulative_equity"`
}

// ComputeSchedule amortizes the financed amount over the contract term.
//
// The constant payment is derived from the standard fixed-payment formula;
// a zero rate degenerates to a straight-line split. The final period's equity
// portion absorbs any residual balance so the accumulated equity retires the
// financed amount exactly.
func ComputeSchedule(terms Terms) ([]Period, error) {
	payment, err := PaymentForTerms(terms)
	if err != nil {
		return nil, err
	}

	financed := terms.FinancedAmount()
	rate := terms.PeriodicRate()
	n := terms.TermMonths

	schedule := make([]Period, 0, n)
	paymentOut := RoundMinorUnit(payment)

	balance := financed
	cumulative := 0.0
	prevCumOut := 0.0
	for i := 1; i <= n; i++ {
		rent := rate * balance
		equity := payment - rent
		if i == n {
			// Absorb rounding drift: the last credit clears the balance.
			equity = financed - cumulative
			rent = payment - equity
		}
		balance -= equity
		cumulative += equity

		cumOut := RoundMinorUnit(cumulative)
		equityOut := RoundMinorUnit(cumOut - prevCumOut)
		schedule = append(schedule, Period{
			Index:            i,
			TotalPayment:     paymentOut,
			RentPortion:      RoundMinorUnit(paymentOut - equityOut),
			EquityPortion:    equityOut,
			CumulativeEquity: cumOut,
		})
		prevCumOut = cumOut
	}
	return schedule, nil
}

// PaymentForTerms returns the constant per-period payment for the terms,
// unrounded. Callers presenting the value should round it with RoundMinorUnit.
func PaymentForTerms(terms Terms) (float64, error) {
	if err := terms.Validate(); err != nil {
		return 0, err
	}

	financed := terms.FinancedAmount()
	rate := terms.PeriodicRate()
	n := float64(terms.TermMonths)

	if rate == 0 {
		return financed / n, nil
	}
	return financed * rate / (1 - math.Pow(1+rate, -n)), nil
}

// FinancedAmountForPayment inverts the payment formula: it returns the
// financed amount a given constant payment retires over termMonths at the
// given annual rate.
func FinancedAmountForPayment(payment, annualRatePercent float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: term months must be positive, got %d", ErrInvalidTerms, termMonths)
	}
	if annualRatePercent < 0 {
		return 0, fmt.Errorf("%w: annual rate must be non-negative, got %v", ErrInvalidTerms, annualRatePercent)
	}
	if payment <= 0 {
		return 0, nil
	}

	rate := annualRatePercent / monthsPerYear / 100
	n := float64(termMonths)
	if rate == 0 {
		return payment * n, nil
	}
	return payment * (1 - math.Pow(1+rate, -n)) / rate, nil
}

// RoundMinorUnit rounds a monetary amount to the currency's minor unit
// (two decimal places) using decimal arithmetic to avoid float artifacts.
func RoundMinorUnit(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
