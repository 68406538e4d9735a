// Package afford evaluates whether a household can carry a proposed
// rent-to-own payment, using a debt-to-income ratio against configurable
// thresholds.
package afford

import (
	"fmt"

	"github.com/Mackliffe/rent2own-engine/internal/domain/amortize"
)

// Default verdict thresholds as debt-to-income fractions.
const (
	defaultQualifyThreshold     = 0.36
	defaultConditionalThreshold = 0.45
)

// Verdict classifies an affordability evaluation.
type Verdict string

const (
	VerdictQualifies      Verdict = "qualifies"
	VerdictConditional    Verdict = "conditional"
	VerdictDoesNotQualify Verdict = "does_not_qualify"
)

// Profile is the household side of an affordability evaluation.
type Profile struct {
	MonthlyIncome          float64
	MonthlyDebtObligations float64
	ProposedMonthlyPayment float64
}

// Result is the outcome of evaluating a Profile.
type Result struct {
	// Ratio is (debts + proposed payment) / income.
	Ratio   float64
	Verdict Verdict
}

// FinancingTerms are loan terms without a property price, used when solving
// for the maximum affordable price.
type FinancingTerms struct {
	DownPaymentRatio  float64
	TermMonths        int
	AnnualRatePercent float64
}

// Evaluator applies verdict thresholds to affordability profiles.
type Evaluator struct {
	qualifyThreshold     float64
	conditionalThreshold float64
}

// NewEvaluator creates an Evaluator with default thresholds, overridable via
// options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		qualifyThreshold:     defaultQualifyThreshold,
		conditionalThreshold: defaultConditionalThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QualifyThreshold returns the ratio at or below which a profile qualifies
// outright.
func (e *Evaluator) QualifyThreshold() float64 { return e.qualifyThreshold }

// Evaluate computes the debt-to-income ratio and its verdict.
func (e *Evaluator) Evaluate(p Profile) (Result, error) {
	if p.MonthlyIncome <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidIncome, p.MonthlyIncome)
	}

	ratio := (p.MonthlyDebtObligations + p.ProposedMonthlyPayment) / p.MonthlyIncome

	verdict := VerdictDoesNotQualify
	switch {
	case ratio <= e.qualifyThreshold:
		verdict = VerdictQualifies
	case ratio <= e.conditionalThreshold:
		verdict = VerdictConditional
	}
	return Result{Ratio: ratio, Verdict: verdict}, nil
}

// MaxAffordablePrice solves the payment formula backward for the property
// price whose payment lands the household exactly on the qualify threshold,
// down payment included. A household already past the threshold on existing
// debt affords nothing; the result is then zero.
func (e *Evaluator) MaxAffordablePrice(monthlyIncome, monthlyDebtObligations float64, terms FinancingTerms) (float64, error) {
	if monthlyIncome <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidIncome, monthlyIncome)
	}
	if terms.DownPaymentRatio < 0 || terms.DownPaymentRatio >= 1 {
		return 0, fmt.Errorf("%w: down payment ratio must be in [0,1) to solve for price, got %v",
			amortize.ErrInvalidTerms, terms.DownPaymentRatio)
	}

	maxPayment := e.qualifyThreshold*monthlyIncome - monthlyDebtObligations
	if maxPayment <= 0 {
		return 0, nil
	}

	financed, err := amortize.FinancedAmountForPayment(maxPayment, terms.AnnualRatePercent, terms.TermMonths)
	if err != nil {
		return 0, err
	}
	return financed / (1 - terms.DownPaymentRatio), nil
}
