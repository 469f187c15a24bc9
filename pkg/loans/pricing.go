package loans

import (
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// DirectTerms are the dealer's own financing conditions: a flat commercial
// monthly rate and the fees capitalized once into the loan.
type DirectTerms struct {
	MonthlyRatePct float64
	AdminFee       float64
	GPSFee         float64
	InsuranceFee   float64
}

// FeesTotal sums the capitalized fees.
func (t DirectTerms) FeesTotal() float64 {
	return mathutil.Bound(t.AdminFee, constants.MaxAmount) +
		mathutil.Bound(t.GPSFee, constants.MaxAmount) +
		mathutil.Bound(t.InsuranceFee, constants.MaxAmount)
}

// DirectQuote is the headline pricing of a direct loan, the input of
// ComputeDirectSchedule.
type DirectQuote struct {
	FinancedPrincipal float64
	FeesTotal         float64
	FixedInstallment  float64
}

// QuoteDirect prices a direct loan with simple (flat) interest:
//
//	installment = (financed + fees) × (1 + rate × n) / n
//
// rounded to cents. A zero term quotes a zero installment.
func QuoteDirect(r LoanRequest, terms DirectTerms) DirectQuote {
	r.Mode = ModeDirect
	r = normalize(r)

	down := DownPaymentValue(r.VehiclePrice, r.DownPayment)
	quote := DirectQuote{
		FinancedPrincipal: r.VehiclePrice - down,
		FeesTotal:         terms.FeesTotal(),
	}
	if r.TermMonths == 0 {
		return quote
	}

	base := decimal.NewFromFloat(quote.FinancedPrincipal).Add(decimal.NewFromFloat(quote.FeesTotal))
	periods := decimal.NewFromInt(int64(r.TermMonths))
	rate := decimal.NewFromFloat(mathutil.Bound(terms.MonthlyRatePct, constants.MaxRatePct)).Div(decimal.NewFromFloat(constants.PercentageMultiplier))
	growth := decimal.NewFromInt(1).Add(rate.Mul(periods))

	quote.FixedInstallment = base.Mul(growth).Div(periods).Round(constants.CurrencyPlaces).InexactFloat64()
	return quote
}
