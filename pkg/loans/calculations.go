package loans

import (
	"math"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/mathutil"
)

// AnnuityPayment calculates the fixed principal+interest installment of a
// French schedule using the standard amortization formula. A zero rate
// divides the principal evenly; a non-positive term yields zero.
func AnnuityPayment(principal, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	power := math.Pow(1.00+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1.00)
}

// InterestPayment calculates the interest accrued on a balance for one month.
func InterestPayment(balance, monthlyRate float64) float64 {
	return balance * monthlyRate
}

// Financing holds the bank-mode totals computed before any row is built.
type Financing struct {
	DownPayment       float64
	FinancedPrincipal float64
	LegalFee          float64
	MonthlyRate       float64
	MonthlyFees       FeePortions
}

// ComputeFinancing derives the financed principal and the flat monthly fees
// of a bank loan. The legal fee is capitalized into the principal. Insurance
// is charged on the vehicle price and credit life on the original financed
// principal; neither follows the declining balance.
func ComputeFinancing(r LoanRequest, profile BankProfile) Financing {
	price := mathutil.Bound(r.VehiclePrice, constants.MaxAmount)
	down := DownPaymentValue(price, r.DownPayment)
	legalFee := mathutil.Bound(profile.LegalFee, constants.MaxAmount)
	principal := (price - down) + legalFee
	insuranceRate := mathutil.Bound(profile.InsuranceRatePct, constants.MaxRatePct)
	creditLifeRate := mathutil.Bound(profile.DesgravamenRatePct, constants.MaxRatePct)

	return Financing{
		DownPayment:       down,
		FinancedPrincipal: principal,
		LegalFee:          legalFee,
		MonthlyRate:       mathutil.MonthlyRate(mathutil.Bound(profile.AnnualRatePct, constants.MaxRatePct)),
		MonthlyFees: FeePortions{
			Insurance:  price * insuranceRate / constants.PercentageMultiplier / constants.MonthsPerYear,
			CreditLife: principal * creditLifeRate / constants.PercentageMultiplier / constants.MonthsPerYear,
			GPS:        mathutil.Bound(profile.GPSMonthlyFee, constants.MaxAmount),
		},
	}
}
