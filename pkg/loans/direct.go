package loans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// DirectPolicy selects how a fixed direct-mode installment is decomposed.
type DirectPolicy int

const (
	// DirectFlat splits every installment into the same principal and
	// interest portions and tracks the remaining total debt.
	DirectFlat DirectPolicy = iota
	// DirectAmortized back-solves the implied monthly rate and decomposes the
	// installment as a French schedule over principal plus fees.
	DirectAmortized
)

// DirectOptions tunes ComputeDirectScheduleWithOptions.
type DirectOptions struct {
	Policy DirectPolicy
}

var ErrInvalidDirectPolicy = errors.New("invalid direct policy")

// ParseDirectPolicy accepts flat or amortized in any case. An empty value
// selects the flat policy.
func ParseDirectPolicy(value string) (DirectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "flat":
		return DirectFlat, nil
	case "amortized":
		return DirectAmortized, nil
	}
	return DirectFlat, fmt.Errorf("%w: %q", ErrInvalidDirectPolicy, value)
}

func (p DirectPolicy) String() string {
	if p == DirectAmortized {
		return "amortized"
	}
	return "flat"
}

// ComputeDirectSchedule decomposes an already fixed dealer installment into
// a schedule whose rows reconcile exactly with fixedInstallment × term.
// feesTotal holds the capitalized fees (administrative, GPS, insurance).
func ComputeDirectSchedule(r LoanRequest, fixedInstallment, feesTotal, financedPrincipal float64) ScheduleResult {
	return ComputeDirectScheduleWithOptions(r, fixedInstallment, feesTotal, financedPrincipal, DirectOptions{})
}

// ComputeDirectScheduleWithOptions is ComputeDirectSchedule with an explicit
// decomposition policy.
func ComputeDirectScheduleWithOptions(r LoanRequest, fixedInstallment, feesTotal, financedPrincipal float64, opts DirectOptions) ScheduleResult {
	r.Mode = ModeDirect
	r = normalize(r)

	result := emptyResult(r, ModeDirect)
	n := r.TermMonths
	if n == 0 {
		return result
	}

	installment := decimal.NewFromFloat(mathutil.Bound(fixedInstallment, constants.MaxAmount))
	fees := decimal.NewFromFloat(mathutil.Bound(feesTotal, constants.MaxAmount))
	principal := decimal.NewFromFloat(mathutil.Bound(financedPrincipal, constants.MaxAmount))
	periods := decimal.NewFromInt(int64(n))

	totalToPay := installment.Mul(periods)
	principalTotal := principal.Add(fees)
	totalInterest := totalToPay.Sub(principalTotal)

	result.FinancedPrincipal = principal.InexactFloat64()
	result.Fees = FeeBreakdown{Capitalized: fees.InexactFloat64()}
	result.TotalFees = result.Fees.Total()
	result.TotalDebt = totalToPay.InexactFloat64()
	result.FirstInstallment = installment.InexactFloat64()
	result.LastInstallment = result.FirstInstallment
	result.AverageInstallment = result.FirstInstallment

	if opts.Policy == DirectAmortized {
		if rate, ok := ImpliedMonthlyRate(principalTotal.InexactFloat64(), result.FirstInstallment, n); ok {
			result.Rows, result.TotalInterest = amortizedDirectRows(r, principalTotal.InexactFloat64(), result.FirstInstallment, rate)
			result.MonthlyRate = rate
			result.PureInstallment = result.FirstInstallment
			return result
		}
	}

	result.TotalInterest = totalInterest.InexactFloat64()
	result.Rows = flatDirectRows(r, installment, totalInterest.Div(periods), totalToPay)
	return result
}

func flatDirectRows(r LoanRequest, installment, fixedInterest, totalToPay decimal.Decimal) []AmortizationRow {
	n := r.TermMonths
	rows := make([]AmortizationRow, 0, n)
	fixedPrincipal := installment.Sub(fixedInterest)
	epsilon := decimal.NewFromFloat(constants.BalanceEpsilon)
	balance := totalToPay

	for i := 1; i <= n; i++ {
		balance = balance.Sub(installment)
		if i == n || balance.LessThan(epsilon) {
			balance = decimal.Zero
		}
		rows = append(rows, AmortizationRow{
			Index:            i,
			DueDate:          DueDate(r.StartDate, i),
			Principal:        fixedPrincipal.InexactFloat64(),
			Interest:         fixedInterest.InexactFloat64(),
			Installment:      installment.InexactFloat64(),
			RemainingBalance: balance.InexactFloat64(),
		})
	}
	return rows
}

func amortizedDirectRows(r LoanRequest, principalTotal, installment, rate float64) ([]AmortizationRow, float64) {
	n := r.TermMonths
	rows := make([]AmortizationRow, 0, n)
	balance := principalTotal
	var totalInterest float64

	for i := 1; i <= n; i++ {
		interest := InterestPayment(balance, rate)
		principal := installment - interest
		balance = settle(balance - principal)
		if i == n {
			balance = 0
		}
		totalInterest += interest
		rows = append(rows, AmortizationRow{
			Index:            i,
			DueDate:          DueDate(r.StartDate, i),
			Principal:        principal,
			Interest:         interest,
			Installment:      installment,
			RemainingBalance: balance,
		})
	}
	return rows, totalInterest
}

// ImpliedMonthlyRate finds the monthly rate at which an annuity of the given
// installment repays principal over termMonths. It reports false when the
// installments do not cover more than the principal.
func ImpliedMonthlyRate(principal, installment float64, termMonths int) (float64, bool) {
	if termMonths <= 0 || principal <= 0 || installment*float64(termMonths) <= principal {
		return 0, false
	}

	lo, hi := 0.0, 1.0
	for i := 0; AnnuityPayment(principal, hi, termMonths) < installment; i++ {
		if i >= constants.RateSolverMaxIterations {
			return 0, false
		}
		hi *= 2
	}

	for i := 0; i < constants.RateSolverMaxIterations && hi-lo > constants.RateSolverTolerance; i++ {
		mid := (lo + hi) / 2
		if AnnuityPayment(principal, mid, termMonths) < installment {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}
