package loans

// ComputeBankSchedule builds the schedule of a bank-mediated loan under the
// selected amortization system. It never fails: out-of-range inputs are
// clamped and a zero term or non-positive principal yields an empty schedule
// with zero totals.
func ComputeBankSchedule(r LoanRequest, profile BankProfile, system System) ScheduleResult {
	r.Mode = ModeBank
	r.System = system
	r = normalize(r)

	fin := ComputeFinancing(r, profile)
	result := emptyResult(r, ModeBank)
	n := r.TermMonths
	if n == 0 || fin.FinancedPrincipal <= 0 {
		return result
	}

	result.FinancedPrincipal = fin.FinancedPrincipal
	result.DownPaymentAmount = fin.DownPayment
	result.LegalFees = fin.LegalFee
	result.MonthlyRate = fin.MonthlyRate
	result.MonthlyFees = fin.MonthlyFees

	switch r.System {
	case SystemGerman:
		result.Rows = germanRows(r, fin)
	default:
		result.PureInstallment = AnnuityPayment(fin.FinancedPrincipal, fin.MonthlyRate, n)
		result.Rows = frenchRows(r, fin, result.PureInstallment)
	}

	fillTotals(&result)
	return result
}

func frenchRows(r LoanRequest, fin Financing, pureInstallment float64) []AmortizationRow {
	n := r.TermMonths
	rows := make([]AmortizationRow, 0, n)
	fees := fin.MonthlyFees
	balance := fin.FinancedPrincipal

	for i := 1; i <= n; i++ {
		interest := InterestPayment(balance, fin.MonthlyRate)
		principal := pureInstallment - interest
		balance = settle(balance - principal)
		if i == n {
			balance = 0
		}
		rows = append(rows, AmortizationRow{
			Index:            i,
			DueDate:          DueDate(r.StartDate, i),
			Principal:        principal,
			Interest:         interest,
			Fees:             fees,
			Installment:      pureInstallment + fees.Total(),
			RemainingBalance: balance,
		})
	}
	return rows
}

func germanRows(r LoanRequest, fin Financing) []AmortizationRow {
	n := r.TermMonths
	rows := make([]AmortizationRow, 0, n)
	fees := fin.MonthlyFees
	fixedPrincipal := fin.FinancedPrincipal / float64(n)
	balance := fin.FinancedPrincipal

	for i := 1; i <= n; i++ {
		interest := InterestPayment(balance, fin.MonthlyRate)
		balance = settle(balance - fixedPrincipal)
		if i == n {
			balance = 0
		}
		rows = append(rows, AmortizationRow{
			Index:            i,
			DueDate:          DueDate(r.StartDate, i),
			Principal:        fixedPrincipal,
			Interest:         interest,
			Fees:             fees,
			Installment:      fixedPrincipal + interest + fees.Total(),
			RemainingBalance: balance,
		})
	}
	return rows
}

// fillTotals aggregates the rows of a bank schedule.
func fillTotals(result *ScheduleResult) {
	n := float64(len(result.Rows))
	var interest, installments float64
	for _, row := range result.Rows {
		interest += row.Interest
		installments += row.Installment
	}

	result.TotalInterest = interest
	result.Fees = FeeBreakdown{
		Insurance:  n * result.MonthlyFees.Insurance,
		CreditLife: n * result.MonthlyFees.CreditLife,
		GPS:        n * result.MonthlyFees.GPS,
	}
	result.TotalFees = n * result.MonthlyFees.Total()
	result.TotalDebt = result.FinancedPrincipal + result.TotalInterest + result.TotalFees
	result.FirstInstallment = result.Rows[0].Installment
	result.LastInstallment = result.Rows[len(result.Rows)-1].Installment
	result.AverageInstallment = installments / n
}
