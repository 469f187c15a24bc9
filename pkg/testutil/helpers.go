// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/mathutil"
)

// ScheduleViolations checks the structural invariants every schedule must
// hold and returns one message per violation. An empty slice means the
// schedule is sound.
func ScheduleViolations(result loans.ScheduleResult) []string {
	var violations []string
	n := len(result.Rows)

	if n != result.TermMonths {
		violations = append(violations, fmt.Sprintf("row count %d differs from term %d", n, result.TermMonths))
	}
	if n == 0 {
		if result.TotalDebt != 0 || result.TotalInterest != 0 || result.TotalFees != 0 {
			violations = append(violations, "empty schedule carries non-zero totals")
		}
		return violations
	}

	if last := result.Rows[n-1].RemainingBalance; last != 0 {
		violations = append(violations, fmt.Sprintf("terminal balance is %v, not 0", last))
	}

	for i, row := range result.Rows {
		if row.Index != i+1 {
			violations = append(violations, fmt.Sprintf("row %d has index %d", i+1, row.Index))
		}
		if row.RemainingBalance < 0 {
			violations = append(violations, fmt.Sprintf("row %d balance %v is negative", row.Index, row.RemainingBalance))
		}
		if i > 0 && row.RemainingBalance > result.Rows[i-1].RemainingBalance {
			violations = append(violations, fmt.Sprintf("row %d balance increased", row.Index))
		}
		if i > 0 && !row.DueDate.After(result.Rows[i-1].DueDate) {
			violations = append(violations, fmt.Sprintf("row %d due date does not advance", row.Index))
		}
	}

	parts := result.FinancedPrincipal + result.TotalInterest + result.TotalFees
	if !mathutil.WithinTolerance(parts, result.TotalDebt, constants.CurrencyTolerance*float64(n)) {
		violations = append(violations, fmt.Sprintf("principal + interest + fees = %.4f, total debt %.4f", parts, result.TotalDebt))
	}

	if result.Mode == loans.ModeBank {
		var principal float64
		for _, row := range result.Rows {
			principal += row.Principal
		}
		if !mathutil.WithinTolerance(principal, result.FinancedPrincipal, constants.CurrencyTolerance*float64(n)) {
			violations = append(violations, fmt.Sprintf("principal portions sum to %.4f, financed %.4f", principal, result.FinancedPrincipal))
		}
	}

	return violations
}
