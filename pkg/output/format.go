// Package output provides utilities for formatting and displaying schedules.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/adapters"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/format"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
)

// PrettyFormat writes a human-readable summary and schedule table.
func PrettyFormat(w io.Writer, view adapters.ScheduleView) {
	s := view.Summary

	_, _ = fmt.Fprintf(w, "--- %s loan, %s system, %d months from %s ---\n", view.Mode, view.System, view.TermMonths, view.StartDate)
	_, _ = fmt.Fprintf(w, "Financed principal: %s\n", format.Currency(s.FinancedPrincipal))
	_, _ = fmt.Fprintf(w, "Down payment:       %s\n", format.Currency(s.DownPayment))
	if s.LegalFees > 0 {
		_, _ = fmt.Fprintf(w, "Legal fees:         %s\n", format.Currency(s.LegalFees))
	}
	_, _ = fmt.Fprintf(w, "Total interest:     %s\n", format.Currency(s.TotalInterest))
	_, _ = fmt.Fprintf(w, "Total fees:         %s\n", format.Currency(s.TotalFees))
	_, _ = fmt.Fprintf(w, "Total debt:         %s\n", format.Currency(s.TotalDebt))
	_, _ = fmt.Fprintf(w, "First installment:  %s\n", format.Currency(s.FirstInstallment))
	if s.LastInstallment != s.FirstInstallment {
		_, _ = fmt.Fprintf(w, "Last installment:   %s\n", format.Currency(s.LastInstallment))
	}

	if len(view.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "No installments.")
		return
	}

	headers := []string{"#", "Due date", "Principal", "Interest"}
	if view.ShowFeeColumn {
		headers = append(headers, view.FeeColumnLabel)
	}
	headers = append(headers, "Installment", "Balance")
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("_", len(h))
	}
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n", strings.Join(headers, " | "), strings.Join(underline, " | "))

	for _, row := range view.Rows {
		cols := []string{
			fmt.Sprintf("%d", row.Index),
			row.DueDate,
			format.Currency(row.Principal),
			format.Currency(row.Interest),
		}
		if view.ShowFeeColumn {
			cols = append(cols, format.Currency(row.Fees))
		}
		cols = append(cols, format.Currency(row.Installment), format.Currency(row.Balance))
		_, _ = fmt.Fprintln(w, strings.Join(cols, " | "))
	}
}

// CsvFormat writes the schedule in comma-separated value format.
func CsvFormat(w io.Writer, view adapters.ScheduleView) {
	_, _ = io.WriteString(w, CsvString(view))
}

// CsvString renders the schedule in comma-separated value format.
func CsvString(view adapters.ScheduleView) string {
	var b strings.Builder
	b.WriteString(`"index","due date","principal","interest","insurance","credit life","gps","fees","installment","balance"`)
	b.WriteString("\n")
	for _, row := range view.Rows {
		fmt.Fprintf(&b, `"%d","%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			row.Index, row.DueDate, row.Principal, row.Interest,
			row.Insurance, row.CreditLife, row.GPS, row.Fees, row.Installment, row.Balance)
		b.WriteString("\n")
	}
	return b.String()
}

// JSONFormat writes the view as indented JSON.
func JSONFormat(w io.Writer, view adapters.ScheduleView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	return nil
}

// BankListFormat writes one line per lender with its rate and fees.
func BankListFormat(w io.Writer, profiles []loans.BankProfile) {
	for _, p := range profiles {
		_, _ = fmt.Fprintf(w, "%-12s %-28s rate %7s  legal %10s  insurance %6s  credit life %6s  gps %8s\n",
			p.ID, p.Name, format.Percent(p.AnnualRatePct), format.Currency(p.LegalFee),
			format.Percent(p.InsuranceRatePct), format.Percent(p.DesgravamenRatePct), format.Currency(p.GPSMonthlyFee))
	}
}
