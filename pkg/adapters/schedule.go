// Package adapters normalizes engine output into the shapes consumed by the
// schedule table, the summary panel and document generation.
package adapters

import (
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/datetime"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
)

// Fee column labels, joined with " + " when several kinds are present.
const (
	LabelInsurance  = "Insurance"
	LabelCreditLife = "Credit life"
	LabelGPS        = "GPS"
)

// ScheduleView is the presentation-neutral form of a loans.ScheduleResult.
type ScheduleView struct {
	Mode           string      `json:"mode" yaml:"mode"`
	System         string      `json:"system" yaml:"system"`
	TermMonths     int         `json:"termMonths" yaml:"termMonths"`
	StartDate      string      `json:"startDate" yaml:"startDate"`
	ShowFeeColumn  bool        `json:"showFeeColumn" yaml:"showFeeColumn"`
	FeeColumnLabel string      `json:"feeColumnLabel,omitempty" yaml:"feeColumnLabel,omitempty"`
	Rows           []RowView   `json:"rows" yaml:"rows"`
	Summary        SummaryView `json:"summary" yaml:"summary"`
}

// RowView is one schedule table line.
type RowView struct {
	Index       int     `json:"index" yaml:"index"`
	DueDate     string  `json:"dueDate" yaml:"dueDate"`
	Principal   float64 `json:"principal" yaml:"principal"`
	Interest    float64 `json:"interest" yaml:"interest"`
	Insurance   float64 `json:"insurance" yaml:"insurance"`
	CreditLife  float64 `json:"creditLife" yaml:"creditLife"`
	GPS         float64 `json:"gps" yaml:"gps"`
	Fees        float64 `json:"fees" yaml:"fees"`
	Installment float64 `json:"installment" yaml:"installment"`
	Balance     float64 `json:"balance" yaml:"balance"`
}

// SummaryView carries the aggregates read by the summary panel and embedded
// by document generation.
type SummaryView struct {
	FinancedPrincipal  float64     `json:"financedPrincipal" yaml:"financedPrincipal"`
	DownPayment        float64     `json:"downPayment" yaml:"downPayment"`
	LegalFees          float64     `json:"legalFees" yaml:"legalFees"`
	MonthlyRate        float64     `json:"monthlyRate" yaml:"monthlyRate"`
	PureInstallment    float64     `json:"pureInstallment,omitempty" yaml:"pureInstallment,omitempty"`
	TotalInterest      float64     `json:"totalInterest" yaml:"totalInterest"`
	Fees               FeeTotals   `json:"fees" yaml:"fees"`
	TotalFees          float64     `json:"totalFees" yaml:"totalFees"`
	TotalDebt          float64     `json:"totalDebt" yaml:"totalDebt"`
	FirstInstallment   float64     `json:"firstInstallment" yaml:"firstInstallment"`
	LastInstallment    float64     `json:"lastInstallment" yaml:"lastInstallment"`
	AverageInstallment float64     `json:"averageInstallment" yaml:"averageInstallment"`
	MonthlyFees        MonthlyFees `json:"monthlyFees" yaml:"monthlyFees"`
}

// FeeTotals are whole-schedule fee totals by kind.
type FeeTotals struct {
	Insurance   float64 `json:"insurance" yaml:"insurance"`
	CreditLife  float64 `json:"creditLife" yaml:"creditLife"`
	GPS         float64 `json:"gps" yaml:"gps"`
	Capitalized float64 `json:"capitalized" yaml:"capitalized"`
}

// MonthlyFees are the flat per-installment fees of a bank loan.
type MonthlyFees struct {
	Insurance  float64 `json:"insurance" yaml:"insurance"`
	CreditLife float64 `json:"creditLife" yaml:"creditLife"`
	GPS        float64 `json:"gps" yaml:"gps"`
}

// Present renames the result fields and formats the due dates. It performs
// no arithmetic.
func Present(result loans.ScheduleResult) ScheduleView {
	view := ScheduleView{
		Mode:          string(result.Mode),
		System:        string(result.System),
		TermMonths:    result.TermMonths,
		ShowFeeColumn: result.HasMonthlyFees(),
		Rows:          make([]RowView, 0, len(result.Rows)),
		Summary: SummaryView{
			FinancedPrincipal:  result.FinancedPrincipal,
			DownPayment:        result.DownPaymentAmount,
			LegalFees:          result.LegalFees,
			MonthlyRate:        result.MonthlyRate,
			PureInstallment:    result.PureInstallment,
			TotalInterest:      result.TotalInterest,
			TotalFees:          result.TotalFees,
			TotalDebt:          result.TotalDebt,
			FirstInstallment:   result.FirstInstallment,
			LastInstallment:    result.LastInstallment,
			AverageInstallment: result.AverageInstallment,
			Fees: FeeTotals{
				Insurance:   result.Fees.Insurance,
				CreditLife:  result.Fees.CreditLife,
				GPS:         result.Fees.GPS,
				Capitalized: result.Fees.Capitalized,
			},
			MonthlyFees: MonthlyFees{
				Insurance:  result.MonthlyFees.Insurance,
				CreditLife: result.MonthlyFees.CreditLife,
				GPS:        result.MonthlyFees.GPS,
			},
		},
	}
	if !result.StartDate.IsZero() {
		view.StartDate = datetime.FormatDate(result.StartDate)
	}
	if view.ShowFeeColumn {
		view.FeeColumnLabel = FeeLabel(result.MonthlyFees)
	}

	for _, row := range result.Rows {
		view.Rows = append(view.Rows, RowView{
			Index:       row.Index,
			DueDate:     datetime.FormatDate(row.DueDate),
			Principal:   row.Principal,
			Interest:    row.Interest,
			Insurance:   row.Fees.Insurance,
			CreditLife:  row.Fees.CreditLife,
			GPS:         row.Fees.GPS,
			Fees:        row.Fees.Total(),
			Installment: row.Installment,
			Balance:     row.RemainingBalance,
		})
	}

	return view
}

// FeeLabel names the fee kinds present, e.g. "Insurance + GPS".
func FeeLabel(fees loans.FeePortions) string {
	var parts []string
	if fees.Insurance > 0 {
		parts = append(parts, LabelInsurance)
	}
	if fees.CreditLife > 0 {
		parts = append(parts, LabelCreditLife)
	}
	if fees.GPS > 0 {
		parts = append(parts, LabelGPS)
	}
	return strings.Join(parts, " + ")
}
