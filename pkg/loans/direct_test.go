package loans

import (
	"math"
	"testing"
	"time"
)

func directRequest(term int) LoanRequest {
	return LoanRequest{
		VehiclePrice: 15000,
		DownPayment:  DownPayment{Mode: DownPaymentAmount, Value: 3000},
		TermMonths:   term,
		Mode:         ModeDirect,
		System:       SystemGerman,
		StartDate:    time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestScenarioDirect(t *testing.T) {
	result := ComputeDirectSchedule(directRequest(36), 500, 1500, 12000)

	if result.Mode != ModeDirect {
		t.Errorf("Mode = %s, expected DIRECT", result.Mode)
	}
	if result.System != SystemFrench {
		t.Errorf("System = %s, expected the forced FRENCH", result.System)
	}
	if result.TotalDebt != 18000 {
		t.Errorf("TotalDebt = %.2f, expected 18000", result.TotalDebt)
	}
	if result.TotalInterest != 4500 {
		t.Errorf("TotalInterest = %.2f, expected 4500", result.TotalInterest)
	}
	if result.TotalFees != 1500 || result.Fees.Capitalized != 1500 {
		t.Errorf("fees = %.2f (capitalized %.2f), expected 1500", result.TotalFees, result.Fees.Capitalized)
	}
	if result.FinancedPrincipal != 12000 {
		t.Errorf("FinancedPrincipal = %.2f, expected 12000", result.FinancedPrincipal)
	}
	if len(result.Rows) != 36 {
		t.Fatalf("expected 36 rows, got %d", len(result.Rows))
	}

	balance := 18000.0
	for _, row := range result.Rows {
		if row.Interest != 125 {
			t.Errorf("row %d interest = %v, expected 125", row.Index, row.Interest)
		}
		if row.Principal != 375 {
			t.Errorf("row %d principal = %v, expected 375", row.Index, row.Principal)
		}
		balance -= 500
		if row.RemainingBalance != balance {
			t.Errorf("row %d balance = %v, expected remaining total debt %v", row.Index, row.RemainingBalance, balance)
		}
		if row.Fees.Total() != 0 {
			t.Errorf("row %d carries monthly fees %+v", row.Index, row.Fees)
		}
	}
	if result.Rows[35].RemainingBalance != 0 {
		t.Errorf("terminal balance = %v, expected 0", result.Rows[35].RemainingBalance)
	}
	if result.HasMonthlyFees() {
		t.Error("direct schedules never show a monthly fee column")
	}
}

func TestDirectReconciliation(t *testing.T) {
	tests := []struct {
		name        string
		installment float64
		fees        float64
		principal   float64
		term        int
	}{
		{"Round numbers", 500, 1500, 12000, 36},
		{"Cents", 433.17, 912.35, 11250.5, 24},
		{"Odd term", 987.65, 0, 9000, 11},
		{"Single installment", 10500.10, 250, 10000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeDirectSchedule(directRequest(tt.term), tt.installment, tt.fees, tt.principal)

			var installments, interest float64
			for _, row := range result.Rows {
				installments += row.Installment
				interest += row.Interest
				if row.Installment != tt.installment {
					t.Errorf("row %d installment = %v, expected %v", row.Index, row.Installment, tt.installment)
				}
			}
			totalToPay := tt.installment * float64(tt.term)
			if math.Abs(installments-totalToPay) > 1e-6 {
				t.Errorf("Σ installments = %.6f, expected %.6f", installments, totalToPay)
			}
			if math.Abs(result.FinancedPrincipal+result.TotalFees+result.TotalInterest-result.TotalDebt) > 1e-9 {
				t.Errorf("principal %.2f + fees %.2f + interest %.2f != debt %.2f",
					result.FinancedPrincipal, result.TotalFees, result.TotalInterest, result.TotalDebt)
			}
			if math.Abs(result.TotalDebt-totalToPay) > 1e-9 {
				t.Errorf("TotalDebt = %.6f, expected %.6f", result.TotalDebt, totalToPay)
			}
			if math.Abs(interest-result.TotalInterest) > 1e-6 {
				t.Errorf("Σ interest = %.6f, expected %.6f", interest, result.TotalInterest)
			}
			if result.Rows[tt.term-1].RemainingBalance != 0 {
				t.Errorf("terminal balance = %v, expected 0", result.Rows[tt.term-1].RemainingBalance)
			}
		})
	}
}

func TestDirectScheduleDegenerate(t *testing.T) {
	result := ComputeDirectSchedule(directRequest(0), 500, 1500, 12000)

	if result.Rows == nil || len(result.Rows) != 0 {
		t.Fatalf("expected empty rows, got %v", result.Rows)
	}
	if result.TotalDebt != 0 || result.TotalInterest != 0 || result.TotalFees != 0 ||
		result.FinancedPrincipal != 0 || result.FirstInstallment != 0 {
		t.Errorf("expected zero totals, got %+v", result)
	}
}

func TestDirectScheduleNegativeInputs(t *testing.T) {
	result := ComputeDirectSchedule(directRequest(12), -500, -10, -1000)
	for _, row := range result.Rows {
		if row.Installment != 0 || row.RemainingBalance != 0 {
			t.Fatalf("row %d = %+v, expected zeroed row", row.Index, row)
		}
	}
	if result.TotalDebt != 0 {
		t.Errorf("TotalDebt = %v, expected 0", result.TotalDebt)
	}
}

func TestDirectAmortizedVariant(t *testing.T) {
	req := directRequest(36)
	result := ComputeDirectScheduleWithOptions(req, 500, 1500, 12000, DirectOptions{Policy: DirectAmortized})

	if result.MonthlyRate <= 0 {
		t.Fatalf("MonthlyRate = %v, expected a positive implied rate", result.MonthlyRate)
	}
	if got := AnnuityPayment(13500, result.MonthlyRate, 36); math.Abs(got-500) > 1e-4 {
		t.Errorf("implied rate reproduces installment %.6f, expected 500", got)
	}

	var principal float64
	for i := 1; i < len(result.Rows); i++ {
		if result.Rows[i].Interest > result.Rows[i-1].Interest {
			t.Errorf("row %d interest increased", result.Rows[i].Index)
		}
		if result.Rows[i].RemainingBalance > result.Rows[i-1].RemainingBalance {
			t.Errorf("row %d balance increased", result.Rows[i].Index)
		}
	}
	for _, row := range result.Rows {
		principal += row.Principal
	}
	if math.Abs(principal-13500) > 0.01*36 {
		t.Errorf("Σ principal = %.4f, expected 13500 (principal plus fees)", principal)
	}
	if result.Rows[35].RemainingBalance != 0 {
		t.Errorf("terminal balance = %v, expected 0", result.Rows[35].RemainingBalance)
	}
	if math.Abs(result.FinancedPrincipal+result.TotalFees+result.TotalInterest-result.TotalDebt) > 0.01 {
		t.Errorf("amortized totals do not reconcile: %+v", result)
	}
}

func TestDirectAmortizedFallsBackToFlat(t *testing.T) {
	// 300 × 36 = 10800 does not even cover the 13500 principal.
	result := ComputeDirectScheduleWithOptions(directRequest(36), 300, 1500, 12000, DirectOptions{Policy: DirectAmortized})
	if result.MonthlyRate != 0 {
		t.Errorf("MonthlyRate = %v, expected flat fallback", result.MonthlyRate)
	}
	if result.TotalInterest != 10800-13500 {
		t.Errorf("TotalInterest = %v, expected %v", result.TotalInterest, 10800.0-13500)
	}
}

func TestImpliedMonthlyRate(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		term       int
	}{
		{"Car loan", 15000, 16.77, 48},
		{"High rate single payment", 1000, 600, 1},
		{"Low rate long term", 40000, 2.5, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installment := AnnuityPayment(tt.principal, tt.annualRate/1200, tt.term)
			rate, ok := ImpliedMonthlyRate(tt.principal, installment, tt.term)
			if !ok {
				t.Fatal("expected a rate")
			}
			if math.Abs(rate-tt.annualRate/1200) > 1e-8 {
				t.Errorf("ImpliedMonthlyRate = %v, expected %v", rate, tt.annualRate/1200)
			}
		})
	}

	if _, ok := ImpliedMonthlyRate(1000, 10, 12); ok {
		t.Error("expected no rate when installments do not cover the principal")
	}
	if _, ok := ImpliedMonthlyRate(1000, 100, 0); ok {
		t.Error("expected no rate for a zero term")
	}
}

func TestParseDirectPolicy(t *testing.T) {
	tests := []struct {
		value     string
		expected  DirectPolicy
		expectErr bool
	}{
		{"", DirectFlat, false},
		{"FLAT", DirectFlat, false},
		{" amortized ", DirectAmortized, false},
		{"balloon", DirectFlat, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDirectPolicy(tt.value)
			if (err != nil) != tt.expectErr {
				t.Fatalf("ParseDirectPolicy(%q) error = %v", tt.value, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDirectPolicy(%q) = %s, expected %s", tt.value, got, tt.expected)
			}
		})
	}
}

func TestDirectScheduleExtremeInputs(t *testing.T) {
	tests := []struct {
		name         string
		req          LoanRequest
		installment  float64
		fees         float64
		principal    float64
		expectedRows int
	}{
		{"Huge term", LoanRequest{TermMonths: math.MaxInt}, 500, 0, 1000, 600},
		{"Overflow-range installment", directRequest(48), 1.7e308, 1500, 12000, 48},
		{"Overflow-range principal and fees", directRequest(48), 500, math.MaxFloat64, math.MaxFloat64, 48},
		{"Infinite installment", directRequest(12), math.Inf(1), 0, 1000, 12},
	}

	for _, tt := range tests {
		for _, policy := range []DirectPolicy{DirectFlat, DirectAmortized} {
			t.Run(tt.name+"/"+policy.String(), func(t *testing.T) {
				result := ComputeDirectScheduleWithOptions(tt.req, tt.installment, tt.fees, tt.principal, DirectOptions{Policy: policy})
				if len(result.Rows) != tt.expectedRows {
					t.Fatalf("expected %d rows, got %d", tt.expectedRows, len(result.Rows))
				}
				checkFinite(t, result)
				if n := len(result.Rows); result.Rows[n-1].RemainingBalance != 0 {
					t.Errorf("terminal balance = %v, expected 0", result.Rows[n-1].RemainingBalance)
				}
			})
		}
	}
}

func TestQuoteDirectHugeTerm(t *testing.T) {
	req := directRequest(math.MaxInt)
	quote := QuoteDirect(req, DirectTerms{MonthlyRatePct: 1.25, AdminFee: 800})
	if math.IsInf(quote.FixedInstallment, 0) || quote.FixedInstallment <= 0 {
		t.Fatalf("FixedInstallment = %v, expected a finite positive quote", quote.FixedInstallment)
	}

	result := ComputeDirectSchedule(req, quote.FixedInstallment, quote.FeesTotal, quote.FinancedPrincipal)
	if result.TermMonths != 600 || len(result.Rows) != 600 {
		t.Errorf("TermMonths = %d rows = %d, expected the 600 month cap", result.TermMonths, len(result.Rows))
	}
}
