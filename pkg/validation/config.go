package validation

import (
	"fmt"
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
)

// maxAnnualRatePct flags rates that are almost certainly a unit mistake
// (a fraction typed as a percentage or the reverse).
const maxAnnualRatePct = 100

// ValidateBankProfile checks one lender profile for values the engine would
// silently clamp or that look like data entry mistakes.
func ValidateBankProfile(p loans.BankProfile) []string {
	var warnings []string
	label := p.ID
	if strings.TrimSpace(label) == "" {
		label = p.Name
	}

	if p.AnnualRatePct < 0 {
		warnings = append(warnings, fmt.Sprintf("Bank '%s' has a negative annual rate (%.2f%%)", label, p.AnnualRatePct))
	} else if p.AnnualRatePct > maxAnnualRatePct {
		warnings = append(warnings, fmt.Sprintf("Bank '%s' annual rate %.2f%% exceeds %d%%", label, p.AnnualRatePct, maxAnnualRatePct))
	} else if p.AnnualRatePct > 0 && p.AnnualRatePct < 1 {
		warnings = append(warnings, fmt.Sprintf("Bank '%s' annual rate %.4f%% looks like a fraction; rates are percentages", label, p.AnnualRatePct))
	}

	fees := []struct {
		name  string
		value float64
	}{
		{"legal fee", p.LegalFee},
		{"insurance rate", p.InsuranceRatePct},
		{"credit life rate", p.DesgravamenRatePct},
		{"GPS monthly fee", p.GPSMonthlyFee},
	}
	for _, fee := range fees {
		if fee.value < 0 {
			warnings = append(warnings, fmt.Sprintf("Bank '%s' has a negative %s (%.2f); it will be treated as 0", label, fee.name, fee.value))
		}
	}

	return warnings
}

// ValidateDirectTerms checks the dealer's direct financing terms.
func ValidateDirectTerms(terms loans.DirectTerms) []string {
	var warnings []string
	if terms.MonthlyRatePct < 0 {
		warnings = append(warnings, fmt.Sprintf("Direct monthly rate is negative (%.2f%%)", terms.MonthlyRatePct))
	}
	if terms.AdminFee < 0 || terms.GPSFee < 0 || terms.InsuranceFee < 0 {
		warnings = append(warnings, "Direct fees contain negative values; they will be treated as 0")
	}
	return warnings
}

// ConfigValidator validates the loan-related parts of a configuration.
type ConfigValidator struct {
	Banks                     []loans.BankProfile
	Direct                    loans.DirectTerms
	DefaultTermMonths         int
	DefaultDownPaymentPercent float64
	DefaultSystem             string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool, len(cv.Banks))
	for _, bank := range cv.Banks {
		id := strings.ToLower(strings.TrimSpace(bank.ID))
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("Bank '%s' has no id and cannot be selected", bank.Name))
		} else if seen[id] {
			warnings = append(warnings, fmt.Sprintf("Bank id '%s' is declared more than once", id))
		}
		seen[id] = true
		warnings = append(warnings, ValidateBankProfile(bank)...)
	}

	warnings = append(warnings, ValidateDirectTerms(cv.Direct)...)

	if cv.DefaultTermMonths < 0 {
		warnings = append(warnings, fmt.Sprintf("Default term of %d months is negative; it will be treated as 0", cv.DefaultTermMonths))
	}
	if cv.DefaultDownPaymentPercent < 0 || cv.DefaultDownPaymentPercent > constants.MaxDownPaymentPercent {
		warnings = append(warnings, fmt.Sprintf("Default down payment of %.2f%% is outside [0, %.0f]; it will be clamped",
			cv.DefaultDownPaymentPercent, constants.MaxDownPaymentPercent))
	}
	if cv.DefaultSystem != "" {
		if _, err := loans.ParseSystem(cv.DefaultSystem); err != nil {
			warnings = append(warnings, fmt.Sprintf("Default system '%s' is not recognized; FRENCH will be used", cv.DefaultSystem))
		}
	}

	return warnings
}
