// Package loans provides the credit amortization engine: bank schedules under
// the French and German systems, and the direct (dealer-financed) schedule
// reconciliation.
package loans

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects the financing policy of a loan.
type Mode string

// System selects the amortization system of a bank loan.
type System string

// DownPaymentMode tells how a DownPayment value is interpreted.
type DownPaymentMode string

const (
	// ModeDirect is financing granted by the dealer at a flat installment.
	ModeDirect Mode = "DIRECT"
	// ModeBank is financing granted by a lender from the catalog.
	ModeBank Mode = "BANK"
)

const (
	// SystemFrench keeps principal plus interest constant every period.
	SystemFrench System = "FRENCH"
	// SystemGerman keeps the principal portion constant every period.
	SystemGerman System = "GERMAN"
)

const (
	// DownPaymentAmount reads the value as money, clamped to [0, price].
	DownPaymentAmount DownPaymentMode = "amount"
	// DownPaymentPercentage reads the value as a percentage of the price,
	// clamped to [0, 90].
	DownPaymentPercentage DownPaymentMode = "percentage"
)

var (
	// ErrInvalidMode is returned by ParseMode for values other than DIRECT or BANK.
	ErrInvalidMode = errors.New("invalid financing mode")
	// ErrInvalidSystem is returned by ParseSystem for values other than FRENCH or GERMAN.
	ErrInvalidSystem = errors.New("invalid amortization system")
	// ErrInvalidDownPaymentMode is returned by ParseDownPaymentMode for values
	// other than amount or percentage.
	ErrInvalidDownPaymentMode = errors.New("invalid down payment mode")
)

// ParseMode accepts DIRECT or BANK in any case.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(value))) {
	case ModeDirect:
		return ModeDirect, nil
	case ModeBank:
		return ModeBank, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, value)
}

// ParseSystem accepts FRENCH or GERMAN in any case. An empty value selects
// the French system.
func ParseSystem(value string) (System, error) {
	switch System(strings.ToUpper(strings.TrimSpace(value))) {
	case "", SystemFrench:
		return SystemFrench, nil
	case SystemGerman:
		return SystemGerman, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSystem, value)
}

// ParseDownPaymentMode accepts amount or percentage. An empty value selects
// amount.
func ParseDownPaymentMode(value string) (DownPaymentMode, error) {
	switch DownPaymentMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", DownPaymentAmount:
		return DownPaymentAmount, nil
	case DownPaymentPercentage:
		return DownPaymentPercentage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDownPaymentMode, value)
}

// DownPayment is the requested up-front payment, either as an absolute
// amount or as a percentage of the vehicle price.
type DownPayment struct {
	Mode  DownPaymentMode
	Value float64
}

// LoanRequest is the engine's primary input. It is built fresh for every
// parameter change and never patched in place.
type LoanRequest struct {
	VehiclePrice float64
	DownPayment  DownPayment
	TermMonths   int
	Mode         Mode
	BankID       string
	System       System
	StartDate    time.Time
}

// BankProfile is immutable lender reference data. Rates are percentages.
type BankProfile struct {
	ID                 string
	Name               string
	AnnualRatePct      float64
	LegalFee           float64
	InsuranceRatePct   float64
	DesgravamenRatePct float64
	GPSMonthlyFee      float64
}

// FeePortions holds the flat monthly fee components of one installment.
type FeePortions struct {
	Insurance  float64
	CreditLife float64
	GPS        float64
}

// Total sums the fee components.
func (f FeePortions) Total() float64 {
	return f.Insurance + f.CreditLife + f.GPS
}

// FeeBreakdown totals fees over the whole schedule by kind. Capitalized
// holds direct-mode fees rolled into the financed amount.
type FeeBreakdown struct {
	Insurance   float64
	CreditLife  float64
	GPS         float64
	Capitalized float64
}

// Total sums all fee kinds.
func (f FeeBreakdown) Total() float64 {
	return f.Insurance + f.CreditLife + f.GPS + f.Capitalized
}

// AmortizationRow is one schedule entry.
type AmortizationRow struct {
	Index            int
	DueDate          time.Time
	Principal        float64
	Interest         float64
	Fees             FeePortions
	Installment      float64
	RemainingBalance float64
}

// ScheduleResult is the complete projection of a loan at origination.
type ScheduleResult struct {
	Mode       Mode
	System     System
	TermMonths int
	StartDate  time.Time

	Rows []AmortizationRow

	FinancedPrincipal float64
	// DownPaymentAmount is the resolved down payment. It is informative and
	// not a schedule total, so empty schedules still report it.
	DownPaymentAmount float64
	LegalFees         float64

	// MonthlyRate is the periodic rate applied to the balance; zero for the
	// flat direct policy.
	MonthlyRate float64
	// PureInstallment is the principal+interest annuity of French schedules.
	PureInstallment float64
	MonthlyFees     FeePortions

	TotalInterest float64
	Fees          FeeBreakdown
	TotalFees     float64
	TotalDebt     float64

	FirstInstallment   float64
	LastInstallment    float64
	AverageInstallment float64
}

// Empty reports whether the schedule has no rows.
func (r ScheduleResult) Empty() bool {
	return len(r.Rows) == 0
}

// HasMonthlyFees reports whether installments carry flat monthly fees.
func (r ScheduleResult) HasMonthlyFees() bool {
	return r.Mode == ModeBank && r.MonthlyFees.Total() > 0
}
