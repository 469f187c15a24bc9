package loans

import (
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/datetime"
	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/mathutil"
)

// Normalize returns a copy of the request with out-of-range values brought
// back into range: the price is bounded to [0, MaxAmount] and the term to
// [0, MaxTermMonths], a missing start date becomes today, and an unknown
// system falls back to French. Direct loans always use the French system.
func (r LoanRequest) Normalize(now time.Time) LoanRequest {
	r.VehiclePrice = mathutil.Bound(r.VehiclePrice, constants.MaxAmount)
	if r.TermMonths < 0 {
		r.TermMonths = 0
	}
	if r.TermMonths > constants.MaxTermMonths {
		r.TermMonths = constants.MaxTermMonths
	}
	if r.StartDate.IsZero() {
		r.StartDate = now
	}
	r.StartDate = datetime.Truncate(r.StartDate)
	if r.Mode == ModeDirect || (r.System != SystemFrench && r.System != SystemGerman) {
		r.System = SystemFrench
	}
	return r
}

// DownPaymentValue resolves the requested down payment against the vehicle
// price. Percentages are clamped to [0, 90] and amounts to [0, price].
func DownPaymentValue(vehiclePrice float64, dp DownPayment) float64 {
	price := mathutil.Bound(vehiclePrice, constants.MaxAmount)
	if dp.Mode == DownPaymentPercentage {
		pct := mathutil.Clamp(dp.Value, 0, constants.MaxDownPaymentPercent)
		return mathutil.ApplyPercentage(price, pct)
	}
	return mathutil.Clamp(dp.Value, 0, price)
}

// DueDate is the due date of the 1-indexed installment.
func DueDate(start time.Time, index int) time.Time {
	return datetime.AddMonths(start, index)
}

func normalize(r LoanRequest) LoanRequest {
	return r.Normalize(time.Now())
}

func settle(balance float64) float64 {
	if mathutil.Round(balance) <= 0 {
		return 0
	}
	return balance
}

func emptyResult(r LoanRequest, mode Mode) ScheduleResult {
	return ScheduleResult{
		Mode:              mode,
		System:            r.System,
		TermMonths:        r.TermMonths,
		StartDate:         r.StartDate,
		Rows:              []AmortizationRow{},
		DownPaymentAmount: DownPaymentValue(r.VehiclePrice, r.DownPayment),
	}
}
