// Package billing implements the advertiser contract calculation rules:
// cycle totals, installment interest, per-installment values and
// contract end dates.
package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBaseValue    = errors.New("negative_base_value")
	ErrNegativeInterestRate = errors.New("negative_interest_rate")
	ErrInvalidDuration      = errors.New("invalid_contract_duration")
	ErrInvalidInstallments  = errors.New("invalid_installment_count")
)

var oneHundred = decimal.NewFromInt(100)

// Profile is the billing subset of an advertiser contract.
type Profile struct {
	BaseValue                decimal.Decimal
	Cycle                    Cycle
	ContractDurationMonths   int
	InstallmentCount         int
	InterestRatePercent      decimal.Decimal
	InterestFreeInstallments int
	StartDate                time.Time
}

// Normalize fills the defaults the admin panel leaves blank: duration 12
// for monthly contracts and 1 otherwise, one installment and one
// interest-free installment.
func (p Profile) Normalize() Profile {
	if p.ContractDurationMonths == 0 {
		if p.Cycle == CycleMonthly {
			p.ContractDurationMonths = 12
		} else {
			p.ContractDurationMonths = 1
		}
	}
	if p.InstallmentCount == 0 {
		p.InstallmentCount = 1
	}
	if p.InterestFreeInstallments == 0 {
		p.InterestFreeInstallments = 1
	}
	return p
}

// Validate rejects negative inputs. A zero base value is allowed: the
// admin panel warns but must not block free contracts.
func (p Profile) Validate() error {
	if _, err := ParseCycle(string(p.Cycle)); err != nil {
		return err
	}
	if p.BaseValue.IsNegative() {
		return ErrNegativeBaseValue
	}
	if p.InterestRatePercent.IsNegative() {
		return ErrNegativeInterestRate
	}
	if p.ContractDurationMonths < 0 {
		return ErrInvalidDuration
	}
	if p.InstallmentCount < 0 || p.InterestFreeInstallments < 0 {
		return ErrInvalidInstallments
	}
	return nil
}

// Total computes the amount owed over the whole contract.
//
// Monthly contracts charge the base value once per month. Other cycles
// charge it once per cycle, with the cycle count rounded up so a partial
// final cycle is still billed. Installments beyond the interest-free
// count add simple interest, scaled by the number of interest-bearing
// installments. The rate is applied once, never compounded per period;
// this matches the published contract terms exactly.
func Total(p Profile) (decimal.Decimal, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return decimal.Zero, err
	}

	var cycleTotal decimal.Decimal
	if p.Cycle == CycleMonthly {
		cycleTotal = p.BaseValue.Mul(decimal.NewFromInt(int64(p.ContractDurationMonths)))
	} else {
		cycleMonths := p.Cycle.Months()
		cycles := (p.ContractDurationMonths + cycleMonths - 1) / cycleMonths
		if cycles < 1 {
			cycles = 1
		}
		cycleTotal = p.BaseValue.Mul(decimal.NewFromInt(int64(cycles)))
	}

	if p.InstallmentCount <= p.InterestFreeInstallments {
		return cycleTotal, nil
	}

	withInterest := int64(p.InstallmentCount - p.InterestFreeInstallments)
	factor := decimal.NewFromInt(1).Add(
		p.InterestRatePercent.Div(oneHundred).Mul(decimal.NewFromInt(withInterest)),
	)
	return cycleTotal.Mul(factor), nil
}

// PerInstallment divides the total across installments at full
// precision. Rounding to centavos happens only at the presentation
// boundary (API responses, PDFs).
func PerInstallment(total decimal.Decimal, installments int) decimal.Decimal {
	if installments < 1 {
		installments = 1
	}
	return total.Div(decimal.NewFromInt(int64(installments)))
}

// EndDate adds the contract duration in calendar months to the start
// date. When the start day does not exist in the target month the date
// clamps to that month's last day, so a Jan 31 start plus one month ends
// on Feb 28/29 rather than spilling into March.
func EndDate(start time.Time, durationMonths int) time.Time {
	return AddMonthsClamped(start, durationMonths)
}

// AddMonthsClamped is calendar month addition with end-of-month
// clamping.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months

	year += (m - 1) / 12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		year--
	}

	if last := daysIn(year, time.Month(m)); day > last {
		day = last
	}
	return time.Date(year, time.Month(m), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InstallmentDueDate returns the due date of the zero-based installment
// index, advancing from the contract start by the cycle's period.
func InstallmentDueDate(start time.Time, cycle Cycle, index int) time.Time {
	switch cycle {
	case CycleDaily:
		return start.AddDate(0, 0, index)
	case CycleWeekly:
		return start.AddDate(0, 0, 7*index)
	case CycleSingle:
		return start
	default:
		return AddMonthsClamped(start, index*cycle.Months())
	}
}
