package billing

import (
	"errors"
	"strings"
)

// Cycle is an advertiser contract billing cadence.
type Cycle string

const (
	CycleDaily      Cycle = "daily"
	CycleWeekly     Cycle = "weekly"
	CycleMonthly    Cycle = "monthly"
	CycleQuarterly  Cycle = "quarterly"
	CycleSemiannual Cycle = "semiannual"
	CycleYearly     Cycle = "yearly"
	CycleSingle     Cycle = "single"
)

var ErrInvalidCycle = errors.New("invalid_billing_cycle")

// ParseCycle validates a raw cycle value coming from the API or the
// database. Unknown values are rejected, never coerced.
func ParseCycle(raw string) (Cycle, error) {
	switch Cycle(strings.ToLower(strings.TrimSpace(raw))) {
	case CycleDaily:
		return CycleDaily, nil
	case CycleWeekly:
		return CycleWeekly, nil
	case CycleMonthly:
		return CycleMonthly, nil
	case CycleQuarterly:
		return CycleQuarterly, nil
	case CycleSemiannual:
		return CycleSemiannual, nil
	case CycleYearly:
		return CycleYearly, nil
	case CycleSingle:
		return CycleSingle, nil
	default:
		return "", ErrInvalidCycle
	}
}

// Months returns how many calendar months one billing cycle spans.
// Cycles without a monthly basis count as one month so a contract
// duration in months still yields a cycle count.
func (c Cycle) Months() int {
	switch c {
	case CycleQuarterly:
		return 3
	case CycleSemiannual:
		return 6
	case CycleYearly:
		return 12
	default:
		return 1
	}
}
