package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotal(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name: "monthly no interest",
			profile: Profile{
				BaseValue:                dec("100"),
				Cycle:                    CycleMonthly,
				ContractDurationMonths:   12,
				InstallmentCount:         1,
				InterestFreeInstallments: 1,
			},
			want: "1200",
		},
		{
			name: "monthly with interest",
			profile: Profile{
				BaseValue:                dec("100"),
				Cycle:                    CycleMonthly,
				ContractDurationMonths:   12,
				InstallmentCount:         4,
				InterestFreeInstallments: 1,
				InterestRatePercent:      dec("10"),
			},
			// 1200 * (1 + 0.10*3)
			want: "1560",
		},
		{
			name: "semiannual over twelve months",
			profile: Profile{
				BaseValue:                dec("500"),
				Cycle:                    CycleSemiannual,
				ContractDurationMonths:   12,
				InstallmentCount:         1,
				InterestFreeInstallments: 1,
			},
			want: "1000",
		},
		{
			name: "quarterly partial cycle rounds up",
			profile: Profile{
				BaseValue:                dec("300"),
				Cycle:                    CycleQuarterly,
				ContractDurationMonths:   7,
				InstallmentCount:         1,
				InterestFreeInstallments: 1,
			},
			// ceil(7/3) = 3 cycles
			want: "900",
		},
		{
			name: "yearly single cycle",
			profile: Profile{
				BaseValue:              dec("2400"),
				Cycle:                  CycleYearly,
				ContractDurationMonths: 12,
			},
			want: "2400",
		},
		{
			name: "installments within interest-free count",
			profile: Profile{
				BaseValue:                dec("100"),
				Cycle:                    CycleMonthly,
				ContractDurationMonths:   10,
				InstallmentCount:         3,
				InterestFreeInstallments: 3,
				InterestRatePercent:      dec("10"),
			},
			want: "1000",
		},
		{
			name: "zero base value allowed",
			profile: Profile{
				BaseValue:              decimal.Zero,
				Cycle:                  CycleMonthly,
				ContractDurationMonths: 6,
			},
			want: "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Total(tc.profile)
			require.NoError(t, err)
			assert.True(t, dec(tc.want).Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestTotalDefaults(t *testing.T) {
	// Missing duration defaults to 12 for monthly, 1 otherwise.
	got, err := Total(Profile{BaseValue: dec("50"), Cycle: CycleMonthly})
	require.NoError(t, err)
	assert.True(t, dec("600").Equal(got))

	got, err = Total(Profile{BaseValue: dec("50"), Cycle: CycleSingle})
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(got))
}

func TestTotalRejectsInvalidInput(t *testing.T) {
	_, err := Total(Profile{BaseValue: dec("-1"), Cycle: CycleMonthly})
	assert.ErrorIs(t, err, ErrNegativeBaseValue)

	_, err = Total(Profile{BaseValue: dec("1"), Cycle: "fortnightly"})
	assert.ErrorIs(t, err, ErrInvalidCycle)

	_, err = Total(Profile{BaseValue: dec("1"), Cycle: CycleMonthly, InterestRatePercent: dec("-2")})
	assert.ErrorIs(t, err, ErrNegativeInterestRate)
}

func TestTotalSimpleNotCompound(t *testing.T) {
	got, err := Total(Profile{
		BaseValue:                dec("1000"),
		Cycle:                    CycleMonthly,
		ContractDurationMonths:   1,
		InstallmentCount:         12,
		InterestFreeInstallments: 2,
		InterestRatePercent:      dec("1.5"),
	})
	require.NoError(t, err)
	// 1000 * (1 + 0.015*10), not 1000 * 1.015^10.
	assert.True(t, dec("1150").Equal(got), "got %s", got)
}

func TestPerInstallment(t *testing.T) {
	per := PerInstallment(dec("1000"), 3)
	assert.Equal(t, "333.33", per.StringFixed(2))

	// Full precision is kept until formatting.
	assert.True(t, per.Mul(decimal.NewFromInt(3)).Sub(dec("1000")).Abs().LessThan(dec("0.0000000001")))

	assert.True(t, dec("1000").Equal(PerInstallment(dec("1000"), 0)))
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), EndDate(start, 12))

	// Day overflow clamps to the last day of the target month.
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), EndDate(jan31, 1))

	leap := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), EndDate(leap, 1))

	// Crossing a year boundary.
	oct := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), EndDate(oct, 6))
}

func TestInstallmentDueDate(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start, InstallmentDueDate(start, CycleMonthly, 0))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, CycleMonthly, 1))
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, CycleQuarterly, 1))
	assert.Equal(t, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, CycleWeekly, 1))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), InstallmentDueDate(start, CycleDaily, 1))
	assert.Equal(t, start, InstallmentDueDate(start, CycleSingle, 5))
}
