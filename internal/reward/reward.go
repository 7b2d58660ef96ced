package reward

import (
	"fmt"

	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

// DaysPerYear is the day count APY is quoted against.
const DaysPerYear = 365

var (
	hundred     = decimal.NewFromInt(100)
	yearPercent = decimal.NewFromInt(100 * DaysPerYear)
)

// Estimate returns the simple-interest reward for principal locked lockDays at apyPercent:
// principal * (apy/100) * (lockDays/365). The result is not rounded.
func Estimate(principal, apyPercent decimal.Decimal, lockDays int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: principal must be positive, got %s", store.ErrInvalidArgument, principal.String())
	}
	if apyPercent.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: apy cannot be negative, got %s", store.ErrInvalidArgument, apyPercent.String())
	}
	if lockDays <= 0 {
		return decimal.Zero, fmt.Errorf("%w: lock days must be positive, got %d", store.ErrInvalidArgument, lockDays)
	}

	// Multiply before dividing so the only inexact step is the final division.
	return principal.Mul(apyPercent).Mul(decimal.NewFromInt(int64(lockDays))).Div(yearPercent), nil
}

// Round rounds an amount to cents for display.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
