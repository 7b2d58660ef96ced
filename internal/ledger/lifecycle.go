package ledger

import (
	"time"

	"staking-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// DerivedStatus is unlocked from EndDate onwards and active before it.
func DerivedStatus(stake models.Stake, now time.Time) models.StakeStatus {
	if !now.Before(stake.EndDate) {
		return models.StakeStatusUnlocked
	}
	return models.StakeStatusActive
}

// Progress returns the elapsed share of the lock period as a percentage in [0, 100].
func Progress(stake models.Stake, now time.Time) decimal.Decimal {
	total := stake.EndDate.Sub(stake.StartDate)
	if total <= 0 {
		if now.Before(stake.EndDate) {
			return decimal.Zero
		}
		return hundred
	}

	elapsed := now.Sub(stake.StartDate)
	if elapsed <= 0 {
		return decimal.Zero
	}
	if elapsed >= total {
		return hundred
	}
	return decimal.NewFromInt(int64(elapsed)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
}

// DaysRemaining returns the whole days left until EndDate, rounded up, never negative.
func DaysRemaining(stake models.Stake, now time.Time) int {
	left := stake.EndDate.Sub(now)
	if left <= 0 {
		return 0
	}
	days := int(left / day)
	if left%day != 0 {
		days++
	}
	return days
}

// View annotates a stake with its derived fields at now.
func View(stake models.Stake, now time.Time) models.StakeView {
	return models.StakeView{
		Stake:         stake,
		Status:        DerivedStatus(stake, now),
		Progress:      Progress(stake, now),
		DaysRemaining: DaysRemaining(stake, now),
	}
}
