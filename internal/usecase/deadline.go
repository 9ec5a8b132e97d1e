package usecase

import (
	"math"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// hoursRemaining reports the rounded number of hours until deadline.
// Negative means the deadline already passed.
func hoursRemaining(transactionID string, deadline *time.Time, now time.Time) (int, error) {
	if deadline == nil {
		return 0, &domain.DeadlineComputationError{
			TransactionID: transactionID,
			Reason:        "deadline not set",
		}
	}
	return int(math.Round(deadline.Sub(now).Hours())), nil
}
