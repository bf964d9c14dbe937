package service

import (
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"
)

// ComputeStats folds an attempt history into its aggregate. attempts
// must be ordered most recent first, as QueryAttempts returns them.
// Stats are never stored; every read folds the history again, so the
// aggregate can never drift from the attempts it summarizes.
func ComputeStats(attempts []storage.AttemptRecord) core.AttemptStats {
	var stats core.AttemptStats

	stats.TotalAttempts = len(attempts)
	if len(attempts) == 0 {
		return stats
	}

	for _, a := range attempts {
		if a.WasCorrect {
			stats.CorrectAttempts++
		}
	}
	stats.SuccessRate = float64(stats.CorrectAttempts) / float64(len(attempts))

	// attempts[0] is the newest, the last element the oldest
	stats.FirstAttemptCorrect = attempts[len(attempts)-1].WasCorrect
	stats.LastAttemptCorrect = attempts[0].WasCorrect

	last := attempts[0].AttemptedAt
	stats.LastAttemptAt = &last

	for _, a := range attempts {
		if !a.WasCorrect {
			break
		}
		stats.CurrentStreak++
	}

	return stats
}
