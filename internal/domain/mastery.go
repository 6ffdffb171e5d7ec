package domain

import "time"

// WordMasteryRecord is a long-lived per-item statistic for one learner.
// Whether the item counts as mastered is derived from these counters,
// never stored independently.
type WordMasteryRecord struct {
	LearnerID       string    `json:"learner_id"`
	ItemID          string    `json:"item_id"`
	Attempts        int       `json:"attempts"`
	Successes       int       `json:"successes"`
	LastAttemptedAt time.Time `json:"last_attempted_at"`
}

// SuccessRate returns successes/attempts, or 0 when there are no attempts.
func (r WordMasteryRecord) SuccessRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Attempts)
}
