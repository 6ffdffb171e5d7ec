package difficulty

import (
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// MasteryConfig holds the thresholds for the per-item mastery rule,
// separate from the tier state machine.
type MasteryConfig struct {
	MinAttempts int     `yaml:"min_attempts"`
	Rate        float64 `yaml:"rate"`
}

// DefaultMasteryConfig returns the stock mastery thresholds.
func DefaultMasteryConfig() MasteryConfig {
	return MasteryConfig{
		MinAttempts: 3,
		Rate:        0.8,
	}
}

// Mastered reports whether an item counts as mastered: enough attempts and
// a high enough success rate. Derived only, never stored.
func Mastered(rec domain.WordMasteryRecord, cfg MasteryConfig) bool {
	if cfg.MinAttempts <= 0 {
		cfg.MinAttempts = DefaultMasteryConfig().MinAttempts
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultMasteryConfig().Rate
	}
	return rec.Attempts >= cfg.MinAttempts && rec.SuccessRate() >= cfg.Rate
}

// RecordOutcome folds one attempt into a mastery record.
func RecordOutcome(rec domain.WordMasteryRecord, success bool, at time.Time) domain.WordMasteryRecord {
	rec.Attempts++
	if success {
		rec.Successes++
	}
	rec.LastAttemptedAt = at
	return rec
}
