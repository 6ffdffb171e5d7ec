package progress

import (
	"fmt"
	"sort"

	"github.com/wordwings/wordwings/internal/difficulty"
	"github.com/wordwings/wordwings/internal/domain"
)

// ProgressLister lists every progress record a learner has on the device.
type ProgressLister interface {
	ForLearner(learnerID string) ([]*domain.ProgressRecord, error)
}

// Overview provides aggregate statistics for one learner.
type Overview struct {
	LearnerID        string     `json:"learner_id"`
	TotalStarted     int        `json:"total_started"`
	Completed        int        `json:"completed"`
	InProgress       int        `json:"in_progress"`
	CompletionRate   float64    `json:"completion_rate"`
	AvgScore         float64    `json:"avg_score"`
	TotalTimeSeconds int        `json:"total_time_seconds"`
	ItemsPracticed   int        `json:"items_practiced"`
	ItemsMastered    int        `json:"items_mastered"`
	StruggleItems    []ItemStat `json:"struggle_items,omitempty"`
}

// ItemStat represents per-item practice statistics.
type ItemStat struct {
	ItemID      string  `json:"item_id"`
	Attempts    int     `json:"attempts"`
	SuccessRate float64 `json:"success_rate"`
}

// Analytics computes learner statistics from the device-local records.
type Analytics struct {
	progress ProgressLister
	mastery  MasteryStore
	cfg      difficulty.MasteryConfig
}

// NewAnalytics wires analytics over the local stores.
func NewAnalytics(progress ProgressLister, mastery MasteryStore, cfg difficulty.MasteryConfig) *Analytics {
	return &Analytics{progress: progress, mastery: mastery, cfg: cfg}
}

// Overview returns aggregate statistics for the learner.
func (a *Analytics) Overview(learnerID string) (*Overview, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("%w: learner id is required", domain.ErrInvalidInput)
	}

	recs, err := a.progress.ForLearner(learnerID)
	if err != nil {
		return nil, err
	}

	overview := &Overview{LearnerID: learnerID, TotalStarted: len(recs)}

	scoreSum, scored := 0, 0
	for _, rec := range recs {
		switch rec.Status {
		case domain.StatusCompleted:
			overview.Completed++
		case domain.StatusInProgress:
			overview.InProgress++
		}
		overview.TotalTimeSeconds += rec.TotalTimeSeconds
		if rec.OverallScore != nil {
			scoreSum += *rec.OverallScore
			scored++
		}
	}
	if overview.TotalStarted > 0 {
		overview.CompletionRate = float64(overview.Completed) / float64(overview.TotalStarted)
	}
	if scored > 0 {
		overview.AvgScore = float64(scoreSum) / float64(scored)
	}

	mastery, err := a.mastery.ForLearner(learnerID)
	if err != nil {
		return nil, err
	}
	overview.ItemsPracticed = len(mastery)
	for _, rec := range mastery {
		if difficulty.Mastered(rec, a.cfg) {
			overview.ItemsMastered++
		}
	}
	overview.StruggleItems = struggleItems(mastery, a.cfg, 5)

	return overview, nil
}

// struggleItems returns the n items with the lowest success rate among
// those practiced enough to judge but not yet mastered.
func struggleItems(recs []domain.WordMasteryRecord, cfg difficulty.MasteryConfig, n int) []ItemStat {
	var items []ItemStat
	for _, rec := range recs {
		if rec.Attempts < cfg.MinAttempts || difficulty.Mastered(rec, cfg) {
			continue
		}
		items = append(items, ItemStat{
			ItemID:      rec.ItemID,
			Attempts:    rec.Attempts,
			SuccessRate: rec.SuccessRate(),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].SuccessRate != items[j].SuccessRate {
			return items[i].SuccessRate < items[j].SuccessRate
		}
		return items[i].Attempts > items[j].Attempts
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}
