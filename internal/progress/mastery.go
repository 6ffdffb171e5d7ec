package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/wordwings/wordwings/internal/difficulty"
	"github.com/wordwings/wordwings/internal/domain"
)

// MasteryTracker folds answer outcomes into the long-lived per-item
// statistics. The counters live only on the device.
type MasteryTracker struct {
	store MasteryStore
	cfg   difficulty.MasteryConfig
	now   func() time.Time
}

// NewMasteryTracker wires mastery tracking over the given store.
func NewMasteryTracker(store MasteryStore, cfg difficulty.MasteryConfig) *MasteryTracker {
	return &MasteryTracker{store: store, cfg: cfg, now: time.Now}
}

// RecordAttempt folds one attempt into the item's record and persists it.
func (t *MasteryTracker) RecordAttempt(learnerID, itemID string, success bool) (domain.WordMasteryRecord, error) {
	if learnerID == "" || itemID == "" {
		return domain.WordMasteryRecord{}, fmt.Errorf("%w: learner and item ids are required", domain.ErrInvalidInput)
	}

	rec, err := t.store.Get(learnerID, itemID)
	if err != nil {
		if !errors.Is(err, domain.ErrMasteryNotFound) {
			return domain.WordMasteryRecord{}, err
		}
		rec = domain.WordMasteryRecord{LearnerID: learnerID, ItemID: itemID}
	}

	rec = difficulty.RecordOutcome(rec, success, t.now())
	if err := t.store.Save(rec); err != nil {
		return domain.WordMasteryRecord{}, err
	}
	return rec, nil
}

// Mastered reports whether the learner has mastered the item.
func (t *MasteryTracker) Mastered(learnerID, itemID string) (bool, error) {
	rec, err := t.store.Get(learnerID, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrMasteryNotFound) {
			return false, nil
		}
		return false, err
	}
	return difficulty.Mastered(rec, t.cfg), nil
}

// MasteredItems returns the ids of every item the learner has mastered.
func (t *MasteryTracker) MasteredItems(learnerID string) ([]string, error) {
	recs, err := t.store.ForLearner(learnerID)
	if err != nil {
		return nil, err
	}
	var items []string
	for _, rec := range recs {
		if difficulty.Mastered(rec, t.cfg) {
			items = append(items, rec.ItemID)
		}
	}
	return items, nil
}
