package progress

import (
	"sync"
	"testing"

	"github.com/wordwings/wordwings/internal/difficulty"
	"github.com/wordwings/wordwings/internal/domain"
)

type memMasteryStore struct {
	mu   sync.Mutex
	recs map[string]domain.WordMasteryRecord
}

func newMemMasteryStore() *memMasteryStore {
	return &memMasteryStore{recs: make(map[string]domain.WordMasteryRecord)}
}

func (s *memMasteryStore) key(learnerID, itemID string) string { return learnerID + "/" + itemID }

func (s *memMasteryStore) Save(rec domain.WordMasteryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[s.key(rec.LearnerID, rec.ItemID)] = rec
	return nil
}

func (s *memMasteryStore) Get(learnerID, itemID string) (domain.WordMasteryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[s.key(learnerID, itemID)]
	if !ok {
		return domain.WordMasteryRecord{}, domain.ErrMasteryNotFound
	}
	return rec, nil
}

func (s *memMasteryStore) ForLearner(learnerID string) ([]domain.WordMasteryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.WordMasteryRecord
	for _, rec := range s.recs {
		if rec.LearnerID == learnerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func TestMasteryTracker_RecordAttempt(t *testing.T) {
	tracker := NewMasteryTracker(newMemMasteryStore(), difficulty.DefaultMasteryConfig())

	rec, err := tracker.RecordAttempt("kid-1", "cat", true)
	if err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}
	if rec.Attempts != 1 || rec.Successes != 1 {
		t.Errorf("record = %+v; want 1/1", rec)
	}

	rec, err = tracker.RecordAttempt("kid-1", "cat", false)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Attempts != 2 || rec.Successes != 1 {
		t.Errorf("record = %+v; want 2 attempts, 1 success", rec)
	}
}

func TestMasteryTracker_Mastered(t *testing.T) {
	tracker := NewMasteryTracker(newMemMasteryStore(), difficulty.DefaultMasteryConfig())

	// Unknown item is simply not mastered, not an error.
	mastered, err := tracker.Mastered("kid-1", "zebra")
	if err != nil {
		t.Fatal(err)
	}
	if mastered {
		t.Error("unknown item should not be mastered")
	}

	for i := 0; i < 4; i++ {
		if _, err := tracker.RecordAttempt("kid-1", "cat", true); err != nil {
			t.Fatal(err)
		}
	}

	mastered, err = tracker.Mastered("kid-1", "cat")
	if err != nil {
		t.Fatal(err)
	}
	if !mastered {
		t.Error("4/4 should be mastered")
	}

	items, err := tracker.MasteredItems("kid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0] != "cat" {
		t.Errorf("MasteredItems = %v; want [cat]", items)
	}
}

func TestMasteryTracker_EmptyIDs(t *testing.T) {
	tracker := NewMasteryTracker(newMemMasteryStore(), difficulty.DefaultMasteryConfig())
	if _, err := tracker.RecordAttempt("", "cat", true); err == nil {
		t.Error("empty learner id should be rejected")
	}
}
