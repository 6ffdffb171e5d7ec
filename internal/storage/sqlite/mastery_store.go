package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wordwings/wordwings/internal/domain"
)

// MasteryStore persists per-item mastery counters.
type MasteryStore struct {
	db *DB
}

// NewMasteryStore creates a new SQLite-backed mastery store.
func NewMasteryStore(db *DB) *MasteryStore {
	return &MasteryStore{db: db}
}

// Save persists a mastery record (insert or update).
func (s *MasteryStore) Save(rec domain.WordMasteryRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO word_mastery (learner_id, item_id, attempts, successes, last_attempted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(learner_id, item_id) DO UPDATE SET
			attempts=excluded.attempts,
			successes=excluded.successes,
			last_attempted_at=excluded.last_attempted_at`,
		rec.LearnerID, rec.ItemID, rec.Attempts, rec.Successes, rec.LastAttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert mastery record: %w", err)
	}
	return nil
}

// Get retrieves the mastery record for one learner/item pair.
func (s *MasteryStore) Get(learnerID, itemID string) (domain.WordMasteryRecord, error) {
	var rec domain.WordMasteryRecord
	var lastAttempted sql.NullTime
	err := s.db.QueryRow(`
		SELECT learner_id, item_id, attempts, successes, last_attempted_at
		FROM word_mastery WHERE learner_id = ? AND item_id = ?`,
		learnerID, itemID,
	).Scan(&rec.LearnerID, &rec.ItemID, &rec.Attempts, &rec.Successes, &lastAttempted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WordMasteryRecord{}, domain.ErrMasteryNotFound
		}
		return domain.WordMasteryRecord{}, fmt.Errorf("scan mastery record: %w", err)
	}
	if lastAttempted.Valid {
		rec.LastAttemptedAt = lastAttempted.Time
	}
	return rec, nil
}

// ForLearner returns all mastery records for a learner.
func (s *MasteryStore) ForLearner(learnerID string) ([]domain.WordMasteryRecord, error) {
	rows, err := s.db.Query(`
		SELECT learner_id, item_id, attempts, successes, last_attempted_at
		FROM word_mastery WHERE learner_id = ?
		ORDER BY item_id`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list mastery records: %w", err)
	}
	defer rows.Close()

	var recs []domain.WordMasteryRecord
	for rows.Next() {
		var rec domain.WordMasteryRecord
		var lastAttempted sql.NullTime
		if err := rows.Scan(&rec.LearnerID, &rec.ItemID, &rec.Attempts, &rec.Successes, &lastAttempted); err != nil {
			return nil, fmt.Errorf("scan mastery record: %w", err)
		}
		if lastAttempted.Valid {
			rec.LastAttemptedAt = lastAttempted.Time
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Reset removes all mastery records for a learner.
func (s *MasteryStore) Reset(learnerID string) error {
	if _, err := s.db.Exec("DELETE FROM word_mastery WHERE learner_id = ?", learnerID); err != nil {
		return fmt.Errorf("reset mastery: %w", err)
	}
	return nil
}
