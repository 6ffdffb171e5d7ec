package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wordwings/wordwings/internal/domain"
)

// QueueStore persists the ordered log of pending mutations. The seq column
// is the replay order: mutations for the same record are never reordered
// relative to each other because everything shares one monotonic sequence.
type QueueStore struct {
	db *DB
}

// NewQueueStore creates a new SQLite-backed queue store.
func NewQueueStore(db *DB) *QueueStore {
	return &QueueStore{db: db}
}

type mutationPayload struct {
	Step     *domain.StepParams     `json:"step,omitempty"`
	Complete *domain.CompleteParams `json:"complete,omitempty"`
}

// Append adds a mutation at the tail of the log, assigning its id and seq.
func (s *QueueStore) Append(m *domain.PendingMutation) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.EnqueuedAt.IsZero() {
		m.EnqueuedAt = time.Now()
	}

	payload, err := json.Marshal(mutationPayload{Step: m.Step, Complete: m.Complete})
	if err != nil {
		return fmt.Errorf("marshal mutation payload: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO pending_mutations (id, kind, learner_id, content_id, payload, enqueued_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID.String(), string(m.Kind), m.LearnerID, m.ContentID, string(payload), m.EnqueuedAt,
	)
	if err != nil {
		return fmt.Errorf("append mutation: %w", err)
	}
	m.Seq, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("mutation seq: %w", err)
	}
	return nil
}

// All returns every pending mutation in enqueue order.
func (s *QueueStore) All() ([]*domain.PendingMutation, error) {
	rows, err := s.db.Query(`
		SELECT seq, id, kind, learner_id, content_id, payload, enqueued_at
		FROM pending_mutations ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list mutations: %w", err)
	}
	defer rows.Close()

	var muts []*domain.PendingMutation
	for rows.Next() {
		var m domain.PendingMutation
		var id, kind, payloadJSON string
		if err := rows.Scan(&m.Seq, &id, &kind, &m.LearnerID, &m.ContentID, &payloadJSON, &m.EnqueuedAt); err != nil {
			return nil, fmt.Errorf("scan mutation: %w", err)
		}
		m.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse mutation id: %w", err)
		}
		m.Kind = domain.MutationKind(kind)

		var payload mutationPayload
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			return nil, fmt.Errorf("unmarshal mutation payload: %w", err)
		}
		m.Step = payload.Step
		m.Complete = payload.Complete

		muts = append(muts, &m)
	}
	return muts, rows.Err()
}

// Remove deletes a confirmed or permanently-rejected mutation by seq.
// Removing an already-removed entry is a no-op, which keeps back-to-back
// drains idempotent.
func (s *QueueStore) Remove(seq int64) error {
	if _, err := s.db.Exec("DELETE FROM pending_mutations WHERE seq = ?", seq); err != nil {
		return fmt.Errorf("remove mutation: %w", err)
	}
	return nil
}

// Count returns the number of pending mutations.
func (s *QueueStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pending_mutations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count mutations: %w", err)
	}
	return n, nil
}
