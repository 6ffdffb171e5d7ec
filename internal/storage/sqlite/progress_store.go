package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// ProgressStore persists progress records in SQLite. Step results are
// stored as a JSON column; the table is keyed by the stable record id.
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a new SQLite-backed progress store.
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// Save persists a record (insert or update).
func (s *ProgressStore) Save(rec *domain.ProgressRecord) error {
	if rec.ID == "" {
		rec.ID = domain.RecordID(rec.ContentID, rec.LearnerID)
	}
	stepResults, err := json.Marshal(rec.StepResults)
	if err != nil {
		return fmt.Errorf("marshal step_results: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO progress_records (id, learner_id, content_id, status,
			current_step_index, step_results, overall_score,
			total_time_seconds, started_at, completed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			current_step_index=excluded.current_step_index,
			step_results=excluded.step_results,
			overall_score=excluded.overall_score,
			total_time_seconds=excluded.total_time_seconds,
			started_at=excluded.started_at,
			completed_at=excluded.completed_at,
			updated_at=excluded.updated_at`,
		rec.ID, rec.LearnerID, rec.ContentID, string(rec.Status),
		rec.CurrentStepIndex, string(stepResults), rec.OverallScore,
		rec.TotalTimeSeconds, rec.StartedAt, rec.CompletedAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert progress record: %w", err)
	}
	return nil
}

// Get retrieves the record for one learner/content pair.
func (s *ProgressStore) Get(learnerID, contentID string) (*domain.ProgressRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, learner_id, content_id, status, current_step_index,
			step_results, overall_score, total_time_seconds,
			started_at, completed_at
		FROM progress_records WHERE id = ?`,
		domain.RecordID(contentID, learnerID))

	return scanProgressRecord(row)
}

// ForLearner returns all records for a learner, most recently started first.
func (s *ProgressStore) ForLearner(learnerID string) ([]*domain.ProgressRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, learner_id, content_id, status, current_step_index,
			step_results, overall_score, total_time_seconds,
			started_at, completed_at
		FROM progress_records WHERE learner_id = ?
		ORDER BY started_at DESC`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress records: %w", err)
	}
	defer rows.Close()

	var recs []*domain.ProgressRecord
	for rows.Next() {
		rec, err := scanProgressRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Reset removes all records for a learner. Used only by an explicit
// learner/profile reset.
func (s *ProgressStore) Reset(learnerID string) error {
	if _, err := s.db.Exec("DELETE FROM progress_records WHERE learner_id = ?", learnerID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgressRecord(row rowScanner) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	var status, stepResultsJSON string
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	err := row.Scan(
		&rec.ID, &rec.LearnerID, &rec.ContentID, &status,
		&rec.CurrentStepIndex, &stepResultsJSON, &rec.OverallScore,
		&rec.TotalTimeSeconds, &startedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("scan progress record: %w", err)
	}

	rec.Status = domain.Status(status)
	if startedAt.Valid {
		rec.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		t := completedAt.Time
		rec.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(stepResultsJSON), &rec.StepResults); err != nil {
		return nil, fmt.Errorf("unmarshal step_results: %w", err)
	}

	return &rec, nil
}
