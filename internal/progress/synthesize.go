package progress

import (
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// Local synthesis of progress records for the optimistic-write path.
//
// These functions duplicate server-side business logic on purpose: when the
// backend is unreachable the caller still needs a plausible record right
// away. They are kept together here so the duplication stays visible. The
// server's eventual response is always authoritative and overwrites
// whatever was synthesized once the queued mutation replays.

// synthesizeStart builds the record for a start that could not reach the
// server. An existing local record wins: starting twice is a no-op.
func synthesizeStart(existing *domain.ProgressRecord, learnerID, contentID string, now time.Time) *domain.ProgressRecord {
	if existing != nil {
		return existing
	}
	return &domain.ProgressRecord{
		ID:          domain.RecordID(contentID, learnerID),
		LearnerID:   learnerID,
		ContentID:   contentID,
		Status:      domain.StatusInProgress,
		StepResults: []domain.StepResult{},
		StartedAt:   now,
	}
}

// synthesizeStep folds a step outcome into the record, starting it first
// when no record exists yet.
func synthesizeStep(existing *domain.ProgressRecord, learnerID, contentID string, params domain.StepParams, now time.Time) *domain.ProgressRecord {
	rec := synthesizeStart(existing, learnerID, contentID, now)

	result := domain.StepResult{
		StepID:      params.StepID,
		Completed:   params.Completed,
		CompletedAt: now,
	}
	if params.Score != nil {
		result.Score = *params.Score
	}
	if params.Attempts != nil {
		result.Attempts = *params.Attempts
	}
	if params.ElapsedSeconds != nil {
		result.ElapsedSeconds = *params.ElapsedSeconds
		rec.TotalTimeSeconds += *params.ElapsedSeconds
	}

	replaced := false
	for i, sr := range rec.StepResults {
		if sr.StepID == params.StepID {
			rec.StepResults[i] = result
			replaced = true
			break
		}
	}
	if !replaced {
		rec.StepResults = append(rec.StepResults, result)
	}

	if params.Completed && rec.Status != domain.StatusCompleted {
		rec.Status = domain.StatusInProgress
		rec.CurrentStepIndex++
	}
	return rec
}

// synthesizeComplete stamps the record completed, preserving any previously
// known fields.
func synthesizeComplete(existing *domain.ProgressRecord, learnerID, contentID string, params domain.CompleteParams, now time.Time) *domain.ProgressRecord {
	rec := synthesizeStart(existing, learnerID, contentID, now)

	rec.Status = domain.StatusCompleted
	completedAt := now
	rec.CompletedAt = &completedAt
	if params.Score != nil {
		rec.OverallScore = params.Score
	}
	if params.ElapsedSeconds != nil {
		rec.TotalTimeSeconds += *params.ElapsedSeconds
	}
	return rec
}
