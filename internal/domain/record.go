package domain

import "time"

// Status tracks where a learner is within one content unit.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// StepResult captures the outcome of a single step inside a content unit.
type StepResult struct {
	StepID         string    `json:"step_id"`
	Completed      bool      `json:"completed"`
	Score          int       `json:"score"`
	Attempts       int       `json:"attempts"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ProgressRecord is one learner's state for one content unit.
//
// Invariants: CompletedAt is set if and only if Status is StatusCompleted,
// and CurrentStepIndex never exceeds the content's step count.
type ProgressRecord struct {
	ID               string       `json:"id"`
	LearnerID        string       `json:"learner_id"`
	ContentID        string       `json:"content_id"`
	Status           Status       `json:"status"`
	CurrentStepIndex int          `json:"current_step_index"`
	StepResults      []StepResult `json:"step_results"`
	OverallScore     *int         `json:"overall_score,omitempty"`
	TotalTimeSeconds int          `json:"total_time_seconds"`
	StartedAt        time.Time    `json:"started_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}

// RecordID builds the stable key for a progress record.
func RecordID(contentID, learnerID string) string {
	return contentID + ":" + learnerID
}

// StepOutcome returns the recorded result for a step, if any.
func (r *ProgressRecord) StepOutcome(stepID string) (StepResult, bool) {
	for _, sr := range r.StepResults {
		if sr.StepID == stepID {
			return sr, true
		}
	}
	return StepResult{}, false
}
