package domain

import (
	"time"

	"github.com/google/uuid"
)

// MutationKind identifies which progress operation a queued mutation replays.
type MutationKind string

const (
	MutationStart    MutationKind = "start"
	MutationStep     MutationKind = "record_step"
	MutationComplete MutationKind = "complete"
)

// StepParams carries the arguments of a recordStep call.
type StepParams struct {
	StepID         string `json:"step_id"`
	Completed      bool   `json:"completed"`
	Score          *int   `json:"score,omitempty"`
	Attempts       *int   `json:"attempts,omitempty"`
	ElapsedSeconds *int   `json:"elapsed_seconds,omitempty"`
}

// CompleteParams carries the arguments of a completeContent call.
type CompleteParams struct {
	Score          *int `json:"score,omitempty"`
	ElapsedSeconds *int `json:"elapsed_seconds,omitempty"`
}

// PendingMutation is one not-yet-acknowledged write in the sync queue.
// Exactly one of Step/Complete is set, matching Kind. Seq is assigned by
// the queue store and preserves enqueue order across restarts.
type PendingMutation struct {
	ID         uuid.UUID       `json:"id"`
	Seq        int64           `json:"seq"`
	Kind       MutationKind    `json:"kind"`
	LearnerID  string          `json:"learner_id"`
	ContentID  string          `json:"content_id"`
	Step       *StepParams     `json:"step,omitempty"`
	Complete   *CompleteParams `json:"complete,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}
