package progress

import (
	"context"

	"github.com/wordwings/wordwings/internal/domain"
)

// RemoteClient is the backend progress contract the offline layer consumes.
// Implementations must return *remote.Error values so failures classify.
type RemoteClient interface {
	StartContent(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error)
	RecordStep(ctx context.Context, learnerID, contentID string, params domain.StepParams) (*domain.ProgressRecord, error)
	CompleteContent(ctx context.Context, learnerID, contentID string, params domain.CompleteParams) (*domain.ProgressRecord, error)
	GetProgress(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error)
}

// Store is the device-local progress persistence the service writes through.
type Store interface {
	Save(rec *domain.ProgressRecord) error
	Get(learnerID, contentID string) (*domain.ProgressRecord, error)
}

// Queue is the ordered pending-mutation log.
type Queue interface {
	Append(m *domain.PendingMutation) error
	All() ([]*domain.PendingMutation, error)
	Remove(seq int64) error
	Count() (int, error)
}

// MasteryStore persists per-item mastery counters.
type MasteryStore interface {
	Save(rec domain.WordMasteryRecord) error
	Get(learnerID, itemID string) (domain.WordMasteryRecord, error)
	ForLearner(learnerID string) ([]domain.WordMasteryRecord, error)
}
