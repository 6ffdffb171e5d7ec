package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
	"github.com/wordwings/wordwings/internal/remote"
)

// DefaultRemoteTimeout bounds the synchronous attempt against the backend.
// Expiry is a connectivity failure and takes the optimistic path.
const DefaultRemoteTimeout = 5 * time.Second

// Service is the offline progress layer. Every mutating operation succeeds
// immediately from the caller's point of view: the remote store is tried
// first, and on a connectivity failure the result is synthesized locally
// and the mutation queued for replay.
type Service struct {
	remote  RemoteClient
	store   Store
	queue   Queue
	logger  *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewService wires the offline progress layer. All collaborators are
// injected; there are no package-level instances.
func NewService(rc RemoteClient, store Store, queue Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		remote:  rc,
		store:   store,
		queue:   queue,
		logger:  logger,
		timeout: DefaultRemoteTimeout,
		now:     time.Now,
	}
}

// WithTimeout overrides the bounded timeout on the synchronous remote attempt.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// StartContent marks a content unit as started, creating the progress
// record lazily on first interaction.
func (s *Service) StartContent(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	if err := validateIDs(learnerID, contentID); err != nil {
		return nil, err
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.remote.StartContent(rctx, learnerID, contentID)
	if err == nil {
		return rec, s.applyAuthoritative(rec)
	}
	if !remote.IsConnectivity(err) {
		return nil, err
	}

	return s.optimistic(learnerID, contentID, err, &domain.PendingMutation{
		Kind:      domain.MutationStart,
		LearnerID: learnerID,
		ContentID: contentID,
	}, func(existing *domain.ProgressRecord) *domain.ProgressRecord {
		return synthesizeStart(existing, learnerID, contentID, s.now())
	})
}

// RecordStep reports one completed step.
func (s *Service) RecordStep(ctx context.Context, learnerID, contentID string, params domain.StepParams) (*domain.ProgressRecord, error) {
	if err := validateIDs(learnerID, contentID); err != nil {
		return nil, err
	}
	if params.StepID == "" {
		return nil, fmt.Errorf("%w: step id is required", domain.ErrInvalidInput)
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.remote.RecordStep(rctx, learnerID, contentID, params)
	if err == nil {
		return rec, s.applyAuthoritative(rec)
	}
	if !remote.IsConnectivity(err) {
		return nil, err
	}

	p := params
	return s.optimistic(learnerID, contentID, err, &domain.PendingMutation{
		Kind:      domain.MutationStep,
		LearnerID: learnerID,
		ContentID: contentID,
		Step:      &p,
	}, func(existing *domain.ProgressRecord) *domain.ProgressRecord {
		return synthesizeStep(existing, learnerID, contentID, params, s.now())
	})
}

// CompleteContent marks a content unit as completed.
func (s *Service) CompleteContent(ctx context.Context, learnerID, contentID string, params domain.CompleteParams) (*domain.ProgressRecord, error) {
	if err := validateIDs(learnerID, contentID); err != nil {
		return nil, err
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err := s.remote.CompleteContent(rctx, learnerID, contentID, params)
	if err == nil {
		return rec, s.applyAuthoritative(rec)
	}
	if !remote.IsConnectivity(err) {
		return nil, err
	}

	p := params
	return s.optimistic(learnerID, contentID, err, &domain.PendingMutation{
		Kind:      domain.MutationComplete,
		LearnerID: learnerID,
		ContentID: contentID,
		Complete:  &p,
	}, func(existing *domain.ProgressRecord) *domain.ProgressRecord {
		return synthesizeComplete(existing, learnerID, contentID, params, s.now())
	})
}

// GetProgress reads local-first: only a cache miss falls through to the
// backend, and a remote not-found means "no progress yet", not an error.
func (s *Service) GetProgress(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	if err := validateIDs(learnerID, contentID); err != nil {
		return nil, err
	}

	rec, err := s.store.Get(learnerID, contentID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, err
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rec, err = s.remote.GetProgress(rctx, learnerID, contentID)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.store.Save(rec); err != nil {
		return nil, fmt.Errorf("cache fetched record: %w", err)
	}
	return rec, nil
}

// applyAuthoritative stores a server response locally. The server's view
// overwrites anything synthesized earlier.
func (s *Service) applyAuthoritative(rec *domain.ProgressRecord) error {
	if err := s.store.Save(rec); err != nil {
		return fmt.Errorf("apply server record: %w", err)
	}
	return nil
}

// optimistic runs the offline write path: synthesize a local result, store
// it, queue the mutation for replay, and hand the synthesized record back.
func (s *Service) optimistic(learnerID, contentID string, cause error, m *domain.PendingMutation,
	synth func(existing *domain.ProgressRecord) *domain.ProgressRecord) (*domain.ProgressRecord, error) {

	existing, err := s.store.Get(learnerID, contentID)
	if err != nil && !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, err
	}

	rec := synth(existing)
	if err := s.store.Save(rec); err != nil {
		return nil, fmt.Errorf("store optimistic record: %w", err)
	}
	if err := s.queue.Append(m); err != nil {
		return nil, fmt.Errorf("enqueue mutation: %w", err)
	}

	s.logger.Info("queued offline mutation",
		"kind", m.Kind,
		"learner_id", learnerID,
		"content_id", contentID,
		"cause", cause)

	return rec, nil
}

func validateIDs(learnerID, contentID string) error {
	if learnerID == "" {
		return fmt.Errorf("%w: learner id is required", domain.ErrInvalidInput)
	}
	if contentID == "" {
		return fmt.Errorf("%w: content id is required", domain.ErrInvalidInput)
	}
	return nil
}
