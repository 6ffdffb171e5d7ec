package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/wordwings/wordwings/internal/domain"
	"github.com/wordwings/wordwings/internal/remote"
)

// Report summarizes one drain pass.
type Report struct {
	Applied   int
	Dropped   int
	Remaining int
}

// Syncer replays the pending-mutation log against the backend. Sync may be
// called on every reconnect or app foreground; a mutex serializes passes so
// back-to-back calls never double-apply an entry.
type Syncer struct {
	remote  RemoteClient
	store   Store
	queue   Queue
	logger  *slog.Logger
	mu      sync.Mutex
	dropped atomic.Int64
}

// NewSyncer wires the queue drain.
func NewSyncer(rc RemoteClient, store Store, queue Queue, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{remote: rc, store: store, queue: queue, logger: logger}
}

// Sync drains the queue head to tail, one entry at a time.
//
// Success removes the entry and stores the server's authoritative record.
// A connectivity failure stops the pass; the failed entry and everything
// after it stay queued, in order, for the next call. Any other failure
// means the server has rejected the operation for a reason replay can't
// fix: the entry is dropped, counted, and the pass continues.
func (s *Syncer) Sync(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report Report

	pending, err := s.queue.All()
	if err != nil {
		return report, fmt.Errorf("read queue: %w", err)
	}
	report.Remaining = len(pending)

	for _, m := range pending {
		if ctx.Err() != nil {
			// Abandoned mid-drain; already-confirmed entries are gone,
			// the rest replay next time.
			return report, ctx.Err()
		}

		rec, err := s.replay(ctx, m)
		if err == nil {
			if err := s.store.Save(rec); err != nil {
				return report, fmt.Errorf("apply replayed record: %w", err)
			}
			if err := s.queue.Remove(m.Seq); err != nil {
				return report, fmt.Errorf("remove confirmed mutation: %w", err)
			}
			report.Applied++
			report.Remaining--
			continue
		}

		if remote.IsRetryable(err) {
			s.logger.Debug("sync paused, backend unreachable",
				"pending", report.Remaining, "error", err)
			return report, nil
		}

		// The original caller already got its optimistic result, so the
		// drop is silent from its point of view. Keep it observable here.
		s.dropped.Add(1)
		report.Dropped++
		report.Remaining--
		s.logger.Warn("dropping unretryable queued mutation",
			"kind", m.Kind,
			"learner_id", m.LearnerID,
			"content_id", m.ContentID,
			"seq", m.Seq,
			"error", err)
		if err := s.queue.Remove(m.Seq); err != nil {
			return report, fmt.Errorf("remove rejected mutation: %w", err)
		}
	}

	return report, nil
}

// Pending returns how many mutations await replay ("N changes pending").
func (s *Syncer) Pending() (int, error) {
	return s.queue.Count()
}

// Dropped returns the total number of mutations dropped as unretryable
// since this syncer was created.
func (s *Syncer) Dropped() int64 {
	return s.dropped.Load()
}

func (s *Syncer) replay(ctx context.Context, m *domain.PendingMutation) (*domain.ProgressRecord, error) {
	switch m.Kind {
	case domain.MutationStart:
		return s.remote.StartContent(ctx, m.LearnerID, m.ContentID)
	case domain.MutationStep:
		if m.Step == nil {
			return nil, fmt.Errorf("%w: step mutation without params", domain.ErrInvalidInput)
		}
		return s.remote.RecordStep(ctx, m.LearnerID, m.ContentID, *m.Step)
	case domain.MutationComplete:
		if m.Complete == nil {
			return nil, fmt.Errorf("%w: complete mutation without params", domain.ErrInvalidInput)
		}
		return s.remote.CompleteContent(ctx, m.LearnerID, m.ContentID, *m.Complete)
	default:
		return nil, fmt.Errorf("%w: unknown mutation kind %q", domain.ErrInvalidInput, m.Kind)
	}
}
