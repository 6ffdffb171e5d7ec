package progress

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wordwings/wordwings/internal/domain"
	"github.com/wordwings/wordwings/internal/remote"
)

// fakeRemote is a scripted backend. Each call records itself and pops the
// next scripted error (nil = success, answered with a canonical record).
type fakeRemote struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

var errOffline = remote.NewError(remote.KindConnectivity, "test", errors.New("no route to host"))

func (f *fakeRemote) next(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeRemote) canonical(learnerID, contentID string, status domain.Status) *domain.ProgressRecord {
	return &domain.ProgressRecord{
		ID:        domain.RecordID(contentID, learnerID),
		LearnerID: learnerID,
		ContentID: contentID,
		Status:    status,
		// Marker distinguishing server records from synthesized ones.
		TotalTimeSeconds: 999,
	}
}

func (f *fakeRemote) StartContent(_ context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	if err := f.next("start:" + contentID); err != nil {
		return nil, err
	}
	return f.canonical(learnerID, contentID, domain.StatusInProgress), nil
}

func (f *fakeRemote) RecordStep(_ context.Context, learnerID, contentID string, params domain.StepParams) (*domain.ProgressRecord, error) {
	if err := f.next("step:" + contentID + ":" + params.StepID); err != nil {
		return nil, err
	}
	return f.canonical(learnerID, contentID, domain.StatusInProgress), nil
}

func (f *fakeRemote) CompleteContent(_ context.Context, learnerID, contentID string, _ domain.CompleteParams) (*domain.ProgressRecord, error) {
	if err := f.next("complete:" + contentID); err != nil {
		return nil, err
	}
	return f.canonical(learnerID, contentID, domain.StatusCompleted), nil
}

func (f *fakeRemote) GetProgress(_ context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	if err := f.next("get:" + contentID); err != nil {
		return nil, err
	}
	return f.canonical(learnerID, contentID, domain.StatusInProgress), nil
}

// memStore is an in-memory progress store.
type memStore struct {
	mu   sync.Mutex
	recs map[string]*domain.ProgressRecord
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]*domain.ProgressRecord)}
}

func (s *memStore) Save(rec *domain.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = domain.RecordID(rec.ContentID, rec.LearnerID)
	}
	cp := *rec
	s.recs[rec.ID] = &cp
	return nil
}

func (s *memStore) Get(learnerID, contentID string) (*domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[domain.RecordID(contentID, learnerID)]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) ForLearner(learnerID string) ([]*domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.ProgressRecord
	for _, rec := range s.recs {
		if rec.LearnerID == learnerID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memQueue is an in-memory ordered mutation log.
type memQueue struct {
	mu   sync.Mutex
	next int64
	muts []*domain.PendingMutation
}

func newMemQueue() *memQueue {
	return &memQueue{next: 1}
}

func (q *memQueue) Append(m *domain.PendingMutation) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Seq = q.next
	q.next++
	cp := *m
	q.muts = append(q.muts, &cp)
	return nil
}

func (q *memQueue) All() ([]*domain.PendingMutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*domain.PendingMutation, len(q.muts))
	copy(out, q.muts)
	return out, nil
}

func (q *memQueue) Remove(seq int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, m := range q.muts {
		if m.Seq == seq {
			q.muts = append(q.muts[:i], q.muts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (q *memQueue) Count() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.muts), nil
}
