package remote

import (
	"context"
	"net/http"

	"github.com/wordwings/wordwings/internal/domain"
)

// ProgressClient talks to the backend progress endpoints. All endpoints are
// idempotent upserts on the server side: replaying a call with identical
// arguments returns success, not conflict, which is what makes at-least-once
// queue replay safe.
type ProgressClient struct {
	c *Client
}

// NewProgressClient creates a progress client on the shared API client.
func NewProgressClient(c *Client) *ProgressClient {
	return &ProgressClient{c: c}
}

type startRequest struct {
	LearnerID string `json:"learner_id"`
	ContentID string `json:"content_id"`
}

type stepRequest struct {
	LearnerID      string `json:"learner_id"`
	ContentID      string `json:"content_id"`
	StepID         string `json:"step_id"`
	Completed      bool   `json:"completed"`
	Score          *int   `json:"score,omitempty"`
	Attempts       *int   `json:"attempts,omitempty"`
	ElapsedSeconds *int   `json:"elapsed_seconds,omitempty"`
}

type completeRequest struct {
	LearnerID      string `json:"learner_id"`
	ContentID      string `json:"content_id"`
	Score          *int   `json:"score,omitempty"`
	ElapsedSeconds *int   `json:"elapsed_seconds,omitempty"`
}

// StartContent marks a content unit as started and returns the server's record.
func (p *ProgressClient) StartContent(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	err := p.c.doJSON(ctx, "progress.start", http.MethodPost, "/api/v1/progress/start", nil,
		startRequest{LearnerID: learnerID, ContentID: contentID}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordStep reports one step outcome and returns the updated record.
func (p *ProgressClient) RecordStep(ctx context.Context, learnerID, contentID string, params domain.StepParams) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	err := p.c.doJSON(ctx, "progress.step", http.MethodPost, "/api/v1/progress/step", nil,
		stepRequest{
			LearnerID:      learnerID,
			ContentID:      contentID,
			StepID:         params.StepID,
			Completed:      params.Completed,
			Score:          params.Score,
			Attempts:       params.Attempts,
			ElapsedSeconds: params.ElapsedSeconds,
		}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CompleteContent marks a content unit as completed and returns the record.
func (p *ProgressClient) CompleteContent(ctx context.Context, learnerID, contentID string, params domain.CompleteParams) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	err := p.c.doJSON(ctx, "progress.complete", http.MethodPost, "/api/v1/progress/complete", nil,
		completeRequest{
			LearnerID:      learnerID,
			ContentID:      contentID,
			Score:          params.Score,
			ElapsedSeconds: params.ElapsedSeconds,
		}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetProgress fetches the record for one learner/content pair. A 404 comes
// back as a KindNotFound error; callers treat it as "no progress yet".
func (p *ProgressClient) GetProgress(ctx context.Context, learnerID, contentID string) (*domain.ProgressRecord, error) {
	var rec domain.ProgressRecord
	path := "/api/v1/progress/" + learnerID + "/" + contentID
	if err := p.c.doJSON(ctx, "progress.get", http.MethodGet, path, nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
