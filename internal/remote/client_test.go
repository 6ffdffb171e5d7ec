package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

func testRecord() domain.ProgressRecord {
	return domain.ProgressRecord{
		ID:        "story-1:kid-1",
		LearnerID: "kid-1",
		ContentID: "story-1",
		Status:    domain.StatusInProgress,
		StartedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestProgressClient_StartContent(t *testing.T) {
	var gotPath string
	var gotBody startRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(testRecord())
	}))
	defer srv.Close()

	pc := NewProgressClient(NewClientWithHTTP(srv.URL, srv.Client()))
	rec, err := pc.StartContent(context.Background(), "kid-1", "story-1")
	if err != nil {
		t.Fatalf("StartContent() error = %v", err)
	}

	if gotPath != "/api/v1/progress/start" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.LearnerID != "kid-1" || gotBody.ContentID != "story-1" {
		t.Errorf("request body = %+v", gotBody)
	}
	if rec.ID != "story-1:kid-1" || rec.Status != domain.StatusInProgress {
		t.Errorf("record = %+v", rec)
	}
}

func TestProgressClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		pc := NewProgressClient(NewClientWithHTTP(srv.URL, srv.Client()))
		_, err := pc.CompleteContent(context.Background(), "kid-1", "story-1", domain.CompleteParams{})
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: want error", tt.status)
		}
		kind, ok := KindOf(err)
		if !ok || kind != tt.want {
			t.Errorf("status %d: kind = %v (classified=%v); want %v", tt.status, kind, ok, tt.want)
		}
	}
}

func TestProgressClient_UnreachableServerIsConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	srv.Close() // refuse all connections

	pc := NewProgressClient(NewClient(srv.URL))
	_, err := pc.GetProgress(context.Background(), "kid-1", "story-1")
	if !IsConnectivity(err) {
		t.Errorf("error = %v; want connectivity classification", err)
	}
}

func TestProgressClient_TimeoutIsConnectivity(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() { close(block); srv.Close() }()

	pc := NewProgressClient(NewClientWithHTTP(srv.URL, srv.Client()))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := pc.StartContent(ctx, "kid-1", "story-1")
	if !IsConnectivity(err) {
		t.Errorf("error = %v; want connectivity classification", err)
	}
}

func TestContentClient_ListContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/content" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("kind"); got != "story" {
			t.Errorf("kind query = %q; want story", got)
		}
		if got := r.URL.Query().Get("tier"); got != "2" {
			t.Errorf("tier query = %q; want 2", got)
		}
		json.NewEncoder(w).Encode([]domain.Content{
			{ID: "story-1", Title: "The Red Hen", Kind: "story", Tier: 2},
		})
	}))
	defer srv.Close()

	cc := NewContentClient(NewClientWithHTTP(srv.URL, srv.Client()))
	items, err := cc.ListContent(context.Background(), domain.ContentFilters{Kind: "story", Tier: 2})
	if err != nil {
		t.Fatalf("ListContent() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "story-1" {
		t.Errorf("items = %+v", items)
	}
}
