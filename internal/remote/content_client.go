package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wordwings/wordwings/internal/domain"
)

// ContentClient talks to the backend content-listing endpoint.
type ContentClient struct {
	c *Client
}

// NewContentClient creates a content client on the shared API client.
func NewContentClient(c *Client) *ContentClient {
	return &ContentClient{c: c}
}

// ListContent fetches the content catalog, filtered server-side.
func (cc *ContentClient) ListContent(ctx context.Context, filters domain.ContentFilters) ([]domain.Content, error) {
	query := url.Values{}
	if filters.Kind != "" {
		query.Set("kind", filters.Kind)
	}
	if filters.Tier != 0 {
		query.Set("tier", strconv.Itoa(filters.Tier))
	}
	if filters.Tag != "" {
		query.Set("tag", filters.Tag)
	}

	var items []domain.Content
	if err := cc.c.doJSON(ctx, "content.list", http.MethodGet, "/api/v1/content", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
