package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bliic/bliic/internal/model"
)

// CreateLinkInput defines input for creating a short link.
type CreateLinkInput struct {
	Destination string     `json:"destination"`
	CustomCode  string     `json:"custom_code,omitempty"`
	Title       string     `json:"title,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// UpdateLinkInput defines the mutable fields of a link. Nil fields are
// left unchanged server-side.
type UpdateLinkInput struct {
	Destination *string    `json:"destination,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Enabled     *bool      `json:"enabled,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// linksResponse is the wire shape of a link listing.
type linksResponse struct {
	Links []model.Link `json:"links"`
}

// CreateLink creates a short link.
func (c *Client) CreateLink(ctx context.Context, in CreateLinkInput) (*model.Link, error) {
	var out model.Link
	if err := c.do(ctx, http.MethodPost, "/api/links", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLinks fetches the account's links.
func (c *Client) ListLinks(ctx context.Context) ([]model.Link, error) {
	var out linksResponse
	if err := c.do(ctx, http.MethodGet, "/api/links", nil, &out); err != nil {
		return nil, err
	}
	return out.Links, nil
}

// GetLink fetches a single link by id.
func (c *Client) GetLink(ctx context.Context, id string) (*model.Link, error) {
	var out model.Link
	if err := c.do(ctx, http.MethodGet, "/api/links/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLink patches a link.
func (c *Client) UpdateLink(ctx context.Context, id string, in UpdateLinkInput) (*model.Link, error) {
	var out model.Link
	if err := c.do(ctx, http.MethodPatch, "/api/links/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/links/"+id, nil, nil)
}
