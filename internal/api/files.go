package api

import (
	"context"
	"net/http"

	"github.com/bliic/bliic/internal/model"
)

// filesResponse is the wire shape of a file share listing.
type filesResponse struct {
	Files []model.FileShare `json:"files"`
}

// ListFiles fetches the account's shared files. The file bytes themselves
// never pass through this client; uploads and downloads are server concerns.
func (c *Client) ListFiles(ctx context.Context) ([]model.FileShare, error) {
	var out filesResponse
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// GetFile fetches a single file share by id.
func (c *Client) GetFile(ctx context.Context, id string) (*model.FileShare, error) {
	var out model.FileShare
	if err := c.do(ctx, http.MethodGet, "/api/files/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile removes a file share.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+id, nil, nil)
}
