package model

import "time"

// FileShare represents an uploaded file exposed through a short link.
// The upload itself happens server-side; the client only sees metadata.
type FileShare struct {
	ID          string     `json:"id"`
	FileName    string     `json:"file_name"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type,omitempty"`
	ShortURL    string     `json:"short_url"`
	Downloads   int64      `json:"downloads"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
