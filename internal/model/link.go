// Package model defines domain entities for the application.
package model

import "time"

// LinkStatus represents the computed status of a link.
type LinkStatus string

const (
	LinkStatusActive   LinkStatus = "active"
	LinkStatusExpired  LinkStatus = "expired"
	LinkStatusDisabled LinkStatus = "disabled"
)

// Link represents a shortened URL as returned by the API.
type Link struct {
	ID          string     `json:"id"`
	ShortCode   string     `json:"short_code"`
	ShortURL    string     `json:"short_url"`
	Destination string     `json:"destination"`
	Title       string     `json:"title,omitempty"`
	Enabled     bool       `json:"enabled"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClickCount  int64      `json:"click_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Status computes the current status of the link.
func (l *Link) Status() LinkStatus {
	if !l.Enabled {
		return LinkStatusDisabled
	}
	if l.ExpiresAt != nil && time.Now().After(*l.ExpiresAt) {
		return LinkStatusExpired
	}
	return LinkStatusActive
}

// IsActive returns true if the link still redirects.
func (l *Link) IsActive() bool {
	return l.Status() == LinkStatusActive
}
