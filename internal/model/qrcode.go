package model

import "time"

// QRFormat is the rendered image format of a QR code.
type QRFormat string

const (
	QRFormatPNG QRFormat = "png"
	QRFormatSVG QRFormat = "svg"
)

// IsValid checks if the format is supported.
func (f QRFormat) IsValid() bool {
	return f == QRFormatPNG || f == QRFormatSVG
}

// QRCode represents a generated QR code as returned by the API.
type QRCode struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	Data      string    `json:"data"`
	Format    QRFormat  `json:"format"`
	ImageURL  string    `json:"image_url"`
	ScanCount int64     `json:"scan_count"`
	CreatedAt time.Time `json:"created_at"`
}
