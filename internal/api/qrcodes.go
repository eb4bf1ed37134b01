package api

import (
	"context"
	"net/http"

	"github.com/bliic/bliic/internal/model"
)

// CreateQRCodeInput defines input for generating a QR code.
type CreateQRCodeInput struct {
	Data   string         `json:"data"`
	Label  string         `json:"label,omitempty"`
	Format model.QRFormat `json:"format,omitempty"`
}

// qrCodesResponse is the wire shape of a QR code listing.
type qrCodesResponse struct {
	QRCodes []model.QRCode `json:"qrcodes"`
}

// CreateQRCode generates a QR code server-side and returns its metadata.
func (c *Client) CreateQRCode(ctx context.Context, in CreateQRCodeInput) (*model.QRCode, error) {
	var out model.QRCode
	if err := c.do(ctx, http.MethodPost, "/api/qrcodes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListQRCodes fetches the account's QR codes.
func (c *Client) ListQRCodes(ctx context.Context) ([]model.QRCode, error) {
	var out qrCodesResponse
	if err := c.do(ctx, http.MethodGet, "/api/qrcodes", nil, &out); err != nil {
		return nil, err
	}
	return out.QRCodes, nil
}

// DeleteQRCode removes a QR code.
func (c *Client) DeleteQRCode(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/qrcodes/"+id, nil, nil)
}
