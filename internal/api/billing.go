package api

import (
	"context"
	"net/http"

	"github.com/bliic/bliic/internal/model"
)

// checkoutRequest is the wire shape of a checkout session request.
type checkoutRequest struct {
	Plan model.Plan `json:"plan"`
}

// CheckoutSession points the user at a hosted payment page.
type CheckoutSession struct {
	URL string `json:"url"`
}

// Subscription fetches the account's current subscription.
func (c *Client) Subscription(ctx context.Context) (*model.Subscription, error) {
	var out model.Subscription
	if err := c.do(ctx, http.MethodGet, "/api/billing/subscription", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckout asks the server for a hosted checkout session for the
// given plan. Payment itself is verified server-side.
func (c *Client) CreateCheckout(ctx context.Context, plan model.Plan) (*CheckoutSession, error) {
	var out CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/api/billing/checkout", checkoutRequest{Plan: plan}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
