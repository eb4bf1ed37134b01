package api

import (
	"context"
	"net/http"

	"github.com/bliic/bliic/internal/model"
)

// usersResponse is the wire shape of an admin user listing.
type usersResponse struct {
	Users []model.User `json:"users"`
}

// updateUserRequest is the wire shape of an admin user mutation.
// Nil fields are left unchanged server-side.
type updateUserRequest struct {
	Plan *model.Plan `json:"plan,omitempty"`
	Role *model.Role `json:"role,omitempty"`
}

// ListUsers fetches all accounts. Requires an admin role server-side.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out usersResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UpdateUserPlan changes an account's subscription plan.
func (c *Client) UpdateUserPlan(ctx context.Context, id string, plan model.Plan) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPatch, "/api/admin/users/"+id, updateUserRequest{Plan: &plan}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRole changes an account's role.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPatch, "/api/admin/users/"+id, updateUserRequest{Role: &role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
