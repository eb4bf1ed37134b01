package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/bliic/bliic/internal/model"
)

// loginRequest is the wire shape of a credentials submission.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the wire shape of an account creation.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginResponse is the wire shape of a successful login or registration.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// Login exchanges credentials for a bearer token and user record.
// Every failure comes back as *AuthError carrying a display-ready message:
// the server's own message when its error payload was recognizable, a
// generic fallback otherwise. The client's token is not touched.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, asAuthError(err)
	}
	if out.AccessToken == "" {
		return nil, &AuthError{Message: GenericAuthMessage}
	}
	return &out, nil
}

// Register creates an account. The server logs the new account in, so the
// response shape matches Login.
func (c *Client) Register(ctx context.Context, email, password, name string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{Email: email, Password: password, Name: name}, &out)
	if err != nil {
		return nil, asAuthError(err)
	}
	if out.AccessToken == "" {
		return nil, &AuthError{Message: GenericAuthMessage}
	}
	return &out, nil
}

// Me fetches the account behind the installed bearer token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// asAuthError converts any transport or API error into an *AuthError.
func asAuthError(err error) *AuthError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = GenericAuthMessage
		}
		return &AuthError{StatusCode: apiErr.StatusCode, Message: message, Err: err}
	}
	return &AuthError{Message: GenericAuthMessage, Err: err}
}
