package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GenericAuthMessage is shown when a login failure carries no usable
// server-provided message.
const GenericAuthMessage = "Authentication failed. Please try again."

// maxErrorBody caps how much of an error payload is read.
const maxErrorBody = 64 * 1024

// AuthError reports a rejected or failed login attempt.
// Message is display-ready; StatusCode is 0 when the server was unreachable.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response from any endpoint.
// Message is empty when the error payload was unrecognized.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// errorBody is the server's error payload shape.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeError turns a non-2xx response into an *APIError, extracting the
// server-provided message when the payload is recognizable.
func decodeError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	message := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		message = eb.Error
		if message == "" {
			message = eb.Message
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
