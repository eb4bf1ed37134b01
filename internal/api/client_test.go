package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, testLogger()), srv
}

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "a@b.com" || body["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"tok1","user":{"id":"1","email":"a@b.com","name":"A","plan":"free"}}`)
	}))

	resp, err := client.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.AccessToken != "tok1" {
		t.Errorf("AccessToken = %q, want %q", resp.AccessToken, "tok1")
	}
	if resp.User.ID != "1" || resp.User.Email != "a@b.com" || resp.User.Name != "A" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if resp.User.Plan != "free" {
		t.Errorf("Plan = %q, want free", resp.User.Plan)
	}
}

func TestLogin_RejectedWithServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"Identifiants incorrects."}`)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.Message != "Identifiants incorrects." {
		t.Errorf("Message = %q, want server message", authErr.Message)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
	}
}

func TestLogin_UnrecognizedErrorPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>upstream exploded</html>")
	}))

	_, err := client.Login(context.Background(), "a@b.com", "secret")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Message != GenericAuthMessage {
		t.Errorf("Message = %q, want generic fallback", authErr.Message)
	}
}

func TestLogin_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(srv.URL, time.Second, testLogger())
	srv.Close() // unreachable from here on

	_, err := client.Login(context.Background(), "a@b.com", "secret")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Message != GenericAuthMessage {
		t.Errorf("Message = %q, want generic fallback", authErr.Message)
	}
	if authErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for unreachable server", authErr.StatusCode)
	}
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"id":"1","email":"a@b.com"}}`)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "secret")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError for tokenless response, got %v", err)
	}
}

func TestLogin_NormalizesAccessShapes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"access_token":"tok1","user":{"id":"1","email":"a@b.com","name":"A","plan":"premium","access":["links","qr_codes"]}}`)
	}))

	resp, err := client.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.User.Access.HasPermission("links") || !resp.User.Access.HasPermission("qr_codes") {
		t.Errorf("access not normalized: %+v", resp.User.Access)
	}
}

func TestBearerHeaderLifecycle(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"id":"1","email":"a@b.com","name":"A","plan":"free"}`)
	}))

	ctx := context.Background()

	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header while anonymous, got %q", gotAuth)
	}

	client.SetToken("tok1")
	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok1")
	}

	client.ClearToken()
	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected Authorization cleared after ClearToken, got %q", gotAuth)
	}
}

func TestRequestIDHeaderSent(t *testing.T) {
	var gotID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		io.WriteString(w, `{"id":"1","email":"a@b.com","name":"A","plan":"free"}`)
	}))

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotID == "" {
		t.Error("expected a request id header on every call")
	}
}

func TestListLinks_DecodesWrapper(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"links":[{"id":"l1","short_code":"abc","destination":"https://example.com"},{"id":"l2","short_code":"def","destination":"https://example.org"}]}`)
	}))

	links, err := client.ListLinks(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0].ID != "l1" || links[1].ShortCode != "def" {
		t.Errorf("unexpected links: %+v", links)
	}
}

func TestNonAuthEndpointError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"Link not found."}`)
	}))

	_, err := client.GetLink(context.Background(), "nope")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Error() != "Link not found." {
		t.Errorf("Error() = %q, want server message", apiErr.Error())
	}
}
