// Package contract checks the dev server against the hosted API's wire
// contract: exact JSON key names and error payload shapes that the SDK and
// the web app both depend on.
package contract

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bliic/bliic/internal/devserver"
	"github.com/bliic/bliic/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := devserver.NewStore()
	if _, err := store.CreateUser("demo@bliic.app", "demo-password", "Demo", model.PlanPremium, model.RoleAdmin); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(devserver.NewRouter(store, "http://short.test", logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body map[string]any, token string) map[string]any {
	t.Helper()
	return request(t, http.MethodPost, url, body, token)
}

func request(t *testing.T, method, url string, body map[string]any, token string) map[string]any {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("perform request: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestLoginPayloadShape(t *testing.T) {
	srv := newServer(t)

	body := post(t, srv.URL+"/api/auth/login", map[string]any{
		"email":    "demo@bliic.app",
		"password": "demo-password",
	}, "")

	token, ok := body["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("access_token missing or empty: %v", body)
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user object missing: %v", body)
	}
	for _, key := range []string{"id", "email", "name", "plan", "role"} {
		if _, present := user[key]; !present {
			t.Errorf("user payload missing %q key: %v", key, user)
		}
	}
	if user["plan"] != "premium" {
		t.Errorf("plan = %v, want wire value %q", user["plan"], "premium")
	}
}

func TestLoginErrorShape(t *testing.T) {
	srv := newServer(t)

	body := post(t, srv.URL+"/api/auth/login", map[string]any{
		"email":    "demo@bliic.app",
		"password": "wrong",
	}, "")

	msg, ok := body["error"].(string)
	if !ok || msg == "" {
		t.Fatalf("error payload must carry a non-empty \"error\" string: %v", body)
	}
	// The message must not leak whether the email exists.
	ghost := post(t, srv.URL+"/api/auth/login", map[string]any{
		"email":    "nobody@bliic.app",
		"password": "wrong",
	}, "")
	if ghost["error"] != msg {
		t.Errorf("credential errors differ by account existence: %v vs %v", ghost["error"], msg)
	}
}

func TestLinkListingShape(t *testing.T) {
	srv := newServer(t)

	login := post(t, srv.URL+"/api/auth/login", map[string]any{
		"email":    "demo@bliic.app",
		"password": "demo-password",
	}, "")
	token := login["access_token"].(string)

	created := post(t, srv.URL+"/api/links", map[string]any{
		"destination": "https://example.com",
	}, token)
	for _, key := range []string{"id", "short_code", "short_url", "destination", "enabled", "created_at"} {
		if _, present := created[key]; !present {
			t.Errorf("link payload missing %q key: %v", key, created)
		}
	}

	listing := request(t, http.MethodGet, srv.URL+"/api/links", nil, token)
	links, ok := listing["links"].([]any)
	if !ok {
		t.Fatalf("listing must wrap links in a \"links\" array: %v", listing)
	}
	if len(links) != 1 {
		t.Errorf("len(links) = %d, want 1", len(links))
	}
}

func TestSubscriptionShape(t *testing.T) {
	srv := newServer(t)

	login := post(t, srv.URL+"/api/auth/login", map[string]any{
		"email":    "demo@bliic.app",
		"password": "demo-password",
	}, "")
	token := login["access_token"].(string)

	sub := request(t, http.MethodGet, srv.URL+"/api/billing/subscription", nil, token)
	for _, key := range []string{"plan", "status"} {
		if _, present := sub[key]; !present {
			t.Errorf("subscription payload missing %q key: %v", key, sub)
		}
	}
}
