package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bliic/bliic/internal/api"
	"github.com/bliic/bliic/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClient implements Authenticator for store tests.
type fakeClient struct {
	resp *api.LoginResponse
	err  error

	token      string
	setCalls   int
	clearCalls int

	// started/release allow a test to observe an in-flight login.
	started chan struct{}
	release chan struct{}
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeClient) SetToken(token string) {
	f.token = token
	f.setCalls++
}

func (f *fakeClient) ClearToken() {
	f.token = ""
	f.clearCalls++
}

func okResponse() *api.LoginResponse {
	return &api.LoginResponse{
		AccessToken: "tok1",
		User: model.User{
			ID:    "1",
			Email: "a@b.com",
			Name:  "A",
			Plan:  model.PlanFree,
		},
	}
}

func newTestStore(t *testing.T, client Authenticator) (*Store, *FileStorage) {
	t.Helper()
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	return NewStore(storage, client, testLogger()), storage
}

func TestLogin_Success(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	store, storage := newTestStore(t, client)

	sess, err := store.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !store.IsAuthenticated() {
		t.Error("expected authenticated state after login")
	}

	user, ok := store.CurrentUser()
	if !ok {
		t.Fatal("expected a current user")
	}
	if user.ID != "1" || user.Email != "a@b.com" || user.Name != "A" || user.Plan != model.PlanFree {
		t.Errorf("unexpected user: %+v", user)
	}
	if store.Token() != "tok1" {
		t.Errorf("Token() = %q, want tok1", store.Token())
	}
	if sess.Token != "tok1" {
		t.Errorf("session token = %q, want tok1", sess.Token)
	}

	if client.token != "tok1" {
		t.Errorf("expected token applied to shared client, got %q", client.token)
	}

	if _, err := storage.Load(); err != nil {
		t.Errorf("expected persisted session, got %v", err)
	}
}

func TestLogin_RoleDefaulted(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	store, _ := newTestStore(t, client)

	if _, err := store.Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	user, _ := store.CurrentUser()
	if user.Role != model.RoleUser {
		t.Errorf("Role = %q, want defaulted %q", user.Role, model.RoleUser)
	}
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	client := &fakeClient{err: &api.AuthError{StatusCode: 401, Message: "Identifiants incorrects."}}
	store, storage := newTestStore(t, client)

	_, err := store.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Identifiants incorrects." {
		t.Errorf("error message = %q, want server message", err.Error())
	}

	if store.IsAuthenticated() {
		t.Error("expected anonymous state after failed login")
	}
	if client.setCalls != 0 {
		t.Error("expected no token applied on failure")
	}
	if _, err := storage.Load(); err != ErrNoSession {
		t.Errorf("expected no persisted session, got %v", err)
	}
}

func TestLogin_FailureKeepsExistingSession(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	store, _ := newTestStore(t, client)

	if _, err := store.Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("first login: %v", err)
	}

	client.err = &api.AuthError{StatusCode: 401, Message: "nope"}
	if _, err := store.Login(context.Background(), "a@b.com", "wrong"); err == nil {
		t.Fatal("expected second login to fail")
	}

	if !store.IsAuthenticated() {
		t.Error("failed re-login must not drop the existing session")
	}
	if store.Token() != "tok1" {
		t.Errorf("Token() = %q, want original tok1", store.Token())
	}
}

func TestLogin_CancelledContextDiscardsResult(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	store, _ := newTestStore(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // caller torn down before the response lands

	if _, err := store.Login(ctx, "a@b.com", "secret"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if store.IsAuthenticated() {
		t.Error("cancelled login must not mutate state")
	}
}

func TestLoginInFlight(t *testing.T) {
	client := &fakeClient{
		resp:    okResponse(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store, _ := newTestStore(t, client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.Login(context.Background(), "a@b.com", "secret")
	}()

	<-client.started
	if !store.LoginInFlight() {
		t.Error("expected LoginInFlight true during the call")
	}

	close(client.release)
	<-done
	if store.LoginInFlight() {
		t.Error("expected LoginInFlight false after the call")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	store, storage := newTestStore(t, client)

	if _, err := store.Login(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	store.Logout()
	store.Logout() // second call must be a no-op

	if store.IsAuthenticated() {
		t.Error("expected anonymous state after logout")
	}
	if client.token != "" {
		t.Errorf("expected cleared client token, got %q", client.token)
	}
	if _, err := storage.Load(); err != ErrNoSession {
		t.Errorf("expected persisted session removed, got %v", err)
	}
	if _, ok := store.CurrentUser(); ok {
		t.Error("expected no current user after logout")
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	client := &fakeClient{resp: okResponse()}
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	store := NewStore(storage, client, testLogger())

	sess, err := store.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Simulated reload: fresh store and client over the same storage.
	client2 := &fakeClient{}
	store2 := NewStore(storage, client2, testLogger())
	store2.Restore()

	if !store2.IsAuthenticated() {
		t.Fatal("expected restored session")
	}
	user, _ := store2.CurrentUser()
	if !reflect.DeepEqual(user, sess.User) {
		t.Errorf("restored user = %+v, want %+v", user, sess.User)
	}
	if store2.Token() != sess.Token {
		t.Errorf("restored token = %q, want %q", store2.Token(), sess.Token)
	}
	if client2.token != sess.Token {
		t.Errorf("expected restore to apply token to client, got %q", client2.token)
	}
}

func TestRestore_MissingRecord(t *testing.T) {
	client := &fakeClient{}
	store, _ := newTestStore(t, client)

	store.Restore()

	if store.IsAuthenticated() {
		t.Error("expected anonymous state with no stored session")
	}
	if client.setCalls != 0 {
		t.Error("expected no token applied")
	}
}

func TestRestore_CorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	client := &fakeClient{}
	storage := NewFileStorage(path)
	store := NewStore(storage, client, testLogger())

	store.Restore() // must not panic or error out

	if store.IsAuthenticated() {
		t.Error("expected anonymous state after corrupt restore")
	}
	if _, err := storage.Load(); err != ErrNoSession {
		t.Errorf("expected corrupt record cleared, got %v", err)
	}
}

func TestRestore_IncompleteRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	// Well-formed JSON, but no token: violates the all-or-nothing invariant.
	if err := os.WriteFile(path, []byte(`{"user":{"id":"1","email":"a@b.com"}}`), 0o600); err != nil {
		t.Fatalf("seed incomplete file: %v", err)
	}

	store := NewStore(NewFileStorage(path), &fakeClient{}, testLogger())
	store.Restore()

	if store.IsAuthenticated() {
		t.Error("expected incomplete record treated as no session")
	}
}

func TestAdopt_InstallsSession(t *testing.T) {
	client := &fakeClient{}
	store, storage := newTestStore(t, client)

	user := model.User{ID: "2", Email: "new@b.com", Name: "New", Plan: model.PlanFree}
	if _, err := store.Adopt(user, "tok2"); err != nil {
		t.Fatalf("adopt: %v", err)
	}

	if !store.IsAuthenticated() || store.Token() != "tok2" {
		t.Error("expected adopted session installed")
	}
	if client.token != "tok2" {
		t.Errorf("expected token applied to client, got %q", client.token)
	}
	if _, err := storage.Load(); err != nil {
		t.Errorf("expected adopted session persisted, got %v", err)
	}
}

func TestAdopt_RejectsIncomplete(t *testing.T) {
	store, _ := newTestStore(t, &fakeClient{})

	if _, err := store.Adopt(model.User{ID: "2"}, ""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if store.IsAuthenticated() {
		t.Error("rejected adopt must not mutate state")
	}
}
