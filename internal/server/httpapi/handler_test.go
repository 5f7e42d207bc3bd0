package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/logging"
	"github.com/dmitrijs2005/matchroom/internal/server/config"
	"github.com/dmitrijs2005/matchroom/internal/server/users"
)

func newTestServer(t *testing.T) (*httptest.Server, *users.Service) {
	t.Helper()

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	svc := users.NewService(users.NewInMemoryRepository(), cfg)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	NewHandler(svc, logger).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, svc
}

func postForm(t *testing.T, ts *httptest.Server, path, username, password string) (*http.Response, string) {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	resp, err := http.Post(ts.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST %s error: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestSignup_Success(t *testing.T) {
	ts, svc := newTestServer(t)

	resp, body := postForm(t, ts, "/api/signup", "alice", "pw")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	if body == "" {
		t.Fatal("expected token in body")
	}

	// the returned token must admit a connection
	if _, err := svc.AuthorizeConnection(context.Background(), body); err != nil {
		t.Fatalf("token from signup rejected: %v", err)
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := postForm(t, ts, "/api/signup", "alice", "pw")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first signup status %d, want 200", resp.StatusCode)
	}

	resp, _ = postForm(t, ts, "/api/signup", "alice", "other")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second signup status %d, want 409", resp.StatusCode)
	}
}

func TestSignup_EmptyCredentials(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := postForm(t, ts, "/api/signup", "", "pw")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestLogin_Success(t *testing.T) {
	ts, _ := newTestServer(t)

	postForm(t, ts, "/api/signup", "alice", "correct")

	resp, body := postForm(t, ts, "/api/login", "alice", "correct")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	if body == "" {
		t.Fatal("expected token in body")
	}
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	ts, _ := newTestServer(t)

	postForm(t, ts, "/api/signup", "alice", "correct")

	wrongPw, wrongBody := postForm(t, ts, "/api/login", "alice", "wrong")
	ghost, ghostBody := postForm(t, ts, "/api/login", "ghost", "anything")

	if wrongPw.StatusCode != http.StatusUnauthorized || ghost.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statuses %d/%d, want 401/401", wrongPw.StatusCode, ghost.StatusCode)
	}
	if wrongBody != ghostBody {
		t.Fatalf("bodies differ between wrong-password and unknown-user: %q vs %q", wrongBody, ghostBody)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/login")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status %d, want 405", resp.StatusCode)
	}
}
