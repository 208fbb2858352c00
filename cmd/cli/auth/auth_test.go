package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/movies-api/cmd/cli/config"
)

func setupEnv(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("MOVIES_API_URL", srv.URL)
	t.Setenv("MOVIES_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
}

func TestSignin_SavesToken(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/signin" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "ann" || body["password"] != "pw" {
			t.Fatalf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "token": "JWT abc"})
	})

	var out bytes.Buffer
	cmd := signinCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--username", "ann", "--password", "pw"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("signin: %v", err)
	}

	token, err := config.LoadToken()
	if err != nil || token != "JWT abc" {
		t.Fatalf("LoadToken: got %q, %v", token, err)
	}
	if !strings.Contains(out.String(), "Signin successful") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestSignin_Rejected(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	cmd := signinCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--username", "ann", "--password", "bad"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, err := os.Stat(config.TokenPath()); !os.IsNotExist(err) {
		t.Errorf("token file should not exist after a failed signin")
	}
}

func TestSignup_PromptsForPassword(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "typed" || body["name"] != "Ann" {
			t.Fatalf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "64b000000000000000000001", "username": "ann"})
	})

	var out bytes.Buffer
	cmd := signupCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("typed\n"))
	cmd.SetArgs([]string{"--name", "Ann", "--username", "ann"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(out.String(), "User ann created") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestLogout(t *testing.T) {
	setupEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := config.SaveToken("JWT abc"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	var out bytes.Buffer
	cmd := logoutCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := cmd.Execute(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if !strings.Contains(out.String(), "No user signed in") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
