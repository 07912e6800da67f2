package auth

import (
	"DentEase/entity"
	"DentEase/impl/core"
	authservice "DentEase/internal/service/auth"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubCore struct {
	email string
}

func (s *stubCore) Login(_ context.Context, email, password string) (*core.LoginResult, error) {
	s.email = email
	switch {
	case email != "admin@dentease.test":
		return nil, authservice.ErrUnknownEmail
	case password != "secret123":
		return nil, authservice.ErrWrongPassword
	}
	return &core.LoginResult{Token: "jwt", Admin: &entity.AdminAuth{Email: email}}, nil
}

func (s *stubCore) ChangePassword(context.Context, string, string, string) error {
	return nil
}

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func post(t *testing.T, h http.HandlerFunc, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestLogin(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	stub := &stubCore{}
	h := Login(log, stub)

	rec, env := post(t, h, `{"email":" Admin@DentEase.test ","password":"secret123"}`)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected success, got %d %+v", rec.Code, env)
	}
	if stub.email != "admin@dentease.test" {
		t.Fatalf("email not normalized: %q", stub.email)
	}

	rec, env = post(t, h, `{"email":"who@dentease.test","password":"secret123"}`)
	if rec.Code != http.StatusUnauthorized || env.Fields["email"] != "No account found with that email address." {
		t.Fatalf("unexpected unknown-email response %d %+v", rec.Code, env)
	}

	rec, env = post(t, h, `{"email":"admin@dentease.test","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized || env.Fields["password"] != "The password you entered is incorrect." {
		t.Fatalf("unexpected wrong-password response %d %+v", rec.Code, env)
	}
}

func TestLoginValidation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := Login(log, &stubCore{})

	rec, env := post(t, h, `{"email":"not-an-email","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Fields["Email"] == "" || env.Fields["Password"] == "" {
		t.Fatalf("expected field errors, got %+v", env.Fields)
	}

	long := strings.Repeat("a", 45) + "@x.com"
	rec, _ = post(t, h, `{"email":"`+long+`","password":"secret123"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for long email, got %d", rec.Code)
	}
}
