package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/credential-service/internal/api/middleware"
	"github.com/99minutos/credential-service/internal/core/domain"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, email, password string) error
	loginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn  func(ctx context.Context, id string) (*domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, email, password string) error {
	return s.registerFn(ctx, email, password)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Profile(ctx context.Context, id string) (*domain.Account, error) {
	return s.profileFn(ctx, id)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, email, password string) error {
			if email != "a@x.com" || password != "p1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/auth/register", `{"email":"a@x.com","password":"p1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, email, password string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{`{"password":"p1"}`, `{"email":"a@x.com"}`, `{}`} {
		c, _ := newTestContext(http.MethodPost, "/auth/register", body)
		if err := handler.Register(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, email, password string) error {
			return domain.ErrDuplicateAccount
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/register", `{"email":"a@x.com","password":"p1"}`)
	if err := handler.Register(c); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, email, password string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/register", "not-json")
	err := handler.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "a@x.com" || password != "p1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"p1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"bad"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/auth/login", "{")
	err := handler.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProfileHandler_Get(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubAccountService{
		profileFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.Account{ID: id, Email: "a@x.com", PasswordHash: "$2a$hash", CreatedAt: created}, nil
		},
	}
	handler := NewProfileHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/profile", "")
	c.Set(middleware.AccountIDKey, "acc-1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc-1" || resp["email"] != "a@x.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["created_at"]; !ok {
		t.Fatalf("expected created_at in payload")
	}
	for _, key := range []string{"password", "password_hash", "PasswordHash"} {
		if _, ok := resp[key]; ok {
			t.Fatalf("payload must not include %s", key)
		}
	}
}

func TestProfileHandler_Get_NotFound(t *testing.T) {
	stub := &stubAccountService{
		profileFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	handler := NewProfileHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/profile", "")
	c.Set(middleware.AccountIDKey, "gone")
	if err := handler.Get(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestProfileHandler_Get_WithoutGate(t *testing.T) {
	stub := &stubAccountService{
		profileFn: func(ctx context.Context, id string) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProfileHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/profile", "")
	if err := handler.Get(c); !errors.Is(err, domain.ErrNoTokenProvided) {
		t.Fatalf("expected ErrNoTokenProvided, got %v", err)
	}
}
