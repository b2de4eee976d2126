package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestUserHandlersRegisterLoginVerify(t *testing.T) {
	mock := newMock(t)
	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), svc)

	expectEmailFree(mock, "sita@example.com")
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "sita", "sita@example.com", "9800000000", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp := postJSON(t, app, "/users", validRegister)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if bytes.Contains(body, []byte("namaste123")) || bytes.Contains(body, []byte("password_hash")) {
		t.Fatalf("password leaked: %s", body)
	}

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("sita@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-1", "sita", "sita@example.com", "", hashOf(t, "namaste123"), time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp = postJSON(t, app, "/users/login", LoginRequest{Email: "sita@example.com", Password: "namaste123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}
	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	verify, err := app.Test(req)
	if err != nil || verify.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserHandlersDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService("test-secret", mock))

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("sita@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	resp := postJSON(t, app, "/users", validRegister)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("Email already registered")) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestUserHandlersBadPayloads(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService("secret", nil))

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{bad")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}

	if resp := postJSON(t, app, "/users", RegisterRequest{Username: "u"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/users/login", map[string]string{"email": ""}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad login request, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/users/refresh", map[string]string{}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad refresh request, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/users/refresh", RefreshRequest{RefreshToken: "bad"}); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized refresh, got %d", resp.StatusCode)
	}
}

func TestUserHandlersListGuarded(t *testing.T) {
	mock := newMock(t)
	svc := NewService("secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), svc, JWTMiddleware("secret"), RequireRole(RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}

	mock.ExpectQuery(`FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "mobile", "created_at"}).
			AddRow("user-1", "sita", "sita@example.com", "", time.Now()))

	token, _ := svc.signToken("admin:1", RoleAdmin, tokenAccess, time.Minute)
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}
}

func TestUserHandlersRefresh(t *testing.T) {
	mock := newMock(t)
	svc := NewService("secret", mock)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	issued, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(issued.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-1", time.Now().Add(5*time.Minute)))
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at = now\(\)`).
		WithArgs(issued.RefreshToken).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), svc)

	resp := postJSON(t, app, "/users/refresh", RefreshRequest{RefreshToken: issued.RefreshToken})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status %d", resp.StatusCode)
	}

	// the spent token is filtered out by revoked_at IS NULL
	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(issued.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}))

	resp = postJSON(t, app, "/users/refresh", RefreshRequest{RefreshToken: issued.RefreshToken})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected replayed refresh to be rejected, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserHandlersRefreshWithAccessToken(t *testing.T) {
	mock := newMock(t)
	svc := NewService("secret", mock)
	access, _ := svc.signToken("user-1", RoleUser, tokenAccess, time.Minute)

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), svc)

	resp := postJSON(t, app, "/users/refresh", RefreshRequest{RefreshToken: access})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected access token to be refused, got %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}
