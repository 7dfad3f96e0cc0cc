package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/utils"
)

const testSecret = "test-secret"

// fakeIdentifier resolves any payload into a fixed identity, or fails.
type fakeIdentifier struct {
	id   authz.Identity
	fail bool
}

func (f fakeIdentifier) Identify(_ context.Context, p utils.TokenPayload) (authz.Identity, error) {
	if f.fail {
		return authz.Identity{}, errors.New("user associated with token not found")
	}
	id := f.id
	id.UserID = p.UserID
	return id, nil
}

func runAuth(t *testing.T, header string, ids Identifier) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Authenticate(testSecret, ids)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "", fakeIdentifier{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	rec, _ := runAuth(t, "Bearer not-a-token", fakeIdentifier{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateStaleUser(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, utils.TokenPayload{UserID: 7, Email: "a@b.c", Role: model.RoleStudent}, 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := runAuth(t, "Bearer "+tok.Token, fakeIdentifier{fail: true})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 when the live user check fails", rec.Code)
	}
}

func TestAuthenticateStoresIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, utils.TokenPayload{UserID: 7, Email: "a@b.c", Role: model.RoleRecruiter}, 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, c := runAuth(t, "Bearer "+tok.Token, fakeIdentifier{id: authz.Identity{Role: model.RoleRecruiter}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	id, ok := Caller(c)
	if !ok || id.UserID != 7 || id.Role != model.RoleRecruiter {
		t.Errorf("Caller = %+v ok=%v, want the resolved identity", id, ok)
	}
}

func TestRequireRoleGate(t *testing.T) {
	e := echo.New()
	run := func(id *authz.Identity) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if id != nil {
			c.Set(identityKey, *id)
		}
		h := Require(authz.OpOfferListAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec.Code
	}

	if code := run(nil); code != http.StatusUnauthorized {
		t.Errorf("no identity: status = %d, want 401", code)
	}
	if code := run(&authz.Identity{UserID: 1, Role: model.RoleRecruiter}); code != http.StatusForbidden {
		t.Errorf("recruiter: status = %d, want 403", code)
	}
	if code := run(&authz.Identity{UserID: 1, Role: model.RoleAdmin}); code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", code)
	}
}
