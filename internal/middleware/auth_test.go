package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-delivery/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

// fakeRoles resolves roles from a fixed map.
type fakeRoles struct {
	roles map[string]string
}

func (f *fakeRoles) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", models.ErrNotFound
	}
	return role, nil
}

func signToken(t *testing.T, email string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// newTestServer wires one route per guard combination.
func newTestServer() *echo.Echo {
	auth := NewAuth(testSecret, &fakeRoles{roles: map[string]string{
		"admin@x.com": models.RoleAdmin,
		"a@x.com":     models.RoleUser,
	}})

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	e := echo.New()
	e.GET("/own", ok, auth.RequireCredential(), auth.RequireSelf())
	e.GET("/admin", ok, auth.RequireCredential(), auth.RequireAdmin())
	e.GET("/claims", func(c echo.Context) error {
		email, _ := c.Get(ContextKeyEmail).(string)
		return c.String(http.StatusOK, email)
	}, auth.RequireCredential())
	return e
}

func do(e *echo.Echo, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCredentialCheck(t *testing.T) {
	e := newTestServer()

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not.a.token", http.StatusUnauthorized},
		{"expired token", signToken(t, "a@x.com", -time.Minute), http.StatusUnauthorized},
		{"valid token", signToken(t, "a@x.com", time.Hour), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, "/claims", tc.token)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestCredentialCheckAttachesEmail(t *testing.T) {
	e := newTestServer()

	rec := do(e, "/claims", signToken(t, "a@x.com", time.Hour))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "a@x.com" {
		t.Errorf("decoded email = %q, want a@x.com", got)
	}
}

func TestSelfAccessCheck(t *testing.T) {
	e := newTestServer()
	token := signToken(t, "a@x.com", time.Hour)

	if rec := do(e, "/own?email=a@x.com", token); rec.Code != http.StatusOK {
		t.Errorf("own records: status = %d, want 200", rec.Code)
	}
	if rec := do(e, "/own?email=b@x.com", token); rec.Code != http.StatusForbidden {
		t.Errorf("other's records: status = %d, want 403", rec.Code)
	}
	if rec := do(e, "/own", token); rec.Code != http.StatusForbidden {
		t.Errorf("missing email param: status = %d, want 403", rec.Code)
	}
}

func TestAdminRoleCheck(t *testing.T) {
	e := newTestServer()

	cases := []struct {
		name  string
		email string
		want  int
	}{
		{"admin passes", "admin@x.com", http.StatusOK},
		{"plain user refused", "a@x.com", http.StatusForbidden},
		{"unknown identity refused", "ghost@x.com", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, "/admin", signToken(t, tc.email, time.Hour))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestGuardsFailClosedWithoutCredentialStage(t *testing.T) {
	// A route wired without RequireCredential must still refuse, not panic.
	auth := NewAuth(testSecret, &fakeRoles{roles: map[string]string{}})
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	e := echo.New()
	e.GET("/self-only", ok, auth.RequireSelf())
	e.GET("/admin-only", ok, auth.RequireAdmin())

	if rec := do(e, "/self-only?email=a@x.com", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("self stage without credential stage: status = %d, want 401", rec.Code)
	}
	if rec := do(e, "/admin-only", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("admin stage without credential stage: status = %d, want 401", rec.Code)
	}
}
