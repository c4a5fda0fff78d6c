package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

type stubGuard struct {
	decision domain.Decision
	gotPath  string
}

func (g *stubGuard) Guard(path string) domain.Decision {
	g.gotPath = path
	d := g.decision
	if d.Kind == domain.DecisionRedirect {
		d.ReturnTo = path
	}
	return d
}

func runGuard(t *testing.T, g *stubGuard, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/articles", nil)
	if header != "" {
		req.Header.Set(RequestedPathHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Guard(g)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuardMiddleware_Render(t *testing.T) {
	g := &stubGuard{decision: domain.Decision{Kind: domain.DecisionRender}}
	rec, called := runGuard(t, g, "")

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if g.gotPath != "/v1/articles" {
		t.Fatalf("expected request path, got %q", g.gotPath)
	}
}

func TestGuardMiddleware_Loading(t *testing.T) {
	rec, called := runGuard(t, &stubGuard{decision: domain.Decision{Kind: domain.DecisionShowLoading}}, "")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderRetryAfter) == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestGuardMiddleware_Redirects(t *testing.T) {
	cases := []struct {
		target string
		want   int
	}{
		{domain.LoginPath, http.StatusUnauthorized},
		{domain.VerifyEmailPath, http.StatusForbidden},
	}
	for _, tc := range cases {
		g := &stubGuard{decision: domain.Decision{Kind: domain.DecisionRedirect, Path: tc.target}}
		rec, called := runGuard(t, g, "/dashboard")

		if called {
			t.Fatalf("%s: should not reach next", tc.target)
		}
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.want, rec.Code)
		}
		var d domain.Decision
		if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if d.Path != tc.target || d.ReturnTo != "/dashboard" {
			t.Fatalf("unexpected decision body: %+v", d)
		}
	}
}
