package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer api.Close()

	h := NewHealthDependenciesHandler(map[string]Probe{
		"redis":   RedisProbe(rdb),
		"graphql": EndpointProbe(api.URL, api.Client()),
	})

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	mr.Close()
	rec = httptest.NewRecorder()
	_ = h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["graphql"].Status != "ok" {
		t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
	}
}

type stubEvaluator struct{}

func (stubEvaluator) Evaluate(path string) domain.Decision {
	return domain.Decision{Kind: domain.DecisionRedirect, Path: domain.LoginPath, ReturnTo: path}
}

type stubDrainer struct{ items []domain.Notification }

func (s *stubDrainer) Drain() []domain.Notification {
	out := s.items
	s.items = []domain.Notification{}
	return out
}

func TestGuardHandler_Evaluate(t *testing.T) {
	e := echo.New()
	h := NewGuardHandler(stubEvaluator{})

	rec := httptest.NewRecorder()
	if err := h.Evaluate(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/guard?path=/dashboard", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var d domain.Decision
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if d.Kind != domain.DecisionRedirect || d.ReturnTo != "/dashboard" {
		t.Fatalf("unexpected decision: %+v", d)
	}

	err := h.Evaluate(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/guard", nil), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestNotificationHandler_Drain(t *testing.T) {
	e := echo.New()
	inbox := &stubDrainer{items: []domain.Notification{domain.Info("Logged Out", "bye")}}
	h := NewNotificationHandler(inbox)

	rec := httptest.NewRecorder()
	if err := h.Drain(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/notifications", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp notificationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Title != "Logged Out" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
