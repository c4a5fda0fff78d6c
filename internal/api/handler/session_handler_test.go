package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

type stubSessionService struct {
	mu    sync.Mutex
	state domain.SessionState
	subs  []func(domain.SessionState)

	loginFn    func(ctx context.Context, in ports.LoginInput) domain.SessionState
	registerFn func(ctx context.Context, in ports.RegisterInput) domain.SessionState
	verifyFn   func(ctx context.Context, token string) domain.SessionState
}

func (s *stubSessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubSessionService) Subscribe(fn func(domain.SessionState)) func() {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
	return func() {}
}

func (s *stubSessionService) set(next domain.SessionState) domain.SessionState {
	s.mu.Lock()
	s.state = next
	subs := append([]func(domain.SessionState){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(next)
	}
	return next
}

func (s *stubSessionService) Restore(context.Context) domain.SessionState { return s.State() }

func (s *stubSessionService) Login(ctx context.Context, in ports.LoginInput) domain.SessionState {
	return s.loginFn(ctx, in)
}

func (s *stubSessionService) Register(ctx context.Context, in ports.RegisterInput) domain.SessionState {
	return s.registerFn(ctx, in)
}

func (s *stubSessionService) Logout(context.Context) domain.SessionState {
	return s.set(domain.AnonymousState(""))
}

func (s *stubSessionService) VerifyEmail(ctx context.Context, token string) domain.SessionState {
	return s.verifyFn(ctx, token)
}

func (s *stubSessionService) SendVerificationEmail(context.Context) domain.SessionState {
	return s.State()
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestSessionHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		loginFn: func(_ context.Context, in ports.LoginInput) domain.SessionState {
			if in.Email != "a@b.co" || in.Password != "secret" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return domain.AuthenticatedState(&domain.Identity{ID: "1", Email: in.Email, EmailVerified: true}, "T")
		},
	}
	h := NewSessionHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/session/login", strings.NewReader(`{"email":"a@b.co","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["phase"] != string(domain.PhaseAuthenticatedVerified) || resp["is_authenticated"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), `"T"`) {
		t.Fatalf("credential leaked in response: %s", rec.Body.String())
	}
}

func TestSessionHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		loginFn: func(context.Context, ports.LoginInput) domain.SessionState {
			t.Fatalf("should not be called")
			return domain.SessionState{}
		},
	}
	h := NewSessionHandler(stub)

	for _, body := range []string{"not-json", `{"email":"nope","password":"x"}`, `{"email":"a@b.co"}`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/session/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		err := h.Login(c)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %q: expected validation fault, got %v", body, err)
		}
	}
}

func TestSessionHandler_Register(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		registerFn: func(_ context.Context, in ports.RegisterInput) domain.SessionState {
			if in.Name != "Ada" {
				t.Fatalf("unexpected name %q", in.Name)
			}
			return domain.AnonymousState("")
		},
	}
	h := NewSessionHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/session/register", strings.NewReader(`{"email":"a@b.co","password":"secret","name":"Ada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/session/register", strings.NewReader(`{"email":"a@b.co","password":"123","name":"Ada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if err := h.Register(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation fault for short password, got %v", err)
	}
}

func TestSessionHandler_VerifyEmail_RequiresToken(t *testing.T) {
	e := newEcho()
	h := NewSessionHandler(&stubSessionService{
		verifyFn: func(context.Context, string) domain.SessionState {
			t.Fatalf("should not be called")
			return domain.SessionState{}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/session/verify-email", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if err := h.VerifyEmail(e.NewContext(req, httptest.NewRecorder())); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation fault, got %v", err)
	}
}

func TestSessionHandler_Events(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{state: domain.AuthenticatedState(&domain.Identity{ID: "1", Email: "a@b.co", EmailVerified: true}, "T")}
	h := NewSessionHandler(stub)
	e.GET("/v1/session/events", h.Events)

	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/session/events", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	nextPhase := func() string {
		t.Helper()
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("read event: %v", err)
			}
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var ev map[string]any
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
				t.Fatalf("bad event payload %q: %v", line, err)
			}
			return ev["phase"].(string)
		}
	}

	if got := nextPhase(); got != string(domain.PhaseAuthenticatedVerified) {
		t.Fatalf("first event phase = %q", got)
	}
	stub.Logout(context.Background())
	if got := nextPhase(); got != string(domain.PhaseAnonymous) {
		t.Fatalf("second event phase = %q", got)
	}
}
