package service

import (
	"context"
	"sync"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

type stubAuthGateway struct {
	currentIdentityFn func(ctx context.Context, credential string) (*domain.Identity, error)
	loginFn           func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	registerFn        func(ctx context.Context, email, password, name string) error
	verifyEmailFn     func(ctx context.Context, token string) error
	sendVerifyFn      func(ctx context.Context, email, credential string) error

	mu    sync.Mutex
	calls []string
}

func (g *stubAuthGateway) record(op string) {
	g.mu.Lock()
	g.calls = append(g.calls, op)
	g.mu.Unlock()
}

func (g *stubAuthGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (g *stubAuthGateway) CurrentIdentity(ctx context.Context, credential string) (*domain.Identity, error) {
	g.record("CurrentIdentity")
	if g.currentIdentityFn != nil {
		return g.currentIdentityFn(ctx, credential)
	}
	return nil, nil
}

func (g *stubAuthGateway) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	g.record("Login")
	if g.loginFn != nil {
		return g.loginFn(ctx, email, password)
	}
	return "", nil, domain.NewRemoteFault("Invalid credentials")
}

func (g *stubAuthGateway) Register(ctx context.Context, email, password, name string) error {
	g.record("Register")
	if g.registerFn != nil {
		return g.registerFn(ctx, email, password, name)
	}
	return nil
}

func (g *stubAuthGateway) VerifyEmail(ctx context.Context, token string) error {
	g.record("VerifyEmail")
	if g.verifyEmailFn != nil {
		return g.verifyEmailFn(ctx, token)
	}
	return nil
}

func (g *stubAuthGateway) SendVerificationEmail(ctx context.Context, email, credential string) error {
	g.record("SendVerificationEmail")
	if g.sendVerifyFn != nil {
		return g.sendVerifyFn(ctx, email, credential)
	}
	return nil
}

type memCredentialStore struct {
	mu      sync.Mutex
	value   string
	saveErr error
	loadErr error
	saves   int
	clears  int
}

func (m *memCredentialStore) Save(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value = credential
	return nil
}

func (m *memCredentialStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return "", m.loadErr
	}
	if m.value == "" {
		return "", domain.ErrNoCredential
	}
	return m.value, nil
}

func (m *memCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.value = ""
	return nil
}

func (m *memCredentialStore) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (r *recordingNotifier) Notify(n domain.Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Title)
	}
	return out
}

func (r *recordingNotifier) last() domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return domain.Notification{}
	}
	return r.sent[len(r.sent)-1]
}

func verifiedIdentity() *domain.Identity {
	return &domain.Identity{
		ID:            "u1",
		Email:         "a@b.co",
		Name:          "Ada",
		EmailVerified: true,
		Preferences:   domain.Preferences{Topics: []string{"Technology"}, Sources: []string{}, Keywords: []string{}, ExcludeKeywords: []string{}},
	}
}
