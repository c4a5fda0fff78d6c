package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/metrics"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

// SessionReader is the read side of the session store.
type SessionReader interface {
	State() domain.SessionState
	Subscribe(fn func(domain.SessionState)) (unsubscribe func())
}

// Decide maps a session snapshot to a guard decision for path. It is a pure
// function of its inputs.
func Decide(state domain.SessionState, path string) domain.Decision {
	switch {
	case state.Loading:
		return domain.Decision{Kind: domain.DecisionShowLoading}
	case !state.IsAuthenticated:
		return domain.Decision{Kind: domain.DecisionRedirect, Path: domain.LoginPath, ReturnTo: path}
	case state.Identity == nil || !state.Identity.EmailVerified:
		return domain.Decision{Kind: domain.DecisionRedirect, Path: domain.VerifyEmailPath, ReturnTo: path}
	default:
		return domain.Decision{Kind: domain.DecisionRender}
	}
}

// RouteGuard gates protected destinations on the current session.
type RouteGuard struct {
	session   SessionReader
	notifier  ports.Notifier
	protected []glob.Glob
	log       zerolog.Logger

	unsubscribe func()

	mu      sync.Mutex
	advised string // credential that already received the verification advisory
}

// NewRouteGuard compiles patterns ('/'-separated globs such as
// "/articles/*") and subscribes to session changes.
func NewRouteGuard(session SessionReader, notifier ports.Notifier, patterns []string, log zerolog.Logger) (*RouteGuard, error) {
	g := &RouteGuard{
		session:  session,
		notifier: notifier,
		log:      log.With().Str("component", "route_guard").Logger(),
	}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		compiled, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile protected route %q: %w", p, err)
		}
		g.protected = append(g.protected, compiled)
	}

	g.unsubscribe = session.Subscribe(func(s domain.SessionState) {
		if s.IsAuthenticated {
			return
		}
		g.mu.Lock()
		g.advised = ""
		g.mu.Unlock()
	})
	return g, nil
}

// Close detaches the guard from the session store.
func (g *RouteGuard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}

// Protected reports whether path matches one of the protected patterns.
func (g *RouteGuard) Protected(path string) bool {
	for _, p := range g.protected {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// Evaluate guards path when it is protected and renders it otherwise.
func (g *RouteGuard) Evaluate(path string) domain.Decision {
	if !g.Protected(path) {
		return domain.Decision{Kind: domain.DecisionRender}
	}
	return g.Guard(path)
}

// Guard decides for path from the current session snapshot. The first
// verify-email redirect for a given credential also emits an advisory
// notification; later ones stay silent.
func (g *RouteGuard) Guard(path string) domain.Decision {
	state := g.session.State()
	d := Decide(state, path)
	metrics.GuardDecisionsTotal.WithLabelValues(string(d.Kind)).Inc()

	if d.Kind == domain.DecisionRedirect && d.Path == domain.VerifyEmailPath && g.advise(state.Credential) {
		g.notifier.Notify(domain.Alert(
			"Email verification required",
			"Please verify your email to access all features.",
		))
	}

	g.log.Debug().Str("path", path).Str("decision", string(d.Kind)).Str("target", d.Path).Msg("guard evaluated")
	return d
}

func (g *RouteGuard) advise(credential string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.advised == credential {
		return false
	}
	g.advised = credential
	return true
}
