package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/metrics"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
	"github.com/Harsha6202/personalized-news-sentiment/internal/pkg/validation"
)

// Error strings stored on the session state.
const (
	errAuthenticationFailed = "Authentication failed"
	errLoginFailed          = "Login failed. Please check your credentials."
	errRegistrationFailed   = "Registration failed. Please try again."
)

type subscriber struct {
	id int
	fn func(domain.SessionState)
}

// SessionService is the session store: it owns the process-wide
// SessionState and performs every authentication transition.
//
// State changes are applied under mu and published to subscribers after the
// lock is released. mu is never held across a remote call, so two concurrent
// transitions may interleave and the one that resolves last wins.
//
// One goroutine publishes at a time. Subscribers receive snapshots in the
// order they were applied and always end on the current state; under
// concurrent transitions intermediate snapshots may be skipped.
type SessionService struct {
	gateway  ports.AuthGateway
	store    ports.CredentialStore
	notifier ports.Notifier
	validate *validation.Validator
	log      zerolog.Logger

	mu          sync.Mutex
	state       domain.SessionState
	subscribers []subscriber
	nextID      int

	version    uint64 // bumped on every change
	published  uint64 // last version handed to subscribers
	publishing bool
}

// NewSessionService returns a store in the initial loading state. Call
// Restore once at startup to settle it.
func NewSessionService(
	gateway ports.AuthGateway,
	store ports.CredentialStore,
	notifier ports.Notifier,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		gateway:  gateway,
		store:    store,
		notifier: notifier,
		validate: validation.New(),
		log:      log.With().Str("component", "session").Logger(),
		state:    domain.InitialSessionState(),
	}
}

// State returns a snapshot of the current session state.
func (s *SessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the subscription and is safe to call more than once.
func (s *SessionService) Subscribe(fn func(domain.SessionState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Restore settles the startup state from the persisted credential.
func (s *SessionService) Restore(ctx context.Context) domain.SessionState {
	s.update(func(st *domain.SessionState) { st.Loading = true })

	credential, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNoCredential) {
		record("restore", "noop")
		return s.replace(domain.AnonymousState(""))
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("load persisted credential")
		s.clearCredential(ctx)
		record("restore", "error")
		return s.replace(domain.AnonymousState(errAuthenticationFailed))
	}

	identity, err := s.gateway.CurrentIdentity(ctx, credential)
	if err != nil {
		s.log.Warn().Err(err).Msg("auth check failed")
		s.clearCredential(ctx)
		record("restore", outcome(err))
		return s.replace(domain.AnonymousState(errAuthenticationFailed))
	}
	if identity == nil {
		s.log.Info().Msg("persisted credential rejected, clearing")
		s.clearCredential(ctx)
		record("restore", "rejected")
		return s.replace(domain.AnonymousState(""))
	}

	s.log.Info().Str("user_id", identity.ID).Bool("email_verified", identity.EmailVerified).Msg("session restored")
	record("restore", "ok")
	return s.replace(domain.AuthenticatedState(identity, credential))
}

// Login exchanges email and password for a credential. An identity whose
// email is not verified is rejected even though the password was accepted:
// a verification mail is sent and nothing is persisted.
func (s *SessionService) Login(ctx context.Context, in ports.LoginInput) domain.SessionState {
	if err := s.validate.Struct(in); err != nil {
		return s.rejectInput("login", "Login Failed", err)
	}

	s.update(func(st *domain.SessionState) {
		st.Loading = true
		st.Error = ""
	})

	token, identity, err := s.gateway.Login(ctx, in.Email, in.Password)
	if err == nil && (identity == nil || token == "") {
		err = domain.NewRemoteFault("login returned no credential")
	}
	if err == nil && identity.EmailVerified {
		if saveErr := s.store.Save(ctx, token); saveErr != nil {
			err = saveErr
		}
	}
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("login failed")
		record("login", outcome(err))
		s.notifier.Notify(domain.Alert("Login Failed", "Invalid email or password. Please try again."))
		return s.update(func(st *domain.SessionState) {
			st.Loading = false
			st.Error = errLoginFailed
		})
	}

	if !identity.EmailVerified {
		s.log.Info().Str("user_id", identity.ID).Msg("login rejected: email not verified")
		record("login", "rejected")
		s.notifier.Notify(domain.Alert(
			"Email verification required",
			"Please verify your email before logging in. A verification link has been sent to your email.",
		))
		s.sendVerification(ctx, identity.Email, token)
		return s.replace(domain.AnonymousState(""))
	}

	s.log.Info().Str("user_id", identity.ID).Msg("login succeeded")
	record("login", "ok")
	next := s.replace(domain.AuthenticatedState(identity, token))
	s.notifier.Notify(domain.Info("Login Successful", "Welcome back, "+identity.DisplayName()+"!"))
	return next
}

// Register creates an account. It never signs the user in: the account has
// to be verified and then logged into separately.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) domain.SessionState {
	if err := s.validate.Struct(in); err != nil {
		return s.rejectInput("register", "Registration Failed", err)
	}

	s.update(func(st *domain.SessionState) {
		st.Loading = true
		st.Error = ""
	})

	if err := s.gateway.Register(ctx, in.Email, in.Password, in.Name); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("registration failed")
		record("register", outcome(err))
		s.notifier.Notify(domain.Alert("Registration Failed", err.Error()))
		return s.update(func(st *domain.SessionState) {
			st.Loading = false
			st.Error = errRegistrationFailed
		})
	}

	s.log.Info().Str("email", in.Email).Msg("registration succeeded")
	record("register", "ok")
	next := s.update(func(st *domain.SessionState) { st.Loading = false })
	s.notifier.Notify(domain.Info(
		"Registration Successful",
		"Please check your email to verify your account before logging in.",
	))
	return next
}

// Logout forgets the credential and settles into the anonymous state. It
// cannot fail: a storage error is logged and the in-memory session is
// cleared regardless.
func (s *SessionService) Logout(ctx context.Context) domain.SessionState {
	s.clearCredential(ctx)
	record("logout", "ok")
	next := s.replace(domain.AnonymousState(""))
	s.notifier.Notify(domain.Info("Logged Out", "You have been successfully logged out."))
	return next
}

// VerifyEmail confirms a verification token. Apart from the loading flag the
// session is left untouched; the user logs in again afterwards.
func (s *SessionService) VerifyEmail(ctx context.Context, token string) domain.SessionState {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.rejectInput("verify_email", "Verification Failed", errors.New("token is required"))
	}

	s.update(func(st *domain.SessionState) { st.Loading = true })

	if err := s.gateway.VerifyEmail(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("email verification failed")
		record("verify_email", outcome(err))
		s.notifier.Notify(domain.Alert("Verification Failed", err.Error()))
	} else {
		record("verify_email", "ok")
		s.notifier.Notify(domain.Info(
			"Email Verified",
			"Your email has been successfully verified. You can now log in.",
		))
	}

	return s.update(func(st *domain.SessionState) { st.Loading = false })
}

// SendVerificationEmail asks the server to mail a new verification link to
// the current identity. Without a known email it does nothing.
func (s *SessionService) SendVerificationEmail(ctx context.Context) domain.SessionState {
	current := s.State()
	email := current.Email()
	if email == "" {
		record("send_verification_email", "noop")
		return current
	}

	s.update(func(st *domain.SessionState) { st.Loading = true })
	s.sendVerification(ctx, email, current.Credential)
	return s.update(func(st *domain.SessionState) { st.Loading = false })
}

func (s *SessionService) sendVerification(ctx context.Context, email, credential string) {
	if err := s.gateway.SendVerificationEmail(ctx, email, credential); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("sending verification email failed")
		record("send_verification_email", outcome(err))
		s.notifier.Notify(domain.Alert("Failed to Send Verification Email", err.Error()))
		return
	}
	record("send_verification_email", "ok")
	s.notifier.Notify(domain.Info("Verification Email Sent", "Please check your email for the verification link."))
}

// rejectInput reports a ValidationFault without touching the remote API.
func (s *SessionService) rejectInput(op, title string, err error) domain.SessionState {
	fault := domain.NewValidationFault(err.Error())
	record(op, string(fault.Kind))
	s.notifier.Notify(domain.Alert(title, fault.Detail))
	return s.update(func(st *domain.SessionState) { st.Error = fault.Detail })
}

func (s *SessionService) clearCredential(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear persisted credential")
	}
}

// replace swaps in a complete settled state.
func (s *SessionService) replace(next domain.SessionState) domain.SessionState {
	return s.update(func(st *domain.SessionState) { *st = next })
}

// update applies fn atomically and publishes the result.
func (s *SessionService) update(fn func(*domain.SessionState)) domain.SessionState {
	s.mu.Lock()
	fn(&s.state)
	s.version++
	snap := s.state.Snapshot()
	if s.publishing {
		// The active publisher picks this version up before it stops.
		s.mu.Unlock()
		return snap
	}
	s.publishing = true
	s.mu.Unlock()

	s.publish()
	return snap
}

// publish delivers the current snapshot until no newer version is pending.
func (s *SessionService) publish() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.publishing = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if s.published == s.version {
			s.publishing = false
			s.mu.Unlock()
			return
		}
		s.published = s.version
		snap := s.state.Snapshot()
		subs := make([]func(domain.SessionState), len(s.subscribers))
		for i, sub := range s.subscribers {
			subs[i] = sub.fn
		}
		s.mu.Unlock()

		for _, fn := range subs {
			fn(snap.Snapshot())
		}
	}
}

func record(op, result string) {
	metrics.SessionTransitionsTotal.WithLabelValues(op, result).Inc()
}

func outcome(err error) string {
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "error"
}
