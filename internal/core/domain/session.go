package domain

// Phase is the coarse state of the session state machine.
type Phase string

const (
	PhaseUnknown                 Phase = "unknown"
	PhaseAnonymous               Phase = "anonymous"
	PhaseAuthenticatedUnverified Phase = "authenticated_unverified"
	PhaseAuthenticatedVerified   Phase = "authenticated_verified"
)

// SessionState is the process-wide authentication state. Values handed to
// readers are snapshots; mutating them has no effect on the store.
type SessionState struct {
	IsAuthenticated bool      `json:"is_authenticated"`
	Identity        *Identity `json:"identity,omitempty"`
	Credential      string    `json:"-"`
	Loading         bool      `json:"loading"`
	Error           string    `json:"error,omitempty"`
	// Initialized flips to true once the startup restore has settled.
	Initialized bool `json:"initialized"`
}

// InitialSessionState is the state at process start: loading, not authenticated.
func InitialSessionState() SessionState {
	return SessionState{Loading: true}
}

// AnonymousState is the settled unauthenticated state.
func AnonymousState(errMsg string) SessionState {
	return SessionState{Initialized: true, Error: errMsg}
}

// AuthenticatedState is the settled authenticated state for identity.
func AuthenticatedState(identity *Identity, credential string) SessionState {
	return SessionState{
		IsAuthenticated: true,
		Identity:        identity.Clone(),
		Credential:      credential,
		Initialized:     true,
	}
}

func (s SessionState) Phase() Phase {
	switch {
	case !s.Initialized:
		return PhaseUnknown
	case !s.IsAuthenticated:
		return PhaseAnonymous
	case s.Identity != nil && s.Identity.EmailVerified:
		return PhaseAuthenticatedVerified
	default:
		return PhaseAuthenticatedUnverified
	}
}

// Consistent reports whether IsAuthenticated agrees with the presence of
// both the identity and the credential.
func (s SessionState) Consistent() bool {
	if s.IsAuthenticated {
		return s.Identity != nil && s.Credential != ""
	}
	return s.Identity == nil && s.Credential == ""
}

// Snapshot returns a deep copy of s.
func (s SessionState) Snapshot() SessionState {
	s.Identity = s.Identity.Clone()
	return s
}

// Email returns the identity's email, or "" when none is known.
func (s SessionState) Email() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Email
}
