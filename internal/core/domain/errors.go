package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCredential     = errors.New("no persisted credential")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrArticleNotFound  = errors.New("article not found")
	ErrInvalidSentiment = errors.New("invalid sentiment")
)

// FaultKind classifies a failure raised by the remote query executor or by
// input validation ahead of it.
type FaultKind string

const (
	FaultTransport  FaultKind = "transport"
	FaultRemote     FaultKind = "remote"
	FaultNetwork    FaultKind = "network"
	FaultValidation FaultKind = "validation"
)

// Sentinels matched with errors.Is against any *Fault of the same kind.
var (
	ErrTransport  = errors.New("transport fault")
	ErrRemote     = errors.New("remote fault")
	ErrNetwork    = errors.New("network fault")
	ErrValidation = errors.New("validation fault")
)

// Fault is the error type for every failure kind of the remote API boundary.
// Detail is human readable and safe to show to the user.
type Fault struct {
	Kind   FaultKind
	Detail string
	Err    error
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return f.Detail
	}
	if f.Err != nil {
		return fmt.Sprintf("%s fault: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s fault", f.Kind)
}

func (f *Fault) Unwrap() error { return f.Err }

// Is lets errors.Is(err, ErrRemote) and friends match on the fault kind.
func (f *Fault) Is(target error) bool {
	switch f.Kind {
	case FaultTransport:
		return target == ErrTransport
	case FaultRemote:
		return target == ErrRemote
	case FaultNetwork:
		return target == ErrNetwork
	case FaultValidation:
		return target == ErrValidation
	}
	return false
}

// NewTransportFault reports a non-2xx HTTP status.
func NewTransportFault(status int, body string) *Fault {
	return &Fault{
		Kind:   FaultTransport,
		Detail: fmt.Sprintf("HTTP error %d: %s", status, strings.TrimSpace(body)),
	}
}

// NewRemoteFault reports a non-empty server error list.
func NewRemoteFault(messages ...string) *Fault {
	return &Fault{Kind: FaultRemote, Detail: strings.Join(messages, ", ")}
}

// NewNetworkFault reports a request that never produced a usable response.
func NewNetworkFault(err error) *Fault {
	return &Fault{Kind: FaultNetwork, Detail: "network request failed", Err: err}
}

// NewValidationFault reports input rejected before any request was sent.
func NewValidationFault(detail string) *Fault {
	return &Fault{Kind: FaultValidation, Detail: detail}
}

// KindOf returns the fault kind carried by err, or "" when err is not a Fault.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
