package clientcli

import (
	"errors"
	"fmt"
)

// FaultKind classifies an operation failure.
type FaultKind int

const (
	// KindCaller marks faults caused by the caller's input: a local
	// precondition violation or a server-declared "not found" (HTTP 400).
	KindCaller FaultKind = iota

	// KindRemote marks faults declared by the server: any other
	// non-success HTTP status, or a failed network exchange.
	KindRemote
)

// String returns the fault kind tag used in JSON output.
func (k FaultKind) String() string {
	if k == KindCaller {
		return "caller_fault"
	}
	return "remote_fault"
}

// Fault is the error type raised by all client operations. The Message
// is surfaced to the user verbatim; for remote faults it carries the raw
// response body. StatusCode is zero when no HTTP response was received.
type Fault struct {
	Kind       FaultKind
	StatusCode int
	Message    string
}

func (f *Fault) Error() string {
	return f.Message
}

// Is reports whether target is a *Fault of the same kind.
func (f *Fault) Is(target error) bool {
	var t *Fault
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == f.Kind
}

// callerFaultf builds a caller-input fault with a formatted message.
func callerFaultf(format string, args ...any) *Fault {
	return &Fault{Kind: KindCaller, Message: fmt.Sprintf(format, args...)}
}

// callerFault builds a caller-input fault carrying a server response body.
func callerFault(statusCode int, body string) *Fault {
	return &Fault{Kind: KindCaller, StatusCode: statusCode, Message: body}
}

// remoteFault builds a remote fault carrying a server response body.
func remoteFault(statusCode int, body string) *Fault {
	return &Fault{Kind: KindRemote, StatusCode: statusCode, Message: body}
}

// remoteFaultf builds a remote fault with a formatted message and no
// associated HTTP status.
func remoteFaultf(format string, args ...any) *Fault {
	return &Fault{Kind: KindRemote, Message: fmt.Sprintf(format, args...)}
}

// IsCallerFault reports whether err is a caller-input fault.
func IsCallerFault(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == KindCaller
}

// IsRemoteFault reports whether err is a remote fault.
func IsRemoteFault(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == KindRemote
}

// Errors for configuration validation.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)
