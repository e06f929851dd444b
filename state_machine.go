package maestro

import (
	goerrors "github.com/goliatone/go-errors"
)

const textCodeInvalidTransition = "INVALID_SESSION_TRANSITION"

// ErrInvalidTransition is returned when a requested session status change is
// not allowed.
var ErrInvalidTransition = goerrors.New("invalid session state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// SessionStatus is the lifecycle state of the client session.
type SessionStatus = string

const (
	// SessionUnresolved is the initial state before hydration starts.
	SessionUnresolved SessionStatus = "unresolved"
	// SessionLoading means the persisted credential is being resolved.
	SessionLoading SessionStatus = "loading"
	// SessionAuthenticated means an identity is present.
	SessionAuthenticated SessionStatus = "authenticated"
	// SessionAnonymous means no identity is present.
	SessionAnonymous SessionStatus = "anonymous"
)

// sessionTransitions is the legal move set. No state is terminal; the machine
// cycles for the life of the process.
var sessionTransitions = map[SessionStatus]map[SessionStatus]struct{}{
	SessionUnresolved: {
		SessionLoading: {},
	},
	SessionLoading: {
		SessionAuthenticated: {},
		SessionAnonymous:     {},
	},
	SessionAnonymous: {
		SessionAuthenticated: {},
		SessionLoading:       {},
	},
	SessionAuthenticated: {
		SessionAnonymous: {},
	},
}

// CanTransition reports whether moving from one status to another is legal.
// Self transitions are allowed so idempotent operations (a second logout, a
// re-login overwriting a live session) never fault.
func CanTransition(from, to SessionStatus) bool {
	if from == to {
		return true
	}
	targets, ok := sessionTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}
