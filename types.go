package maestro

import (
	"fmt"
	"strings"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore is the durable client-local home of the bearer credential.
// Load returns an empty string, not an error, when no credential is stored;
// errors are reserved for storage failures.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Navigator receives the forced navigation triggered by an authentication
// failure. Injecting it keeps the redirect side effect assertable in tests.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetHTTPTimeout() time.Duration
	GetLoginRoute() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
	GetLoadingView() string
}

// SessionWatcher observes session status changes. RouteGuard consumers use it
// to re-evaluate gating whenever a logout or background 401 flips the session.
type SessionWatcher interface {
	Status() SessionStatus
	Identity() *User
	LastError() string
	IsAuthenticated() bool
	Subscribe(fn func(SessionStatus)) func()
}

type defLogger struct{}

func (d defLogger) Error(message string, args ...any) {
	fmt.Println(formatLogLine("ERR", message, args...))
}

func (d defLogger) Warn(message string, args ...any) {
	fmt.Println(formatLogLine("WRN", message, args...))
}

func (d defLogger) Info(message string, args ...any) {
	fmt.Println(formatLogLine("INF", message, args...))
}

func (d defLogger) Debug(message string, args ...any) {
	fmt.Println(formatLogLine("DBG", message, args...))
}

// formatLogLine renders a message plus key/value pairs; a trailing unpaired
// argument is appended bare.
func formatLogLine(level, message string, args ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] MAESTRO %s", level, message)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	return b.String()
}
