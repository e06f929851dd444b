// Package maestro is the Go client for the Maestro marketing-analytics
// platform. It owns the session/authentication lifecycle and the API access
// layer every other surface (CLI, dashboard shell) builds on.
//
// Session lifecycle:
//   - SessionStore is the single authoritative record of the current actor.
//     Its status moves through unresolved, loading, authenticated, and
//     anonymous; the legal moves live in an explicit transition table so
//     ad hoc flags never drift out of sync with the identity field.
//   - Hydrate resolves a persisted credential into an identity at startup.
//     Login, Register, Logout, and UpdateProfile are the only mutators and
//     never let a transport error escape: each resolves to a boolean plus a
//     readable LastError.
//
// API access:
//   - Client is the single choke-point for outbound calls. It attaches the
//     stored bearer credential at dispatch time, normalizes error bodies into
//     categorized errors, and on any 401 clears the credential, flips the
//     session anonymous, and invokes the injected Navigator exactly once.
//   - Service groups (UsersService, CampaignsService, StrategicMindService,
//     CreativeSparkService, TransparentMentorService, LearningLoopService)
//     map the backend HTTP contract onto typed calls.
//
// Guarding:
//   - RouteGuard gates protected views on session state: a waiting view while
//     the session resolves, a redirect to the login route (carrying the
//     originally requested URL) once anonymous, the handler once
//     authenticated. The decision runs on every request, so a background 401
//     flips an already-rendered view on its next evaluation.
package maestro
