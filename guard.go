package maestro

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RouteGuard gates protected views on session state. The decision runs on
// every request, so a logout or background 401 flips an already-served view
// to a redirect on its next evaluation.
type RouteGuard struct {
	session SessionWatcher
	cfg     Config
	Logger  Logger
}

func NewRouteGuard(session SessionWatcher, cfg Config) *RouteGuard {
	return &RouteGuard{
		session: session,
		cfg:     cfg,
		Logger:  defLogger{},
	}
}

func (g *RouteGuard) WithLogger(logger Logger) *RouteGuard {
	if logger != nil {
		g.Logger = logger
	}
	return g
}

// Middleware renders the waiting view while the session resolves, redirects
// anonymous visitors to the login route (remembering where they were going),
// and passes authenticated requests through.
func (g *RouteGuard) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			switch g.session.Status() {
			case SessionUnresolved, SessionLoading:
				return ctx.Render(g.cfg.GetLoadingView(), router.ViewContext{
					"status": g.session.Status(),
				})
			case SessionAuthenticated:
				if user := g.session.Identity(); user != nil {
					ctx.SetContext(WithIdentity(ctx.Context(), user))
					ctx.Locals(TemplateUserKey, user)
				}
				return next(ctx)
			default:
				g.SetRedirect(ctx)

				statusCode := http.StatusSeeOther
				if ctx.Method() == string(router.GET) {
					statusCode = http.StatusFound
				}

				g.Logger.Info("anonymous session, redirecting to login", "path", ctx.OriginalURL())
				return ctx.Redirect(g.cfg.GetLoginRoute(), statusCode)
			}
		}
	}
}

// SetRedirect remembers the originally requested location so login can return
// the user there after success.
func (g *RouteGuard) SetRedirect(ctx router.Context) {
	rejectedRoute := g.cfg.GetRejectedRouteKey()

	g.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect consumes the remembered location, falling back to def.
func (g *RouteGuard) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := g.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" && len(def) > 0 {
		return def[0]
	}
	g.cookieDel(ctx, rejectedRoute)
	return r
}

// GetRedirectOrDefault consumes the remembered location, trying the referer
// header before the configured default.
func (g *RouteGuard) GetRedirectOrDefault(ctx router.Context) string {
	rejectedRoute := g.cfg.GetRejectedRouteKey()
	refererHeader := ctx.Referer()

	r := ctx.Cookies(rejectedRoute, refererHeader)
	if r == "" {
		r = g.cfg.GetRejectedRouteDefault()
	}
	g.cookieDel(ctx, rejectedRoute)
	return r
}

func (g *RouteGuard) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
