package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/service"
)

// Session cookie names.  Candidate and admin sessions live in
// distinct cookie namespaces and are never interchangeable.
const (
	CandidateCookie = "docketify_session"
	AdminCookie     = "docketify_admin"
)

// PrincipalKey is the context key under which the guard stores the
// resolved service.Principal for handlers.
const PrincipalKey = "principal"

// sessionToken extracts the session token for a cookie name, falling
// back to a Bearer Authorization header so non-browser clients can
// authenticate without cookies.
func sessionToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireKind returns the authorization guard for one principal kind.
// It resolves the request's session token through the session manager
// before any business logic executes: a missing, unknown or expired
// token is rejected with 401 UNAUTHENTICATED, and a token that is
// valid for the *other* kind is rejected with 403 FORBIDDEN.  Admin
// routes never fall back to candidate sessions and candidate routes
// never accept admin tokens; admin-on-behalf-of-candidate flows pass
// the target user explicitly on admin-authenticated routes instead.
func RequireKind(sessions *service.SessionService, kind service.PrincipalKind) echo.MiddlewareFunc {
	cookieName := CandidateCookie
	if kind == service.KindAdmin {
		cookieName = AdminCookie
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c, cookieName)
			p, err := sessions.Validate(c.Request().Context(), token, kind)
			if err != nil {
				if errors.Is(err, service.ErrWrongPrincipalKind) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "FORBIDDEN"})
				}
				if errors.Is(err, service.ErrUnauthenticated) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "UNAUTHENTICATED"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal stored by RequireKind.  The
// zero Principal is returned on routes the guard does not wrap.
func CurrentPrincipal(c echo.Context) service.Principal {
	if p, ok := c.Get(PrincipalKey).(service.Principal); ok {
		return p
	}
	return service.Principal{}
}
