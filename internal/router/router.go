package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, which load balancers and monitoring use to verify the
// service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the OTP authentication endpoints.  The send
// and verify routes are anonymous by design — they are how a session
// comes into existence — and sit behind the rate limiter when one is
// configured.  Logout only needs the cookie and performs an
// idempotent revocation, so it is registered without the guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/otp")
	if limiter != nil {
		g.Use(limiter)
	}
	// Issue a one-time code for a pre-registered phone or email.
	g.POST("/send", a.SendOTP)
	// Exchange a code for a candidate session cookie.
	g.POST("/verify", a.VerifyOTP)

	e.POST("/api/auth/logout", a.Logout)
}
