package router

import (
	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/handler"
	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// RegisterCandidate registers the candidate-scoped endpoints under
// /api.  All routes require a valid candidate session; a valid admin
// token presented here is rejected with 403 by the guard.  Candidates
// can read and update their own profile and docket, trigger the
// completion transition, and view their contract status.
func RegisterCandidate(e *echo.Echo, a *handler.AuthHandler, d *handler.DocketHandler, sessions *service.SessionService) {
	g := e.Group(
		"/api",
		middleware.RequireKind(sessions, service.KindCandidate),
	)
	g.GET("/me", a.Me)
	g.PUT("/me", a.UpdateMe)
	g.GET("/docket", d.GetDocket)
	g.PUT("/docket", d.UpdateDocket)
	g.POST("/docket/complete", d.CompleteDocket)
	g.GET("/contract", d.GetContract)
}
