package router

import (
	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/handler"
	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// RegisterAdmin registers the administrator endpoints under
// /api/admin.  Login is anonymous; everything else requires a valid
// admin session and never falls back to candidate-session acceptance.
// The acts-on-behalf routes identify the target candidate by the
// explicit :uid path parameter while the caller remains an admin
// principal.
func RegisterAdmin(e *echo.Echo, aa *handler.AdminAuthHandler, au *handler.AdminUserHandler, sessions *service.SessionService) {
	e.POST("/api/admin/login", aa.Login)
	e.POST("/api/admin/logout", aa.Logout)

	g := e.Group(
		"/api/admin",
		middleware.RequireKind(sessions, service.KindAdmin),
	)
	g.GET("/me", aa.Me)
	g.POST("/users", au.CreateUser)
	g.GET("/users", au.ListUsers)
	g.GET("/users/:uid", au.GetUser)
	g.PUT("/users/:uid/docket", au.UpdateDocket)
	g.POST("/users/:uid/complete", au.CompleteDocket)
	g.PUT("/users/:uid/contract", au.UpdateContract)
}
