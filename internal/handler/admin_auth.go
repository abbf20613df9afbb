package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// AdminAuthHandler implements admin login and logout.  Admin sessions
// are opaque tokens in their own cookie namespace; they are never
// accepted where a candidate session is expected and vice versa.
type AdminAuthHandler struct {
	Sessions *service.SessionService
}

func NewAdminAuthHandler(s *service.SessionService) *AdminAuthHandler {
	return &AdminAuthHandler{Sessions: s}
}

type adminLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies admin credentials and mints an admin session cookie.
// Unknown emails and wrong passwords answer the same 401 so the
// response carries no account-enumeration signal.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req adminLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tok, err := h.Sessions.AdminLogin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "INVALID_CREDENTIALS"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	setSessionCookie(c, middleware.AdminCookie, tok.Raw, tok.Exp)
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Logout destroys the admin session record and clears the cookie.
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if ck, err := c.Cookie(middleware.AdminCookie); err == nil && ck.Value != "" {
		if err := h.Sessions.Revoke(ctx, ck.Value, service.KindAdmin); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
		}
	}
	clearSessionCookie(c, middleware.AdminCookie)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated administrator's identity.
func (h *AdminAuthHandler) Me(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	return c.JSON(http.StatusOK, echo.Map{"email": p.AdminEmail})
}
