package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// AuthHandler bundles dependencies for the candidate authentication
// endpoints: OTP issuance/verification and session logout.
type AuthHandler struct {
	Otps     *service.OTPService
	Sessions *service.SessionService
	Users    service.UserStore
}

func NewAuthHandler(o *service.OTPService, s *service.SessionService, u service.UserStore) *AuthHandler {
	return &AuthHandler{Otps: o, Sessions: s, Users: u}
}

// ----- DTOs -----

type sendOtpReq struct {
	Identifier string `json:"identifier"`
}
type verifyOtpReq struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}
type profileReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	PhotoURL *string `json:"photo_url"`
}

type userPart struct {
	UID             string `json:"uid"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name"`
	PhotoURL        string `json:"photo_url,omitempty"`
	DocketCompleted bool   `json:"docket_completed"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		UID:             u.UID,
		Phone:           u.Phone,
		Email:           u.Email,
		Name:            u.Name,
		PhotoURL:        u.PhotoURL,
		DocketCompleted: u.DocketCompleted,
	}
}

func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func setSessionCookie(c echo.Context, name, value string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SendOTP issues a one-time code for a pre-registered phone or email.
// Unknown and malformed identifiers produce the same NOT_REGISTERED
// response so the body shape leaks nothing more than the closed
// candidate list already implies.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOtpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Otps.Issue(ctx, req.Identifier); err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "NOT_REGISTERED"})
		case errors.Is(err, service.ErrDeliveryFailed):
			// The code row is persisted; the client may offer a resend.
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "DELIVERY_FAILED"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"status": "sent"})
}

// VerifyOTP checks a submitted code and, on success, mints a
// candidate session delivered as an HTTP-only cookie.  Wrong, expired
// and reused codes all answer 401 INVALID_OR_EXPIRED.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOtpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Otps.Verify(ctx, req.Identifier, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrExpired) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "INVALID_OR_EXPIRED"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}

	tok, err := h.Sessions.Grant(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	setSessionCookie(c, middleware.CandidateCookie, tok.Token, tok.Exp)
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// Logout revokes the current candidate session and clears the cookie.
// Revocation is idempotent; an already-missing session still answers
// 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if ck, err := c.Cookie(middleware.CandidateCookie); err == nil && ck.Value != "" {
		if err := h.Sessions.Revoke(ctx, ck.Value, service.KindCandidate); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
		}
	}
	clearSessionCookie(c, middleware.CandidateCookie)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated candidate's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "UNAUTHENTICATED"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}

// UpdateMe mutates the candidate's self-service profile fields.
// Phone is immutable after pre-registration and is not accepted here.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := middleware.CurrentPrincipal(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.PhotoURL != nil {
		u.PhotoURL = *req.PhotoURL
	}
	if err := h.Users.UpdateProfile(ctx, u.ID, u.Name, u.Email, u.PhotoURL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}
