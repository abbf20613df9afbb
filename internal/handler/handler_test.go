package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chefoverseas/docketify-server/internal/handler"
	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/router"
	"github.com/chefoverseas/docketify-server/internal/service"
	"github.com/chefoverseas/docketify-server/internal/utils"
)

const (
	testAdminEmail    = "ops@chefoverseas.com"
	testAdminPassword = "correct horse battery"
)

// captureNotifier records issued codes instead of talking to a broker.
type captureNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []string
}

func (n *captureNotifier) Send(_ context.Context, identifier, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("broker down")
	}
	n.sent = append(n.sent, code)
	return nil
}

func (n *captureNotifier) lastCode(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent, "no code was sent")
	return n.sent[len(n.sent)-1]
}

// testApp wires the full HTTP surface over in-memory stores, the same
// shape main assembles for production.
type testApp struct {
	e        *echo.Echo
	users    *service.MemoryUserStore
	notifier *captureNotifier
	sessions *service.SessionService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := service.NewMemoryUserStore()
	notifier := &captureNotifier{}

	otpSvc := service.NewOTPService(users, service.NewMemoryOtpStore(), notifier, 6, 7*time.Minute)
	sessionSvc := service.NewSessionService(users,
		service.NewMemoryUserSessionStore(),
		service.NewMemoryAdminAccountStore(),
		service.NewMemoryAdminSessionStore(),
		"handler-test-secret", 30*time.Minute, 60*time.Minute)
	docketSvc := service.NewDocketService(users, service.NewMemoryDocketStore())
	contracts := service.NewMemoryContractStore()

	hash, err := utils.HashPassword(testAdminPassword, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, sessionSvc.AdminAccounts.Upsert(context.Background(), testAdminEmail, hash))

	authH := handler.NewAuthHandler(otpSvc, sessionSvc, users)
	docketH := handler.NewDocketHandler(docketSvc, contracts)
	adminAuthH := handler.NewAdminAuthHandler(sessionSvc)
	adminUserH := handler.NewAdminUserHandler(users, docketSvc, contracts)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, nil)
	router.RegisterCandidate(e, authH, docketH, sessionSvc)
	router.RegisterAdmin(e, adminAuthH, adminUserH, sessionSvc)

	return &testApp{e: e, users: users, notifier: notifier, sessions: sessionSvc}
}

// request performs one in-process HTTP exchange.  A non-empty body is
// sent as JSON; cookies are attached as given.
func (a *testApp) request(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set in response", name)
	return nil
}

func (a *testApp) seedUser(t *testing.T, phone, email, name string) model.User {
	t.Helper()
	u := model.User{UID: utils.NewPublicUID(), Phone: phone, Email: email, Name: name}
	require.NoError(t, a.users.Create(context.Background(), &u))
	return u
}

// loginCandidate runs the full OTP round trip for a seeded user and
// returns the candidate session cookie.
func (a *testApp) loginCandidate(t *testing.T, identifier string) *http.Cookie {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/otp/send", `{"identifier":"`+identifier+`"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	code := a.notifier.lastCode(t)

	rec = a.request(t, http.MethodPost, "/api/otp/verify",
		`{"identifier":"`+identifier+`","code":"`+code+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return responseCookie(t, rec, middleware.CandidateCookie)
}

// loginAdmin authenticates the seeded admin account and returns the
// admin session cookie.
func (a *testApp) loginAdmin(t *testing.T) *http.Cookie {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/admin/login",
		`{"email":"`+testAdminEmail+`","password":"`+testAdminPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return responseCookie(t, rec, middleware.AdminCookie)
}
