package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chefoverseas/docketify-server/internal/middleware"
)

func TestAdminLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	// Unknown email and wrong password answer identically.
	for _, body := range []string{
		`{"email":"nobody@chefoverseas.com","password":"` + testAdminPassword + `"}`,
		`{"email":"` + testAdminEmail + `","password":"wrong"}`,
		`{"email":"","password":""}`,
	} {
		rec := app.request(t, http.MethodPost, "/api/admin/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, rec)["error"])
	}
}

func TestAdminLogin_SetsAdminCookie(t *testing.T) {
	app := newTestApp(t)

	ck := app.loginAdmin(t)
	assert.True(t, ck.HttpOnly)
	assert.NotEmpty(t, ck.Value)

	rec := app.request(t, http.MethodGet, "/api/admin/me", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testAdminEmail, decodeBody(t, rec)["email"])
}

func TestAdminLogout(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)

	rec := app.request(t, http.MethodPost, "/api/admin/logout", "", ck)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.request(t, http.MethodGet, "/api/admin/me", "", ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RequireAdminSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/api/admin/users", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, rec)["error"])
}

func TestAdminRoutes_RejectCandidateToken(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	candidateCk := app.loginCandidate(t, "+919990000001")

	// A candidate session in the admin cookie slot is a kind
	// mismatch; admin routes never fall back to candidate sessions.
	adminCk := &http.Cookie{Name: middleware.AdminCookie, Value: candidateCk.Value}
	rec := app.request(t, http.MethodGet, "/api/admin/users", "", adminCk)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, rec)["error"])
}

func TestAdminCreateUser(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)

	rec := app.request(t, http.MethodPost, "/api/admin/users",
		`{"phone":"+919990000001","email":"Asha@Example.com","name":"Asha"}`, ck)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.NotEmpty(t, user["uid"])
	assert.Equal(t, "+919990000001", user["phone"])
	assert.Equal(t, "asha@example.com", user["email"])

	// The pre-registered user can immediately request an OTP.
	rec = app.request(t, http.MethodPost, "/api/otp/send", `{"identifier":"+919990000001"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAdminCreateUser_DuplicatePhone(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)

	body := `{"phone":"+919990000001","name":"Asha"}`
	rec := app.request(t, http.MethodPost, "/api/admin/users", body, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/admin/users", body, ck)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCreateUser_PhoneRequired(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)

	rec := app.request(t, http.MethodPost, "/api/admin/users", `{"name":"Asha"}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListAndGetUsers(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)
	u1 := app.seedUser(t, "+919990000001", "", "Asha")
	app.seedUser(t, "+919990000002", "", "Ravi")

	rec := app.request(t, http.MethodGet, "/api/admin/users", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody(t, rec)["users"].([]any)
	assert.Len(t, users, 2)

	rec = app.request(t, http.MethodGet, "/api/admin/users/"+u1.UID, "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, u1.UID, body["user"].(map[string]any)["uid"])
	assert.Len(t, body["docket"].(map[string]any)["missing"], 6)
}

func TestAdminGetUser_UnknownUID(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)

	rec := app.request(t, http.MethodGet, "/api/admin/users/deadbeef", "", ck)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_REGISTERED", decodeBody(t, rec)["error"])
}

func TestAdminDocketFlow_OnBehalf(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)
	u := app.seedUser(t, "+919990000001", "", "Asha")

	// Incomplete completion attempt reports the missing slots.
	rec := app.request(t, http.MethodPost, "/api/admin/users/"+u.UID+"/complete", "", ck)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INCOMPLETE_DOCKET", decodeBody(t, rec)["error"])

	rec = app.request(t, http.MethodPut, "/api/admin/users/"+u.UID+"/docket", fullDocketBody, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	docket := decodeBody(t, rec)["docket"].(map[string]any)
	assert.Empty(t, docket["missing"])

	rec = app.request(t, http.MethodPost, "/api/admin/users/"+u.UID+"/complete", "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The candidate sees the admin-driven completion.
	candidateCk := app.loginCandidate(t, "+919990000001")
	rec = app.request(t, http.MethodGet, "/api/me", "", candidateCk)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, true, user["docket_completed"])
}

func TestAdminUpdateContract(t *testing.T) {
	app := newTestApp(t)
	ck := app.loginAdmin(t)
	u := app.seedUser(t, "+919990000001", "", "Asha")

	rec := app.request(t, http.MethodPut, "/api/admin/users/"+u.UID+"/contract",
		`{"company_contract_status":"signed"}`, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	contract := decodeBody(t, rec)["contract"].(map[string]any)
	assert.Equal(t, "SIGNED", contract["company_contract_status"])
	// The absent field keeps its default.
	assert.Equal(t, "PENDING", contract["job_offer_status"])

	rec = app.request(t, http.MethodPut, "/api/admin/users/"+u.UID+"/contract",
		`{"job_offer_status":"ACCEPTED"}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The candidate reads the updated track.
	candidateCk := app.loginCandidate(t, "+919990000001")
	rec = app.request(t, http.MethodGet, "/api/contract", "", candidateCk)
	require.Equal(t, http.StatusOK, rec.Code)
	contract = decodeBody(t, rec)["contract"].(map[string]any)
	assert.Equal(t, "SIGNED", contract["company_contract_status"])
	assert.Equal(t, "PENDING", contract["job_offer_status"])
}
