package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDocketBody = `{
	"passportFrontUrl":    "https://cdn.example.com/pf.pdf",
	"passportLastUrl":     "https://cdn.example.com/pl.pdf",
	"passportPhotoUrl":    "https://cdn.example.com/photo.jpg",
	"offerLetterUrl":      "https://cdn.example.com/offer.pdf",
	"permanentAddressUrl": "https://cdn.example.com/perm.pdf",
	"currentAddressUrl":   "https://cdn.example.com/curr.pdf"
}`

func TestGetDocket_EmptyBeforeFirstUpload(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodGet, "/api/docket", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	docket := decodeBody(t, rec)["docket"].(map[string]any)
	assert.Empty(t, docket["passportFrontUrl"])
	assert.Len(t, docket["missing"], 6)
}

func TestUpdateDocket_PartialPatch(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodPut, "/api/docket",
		`{"passportFrontUrl":"https://cdn.example.com/pf.pdf"}`, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	docket := decodeBody(t, rec)["docket"].(map[string]any)
	assert.Equal(t, "https://cdn.example.com/pf.pdf", docket["passportFrontUrl"])
	assert.Len(t, docket["missing"], 5)
	assert.NotContains(t, docket["missing"], "passportFrontUrl")

	// A later patch leaves the earlier slot alone.
	rec = app.request(t, http.MethodPut, "/api/docket",
		`{"offerLetterUrl":"https://cdn.example.com/offer.pdf"}`, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	docket = decodeBody(t, rec)["docket"].(map[string]any)
	assert.Equal(t, "https://cdn.example.com/pf.pdf", docket["passportFrontUrl"])
	assert.Len(t, docket["missing"], 4)
}

func TestCompleteDocket_MissingSlots(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodPut, "/api/docket", `{
		"passportFrontUrl":    "https://cdn.example.com/pf.pdf",
		"passportLastUrl":     "https://cdn.example.com/pl.pdf",
		"passportPhotoUrl":    "https://cdn.example.com/photo.jpg",
		"offerLetterUrl":      "https://cdn.example.com/offer.pdf",
		"permanentAddressUrl": "https://cdn.example.com/perm.pdf"
	}`, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/docket/complete", "", ck)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INCOMPLETE_DOCKET", body["error"])
	assert.Equal(t, []any{"currentAddressUrl"}, body["missing"])
}

func TestCompleteDocket_Succeeds(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodPut, "/api/docket", fullDocketBody, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/docket/complete", "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decodeBody(t, rec)["status"])

	// Completion is visible on the profile.
	rec = app.request(t, http.MethodGet, "/api/me", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, true, user["docket_completed"])

	// Re-submitting stays a 200.
	rec = app.request(t, http.MethodPost, "/api/docket/complete", "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateDocket_DoesNotAutoComplete(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodPut, "/api/docket", fullDocketBody, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	// Every slot is uploaded but the explicit transition has not run.
	rec = app.request(t, http.MethodGet, "/api/me", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, false, user["docket_completed"])
}

func TestGetContract_DefaultsPending(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "+919990000001", "", "Asha")
	ck := app.loginCandidate(t, "+919990000001")

	rec := app.request(t, http.MethodGet, "/api/contract", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	contract := decodeBody(t, rec)["contract"].(map[string]any)
	assert.Equal(t, "PENDING", contract["company_contract_status"])
	assert.Equal(t, "PENDING", contract["job_offer_status"])
}
