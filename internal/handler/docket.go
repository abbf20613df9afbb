package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/middleware"
	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// DocketHandler serves the candidate-facing docket and contract
// endpoints.  Document values are opaque URLs from the upload
// subsystem; the core stores and gates them without inspecting them.
type DocketHandler struct {
	Dockets   *service.DocketService
	Contracts service.ContractStore
}

func NewDocketHandler(d *service.DocketService, contracts service.ContractStore) *DocketHandler {
	return &DocketHandler{Dockets: d, Contracts: contracts}
}

// ----- DTOs -----

// docketReq mirrors service.DocketPatch: nil fields are left
// untouched, empty values clear a slot.
type docketReq struct {
	PassportFrontURL    *string   `json:"passportFrontUrl"`
	PassportLastURL     *string   `json:"passportLastUrl"`
	PassportPhotoURL    *string   `json:"passportPhotoUrl"`
	OfferLetterURL      *string   `json:"offerLetterUrl"`
	PermanentAddressURL *string   `json:"permanentAddressUrl"`
	CurrentAddressURL   *string   `json:"currentAddressUrl"`
	EducationURLs       *[]string `json:"educationUrls"`
	ExperienceURLs      *[]string `json:"experienceUrls"`
	CertificationURLs   *[]string `json:"certificationUrls"`
	References          *[]string `json:"references"`
}

func (r docketReq) patch() service.DocketPatch {
	return service.DocketPatch{
		PassportFrontURL:    r.PassportFrontURL,
		PassportLastURL:     r.PassportLastURL,
		PassportPhotoURL:    r.PassportPhotoURL,
		OfferLetterURL:      r.OfferLetterURL,
		PermanentAddressURL: r.PermanentAddressURL,
		CurrentAddressURL:   r.CurrentAddressURL,
		EducationURLs:       r.EducationURLs,
		ExperienceURLs:      r.ExperienceURLs,
		CertificationURLs:   r.CertificationURLs,
		References:          r.References,
	}
}

type docketPart struct {
	PassportFrontURL    string   `json:"passportFrontUrl"`
	PassportLastURL     string   `json:"passportLastUrl"`
	PassportPhotoURL    string   `json:"passportPhotoUrl"`
	OfferLetterURL      string   `json:"offerLetterUrl"`
	PermanentAddressURL string   `json:"permanentAddressUrl"`
	CurrentAddressURL   string   `json:"currentAddressUrl"`
	EducationURLs       []string `json:"educationUrls"`
	ExperienceURLs      []string `json:"experienceUrls"`
	CertificationURLs   []string `json:"certificationUrls"`
	References          []string `json:"references"`
	Missing             []string `json:"missing"`
}

func toDocketPart(d model.Docket) docketPart {
	return docketPart{
		PassportFrontURL:    d.PassportFrontURL,
		PassportLastURL:     d.PassportLastURL,
		PassportPhotoURL:    d.PassportPhotoURL,
		OfferLetterURL:      d.OfferLetterURL,
		PermanentAddressURL: d.PermanentAddressURL,
		CurrentAddressURL:   d.CurrentAddressURL,
		EducationURLs:       d.EducationURLs,
		ExperienceURLs:      d.ExperienceURLs,
		CertificationURLs:   d.CertificationURLs,
		References:          d.References,
		Missing:             service.MissingSlots(&d),
	}
}

type contractPart struct {
	CompanyContractStatus string `json:"company_contract_status"`
	JobOfferStatus        string `json:"job_offer_status"`
}

// GetDocket returns the candidate's own docket, empty slots included.
func (h *DocketHandler) GetDocket(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Dockets.Get(ctx, p.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"docket": toDocketPart(d)})
}

// UpdateDocket merges a partial docket update for the candidate.
// Updating never flips the completion flag.
func (h *DocketHandler) UpdateDocket(c echo.Context) error {
	var req docketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p := middleware.CurrentPrincipal(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Dockets.Update(ctx, p.UserID, req.patch())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"docket": toDocketPart(d)})
}

// completeDocket runs the completion transition for a user and maps
// the outcome to HTTP.  Shared by the candidate route and the
// admin-on-behalf route; the 409 body lists exactly which required
// slots are still missing.
func completeDocket(c echo.Context, dockets *service.DocketService, userID uint64) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := dockets.Complete(ctx, userID); err != nil {
		var inc *service.IncompleteDocketError
		if errors.As(err, &inc) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":   "INCOMPLETE_DOCKET",
				"missing": inc.Missing,
			})
		}
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "NOT_REGISTERED"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "completed"})
}

// CompleteDocket flips the candidate's own completion gate.  Repeated
// calls on a completed docket keep answering 200.
func (h *DocketHandler) CompleteDocket(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)
	return completeDocket(c, h.Dockets, p.UserID)
}

// GetContract returns the candidate's contract track.  A candidate
// with no contract row yet sees both documents pending.
func (h *DocketHandler) GetContract(c echo.Context) error {
	p := middleware.CurrentPrincipal(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	ct, err := h.Contracts.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"contract": contractPart{
				CompanyContractStatus: model.ContractPending,
				JobOfferStatus:        model.ContractPending,
			}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"contract": contractPart{
		CompanyContractStatus: ct.CompanyContractStatus,
		JobOfferStatus:        ct.JobOfferStatus,
	}})
}
