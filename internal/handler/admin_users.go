package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
	"github.com/chefoverseas/docketify-server/internal/utils"
)

// AdminUserHandler serves the administrator's candidate-management
// endpoints: pre-registration, listing, and the acts-on-behalf docket
// and contract flows.  Every route here is admin-authenticated and
// names its target candidate explicitly by public UID — an admin
// never borrows or mints a candidate session.
type AdminUserHandler struct {
	Users     service.UserStore
	Dockets   *service.DocketService
	Contracts service.ContractStore
}

func NewAdminUserHandler(users service.UserStore, d *service.DocketService, contracts service.ContractStore) *AdminUserHandler {
	return &AdminUserHandler{Users: users, Dockets: d, Contracts: contracts}
}

type createUserReq struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type contractReq struct {
	CompanyContractStatus *string `json:"company_contract_status"`
	JobOfferStatus        *string `json:"job_offer_status"`
}

// targetUser resolves the :uid path parameter to a candidate.
func (h *AdminUserHandler) targetUser(c echo.Context) (model.User, bool) {
	ctx, cancel := reqContext(c)
	defer cancel()

	uid := strings.TrimSpace(c.Param("uid"))
	u, err := h.Users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "NOT_REGISTERED"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
		}
		return model.User{}, false
	}
	return u, true
}

// CreateUser pre-registers a candidate.  This is the only way a user
// row comes into existence: OTP issuance refuses identifiers that do
// not resolve to a row created here.
func (h *AdminUserHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u := model.User{
		UID:   utils.NewPublicUID(),
		Phone: req.Phone,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:  strings.TrimSpace(req.Name),
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, service.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": toUserPart(u)})
}

// ListUsers returns all candidates.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPart(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// GetUser returns one candidate with docket state.
func (h *AdminUserHandler) GetUser(c echo.Context) error {
	u, ok := h.targetUser(c)
	if !ok {
		return nil
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Dockets.Get(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u), "docket": toDocketPart(d)})
}

// UpdateDocket merges a docket patch on the candidate's behalf.  The
// target is the explicit :uid parameter; the caller stays an admin
// principal throughout.
func (h *AdminUserHandler) UpdateDocket(c echo.Context) error {
	u, ok := h.targetUser(c)
	if !ok {
		return nil
	}
	var req docketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Dockets.Update(ctx, u.ID, req.patch())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"docket": toDocketPart(d)})
}

// CompleteDocket runs the completion transition on the candidate's
// behalf.  Same idempotence and 409 semantics as the candidate route.
func (h *AdminUserHandler) CompleteDocket(c echo.Context) error {
	u, ok := h.targetUser(c)
	if !ok {
		return nil
	}
	return completeDocket(c, h.Dockets, u.ID)
}

// UpdateContract sets the candidate's contract statuses.  Absent
// fields keep their stored value; unknown status strings are
// rejected.
func (h *AdminUserHandler) UpdateContract(c echo.Context) error {
	u, ok := h.targetUser(c)
	if !ok {
		return nil
	}
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	ct, err := h.Contracts.GetByUserID(ctx, u.ID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
		}
		ct = model.Contract{
			UserID:                u.ID,
			CompanyContractStatus: model.ContractPending,
			JobOfferStatus:        model.ContractPending,
		}
	}
	if req.CompanyContractStatus != nil {
		s := strings.ToUpper(strings.TrimSpace(*req.CompanyContractStatus))
		if !model.ValidContractStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract status"})
		}
		ct.CompanyContractStatus = s
	}
	if req.JobOfferStatus != nil {
		s := strings.ToUpper(strings.TrimSpace(*req.JobOfferStatus))
		if !model.ValidContractStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract status"})
		}
		ct.JobOfferStatus = s
	}
	ct.UpdatedAt = time.Now().UTC()
	if err := h.Contracts.Upsert(ctx, &ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "SERVICE_UNAVAILABLE"})
	}
	return c.JSON(http.StatusOK, echo.Map{"contract": contractPart{
		CompanyContractStatus: ct.CompanyContractStatus,
		JobOfferStatus:        ct.JobOfferStatus,
	}})
}
