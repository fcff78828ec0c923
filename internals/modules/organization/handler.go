package organization

import (
	"net/http"
	middle "statuspage/internals/middleware"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ValidateSubscription(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req ValidateSubscriptionRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	res := h.service.ValidateSubscription(req.SubscriptionCode)
	utils.WriteJSON(w, http.StatusOK, reqID, res.Message, SubscriptionResponse{
		Valid:    res.Valid,
		PlanName: res.PlanName,
		Features: res.Features,
		Message:  res.Message,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req RegisterRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	reg, err := h.service.Register(ctx, RegisterCmd{
		Name:             req.Name,
		Domain:           req.Domain,
		SubscriptionCode: req.SubscriptionCode,
		AdminFirstName:   req.AdminUser.FirstName,
		AdminLastName:    req.AdminUser.LastName,
		AdminEmail:       req.AdminUser.Email,
		AdminPassword:    req.AdminUser.Password,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, utils.OrgRegistered, RegistrationResponse{
		OrganizationID:   reg.Organization.ID.String(),
		OrganizationName: reg.Organization.Name,
		Status:           reg.Organization.Status,
		Subdomain:        reg.Subdomain,
		AdminUserID:      reg.AdminUserID.String(),
		AdminEmail:       reg.AdminEmail,
		PlanName:         reg.Plan.Name,
	})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	s, err := h.service.GetSettings(ctx, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "settings retrieved", toSettingsResponse(s))
}

func (h *Handler) CreateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	s, err := h.service.CreateSettings(ctx, user.OrgID, req.toPatch())
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.SettingsUpdated, toSettingsResponse(s))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req SettingsRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	s, err := h.service.UpdateSettings(ctx, user.OrgID, req.toPatch())
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.SettingsUpdated, toSettingsResponse(s))
}
