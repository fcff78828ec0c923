package service

import (
	"net/http"
	middle "statuspage/internals/middleware"
	"statuspage/pkg/status"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	manager   *Manager
	validator *validator.Validate
}

func NewHandler(manager *Manager, validator *validator.Validate) *Handler {
	return &Handler{
		manager:   manager,
		validator: validator,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	services, err := h.manager.List(ctx, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, toResponse(s))
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "services retrieved", resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "serviceID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	s, err := h.manager.Get(ctx, id, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "service retrieved", toResponse(s))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	s, err := h.manager.Create(ctx, CreateServiceCmd{
		OrganizationID:   user.OrgID,
		Name:             req.Name,
		Description:      req.Description,
		Status:           status.ServiceStatus(req.Status),
		UptimePercentage: req.Uptime,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.ServiceCreated, toResponse(s))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "serviceID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	var req UpdateServiceRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	cmd := UpdateServiceCmd{
		ID:               id,
		OrganizationID:   user.OrgID,
		Name:             req.Name,
		Description:      req.Description,
		UptimePercentage: req.Uptime,
	}
	if req.Status != nil {
		st := status.ServiceStatus(*req.Status)
		cmd.Status = &st
	}

	s, err := h.manager.Update(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.ServiceUpdated, toResponse(s))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "serviceID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	var req UpdateServiceStatusRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	s, err := h.manager.UpdateStatus(ctx, id, user.OrgID, status.ServiceStatus(req.Status))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.ServiceUpdated, toResponse(s))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "serviceID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	if err := h.manager.Delete(ctx, id, user.OrgID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.ServiceDeleted, nil)
}

func (h *Handler) RefreshStatuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	res, err := h.manager.RefreshAll(ctx, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.StatusesRefreshed, res)
}
