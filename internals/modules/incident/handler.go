package incident

import (
	"net/http"
	middle "statuspage/internals/middleware"
	"statuspage/pkg/apperror"
	"statuspage/pkg/status"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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

func toResponses(items []Incident) []IncidentResponse {
	out := make([]IncidentResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToResponse(i))
	}
	return out
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	filter := ListFilter{
		OrganizationID: user.OrgID,
		ActiveOnly:     utils.QueryBool(r, "active_only"),
	}
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid service_id")
			return
		}
		filter.ServiceID = &id
	}

	items, err := h.service.List(ctx, filter)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "incidents retrieved", toResponses(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "incidentID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	inc, err := h.service.Get(ctx, id, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "incident retrieved", ToResponse(inc))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req CreateIncidentRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	inc, err := h.service.Create(ctx, CreateIncidentCmd{
		OrganizationID: user.OrgID,
		ServiceID:      uuid.MustParse(req.ServiceID), // validated above
		Title:          req.Title,
		Description:    req.Description,
		Impact:         status.IncidentImpact(req.Impact),
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reqID, utils.IncidentCreated, ToResponse(inc))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "incidentID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	var req UpdateIncidentRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	cmd := UpdateIncidentCmd{
		ID:             id,
		OrganizationID: user.OrgID,
		Title:          req.Title,
		Description:    req.Description,
	}
	if req.Status != nil {
		st := status.IncidentStatus(*req.Status)
		cmd.Status = &st
	}
	if req.Impact != nil {
		im := status.IncidentImpact(*req.Impact)
		cmd.Impact = &im
	}

	inc, err := h.service.Update(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.IncidentUpdated, ToResponse(inc))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "incidentID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	var req UpdateIncidentStatusRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	inc, err := h.service.UpdateStatus(ctx, UpdateStatusCmd{
		ID:             id,
		OrganizationID: user.OrgID,
		Status:         status.IncidentStatus(req.Status),
		UpdateMessage:  req.UpdateMessage,
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.IncidentUpdated, ToResponse(inc))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	id, err := utils.PathUUID(r, "incidentID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	if err := h.service.Delete(ctx, id, user.OrgID); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON[any](w, http.StatusOK, reqID, utils.IncidentDeleted, nil)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(ctx, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "incident stats retrieved", stats)
}
