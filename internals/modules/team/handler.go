package team

import (
	"fmt"
	"net/http"
	middle "statuspage/internals/middleware"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
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

func actorOf(u *middle.AuthenticatedUser) Actor {
	return Actor{UserID: u.UserID, OrgID: u.OrgID}
}

func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	sum, err := h.service.Members(ctx, user.OrgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "members retrieved", toMembersResponse(sum))
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	action := Action(req.Action)
	if action == "" {
		action = ActionApprove
	}

	u, err := h.service.Decide(ctx, actorOf(user), uuid.MustParse(req.UserID), action, security.Role(req.Role))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, fmt.Sprintf("user %sd: %s", action, u.Email), toMember(u))
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req RoleUpdateRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	u, err := h.service.UpdateRole(ctx, actorOf(user), uuid.MustParse(req.UserID), security.Role(req.NewRole))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.MemberUpdated, toMember(u))
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	u, err := h.service.Restore(ctx, actorOf(user), uuid.MustParse(req.UserID), security.Role(req.Role))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "access restored for "+u.Email, toMember(u))
}

// Revoke takes the target from the user_id query parameter.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	target, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "user_id must be a valid uuid")
		return
	}

	u, err := h.service.Revoke(ctx, actorOf(user), target)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "access revoked for "+u.Email, toMember(u))
}

func (h *Handler) Organization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	id, err := utils.PathUUID(r, "orgID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	org, err := h.service.Organization(ctx, id)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "organization retrieved", OrganizationResponse{
		ID:     org.ID.String(),
		Name:   org.Name,
		Domain: org.Domain,
	})
}
