package team

import (
	middle "statuspage/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/organization/{orgID}", h.Organization)

	r.Group(func(admin chi.Router) {
		admin.Use(authMW.Handle, middle.AllowAdmin)

		admin.Get("/members", h.Members)
		admin.Post("/approve-user", h.Approve)
		admin.Put("/update-role", h.UpdateRole)
		admin.Post("/restore-access", h.Restore)
		admin.Delete("/revoke-access", h.Revoke)
	})

	return r
}

/*
- GET: /team/organization/{orgID} -> org lookup for the sign-up form
	req auth : false

- GET: /team/members -> counts by status plus members
	req auth : admin

- POST: /team/approve-user -> approve or reject a pending member
	req auth : admin
	body : ApprovalRequest

- PUT: /team/update-role
	req auth : admin
	body : RoleUpdateRequest

- POST: /team/restore-access -> re-approve a rejected member
	req auth : admin
	body : ApprovalRequest (action ignored)

- DELETE: /team/revoke-access?user_id={}
	req auth : admin
*/
