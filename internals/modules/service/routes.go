package service

import (
	middle "statuspage/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.List)
	r.Get("/{serviceID}", h.Get)

	r.Group(func(admin chi.Router) {
		admin.Use(middle.AllowAdmin)
		admin.Post("/", h.Create)
		admin.Post("/refresh-status", h.RefreshStatuses)
		admin.Put("/{serviceID}", h.Update)
		admin.Patch("/{serviceID}/status", h.UpdateStatus)
		admin.Delete("/{serviceID}", h.Delete)
	})

	return r
}

/*
- GET: /organization/services -> list services of the caller's organization
	req auth : true (any approved member)
	resp : []ServiceResponse

- POST: /organization/services -> create service
	req auth : admin
	body : CreateServiceRequest

- PUT: /organization/services/{serviceID} -> partial update
	req auth : admin
	body : UpdateServiceRequest

- PATCH: /organization/services/{serviceID}/status -> set status
	req auth : admin
	body : UpdateServiceStatusRequest

- POST: /organization/services/refresh-status -> re-derive every status from active incidents
	req auth : admin
	resp : RefreshResult
*/
