package incident

import (
	middle "statuspage/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.List)
	r.Get("/{incidentID}", h.Get)

	r.Group(func(editors chi.Router) {
		editors.Use(middle.AllowEditors)
		editors.Post("/", h.Create)
		editors.Put("/{incidentID}", h.Update)
		editors.Patch("/{incidentID}/status", h.UpdateStatus)
	})

	r.With(middle.AllowAdmin).Delete("/{incidentID}", h.Delete)

	return r
}

// StatsRoutes is mounted beside the incidents router as /incidents-stats.
func StatsRoutes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)
	r.Get("/", h.Stats)
	return r
}

/*
- GET: /organization/incidents?service_id={}&active_only={}  -> list incidents
	req auth : true

- POST: /organization/incidents -> create incident (status starts at investigating)
	req auth : admin | editor
	body : CreateIncidentRequest

- PUT: /organization/incidents/{incidentID} -> partial update
	req auth : admin | editor

- PATCH: /organization/incidents/{incidentID}/status -> status change with optional update note
	req auth : admin | editor
	body : UpdateIncidentStatusRequest

- DELETE: /organization/incidents/{incidentID}
	req auth : admin

- GET: /organization/incidents-stats -> totals
	req auth : true
*/
