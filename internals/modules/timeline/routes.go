package timeline

import "github.com/go-chi/chi/v5"

// Routes is mounted under both /organizations/public and /public/organizations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{orgRef}/incidents/timeline", h.Timeline)
	return r
}

/*
- GET: /api/v1/organizations/public/{orgRef}/incidents/timeline?days={1..365}
	req auth : false
	orgRef : organization id or exact name
	response : Timeline (organization, timeline_period, services[].incidents[] with layout, summary, impact_legend)

- GET: /api/v1/public/organizations/{orgRef}/incidents/timeline -> alias
*/
