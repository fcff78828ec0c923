package organization

import (
	middle "statuspage/internals/middleware"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegistrationRoutes returns the /organization router; the service and
// incident routers are mounted onto it by the caller.
func RegistrationRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/validate-subscription", h.ValidateSubscription)
	r.Post("/register", h.Register)

	return r
}

func SettingsRoutes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Get("/", h.GetSettings)
	r.With(middle.AllowAdmin).Post("/", h.CreateSettings)
	r.With(middle.AllowAdmin).Put("/", h.UpdateSettings)

	return r
}

// PublicRoutes applies the request timeout itself so the WebSocket stream can
// stay outside of it.
func PublicRoutes(h *PublicHandler, timeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Get("/{orgRef}/status/stream", h.Stream)

	r.Group(func(g chi.Router) {
		g.Use(middleware.Timeout(timeout))
		g.Get("/", h.Directory)
		g.Get("/{orgRef}/status", h.Status)
		g.Get("/{orgRef}/services", h.Services)
		g.Get("/{orgRef}/incidents", h.Incidents)
	})

	return r
}

func StatusPageRoutes(h *PublicHandler) chi.Router {
	r := chi.NewRouter()

	r.Get("/org/{orgID}", h.PageByOrgID)
	r.Get("/{subdomain}", h.PageByHost)

	return r
}

/*
- POST: /organization/validate-subscription -> check a subscription code
	req auth : false
	body : ValidateSubscriptionRequest
	resp : SubscriptionResponse

- POST: /organization/register -> organization + default settings + approved admin
	req auth : false
	body : RegisterRequest
	resp : RegistrationResponse

- GET|POST|PUT: /organizations/settings -> status page settings
	req auth : true (POST, PUT admin)
	body : SettingsRequest

- GET: /public/organizations -> directory
- GET: /public/organizations/{orgRef}/status -> StatusSnapshot, orgRef is an id or a name
- GET: /public/organizations/{orgRef}/status/stream -> websocket of StatusSnapshot
- GET: /public/organizations/{orgRef}/services
- GET: /public/organizations/{orgRef}/incidents
	req auth : false

- GET: /status/{subdomain} -> BrandedPage by subdomain or custom domain
- GET: /status/org/{orgID} -> BrandedPage by organization id
	req auth : false
*/
