package app

import (
	middle "statuspage/internals/middleware"
	"statuspage/internals/modules/incident"
	"statuspage/internals/modules/organization"
	"statuspage/internals/modules/service"
	"statuspage/internals/modules/team"
	"statuspage/internals/modules/timeline"
	"statuspage/internals/modules/user"
	"statuspage/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middle.Logger(c.Logger))
	r.Use(middle.Metrics(metrics.HTTPRecorder{}))

	timeout := c.Config.RequestTimeout

	r.Route("/api/v1", func(v1 chi.Router) {
		// carries its own timeout around everything but the websocket
		v1.Mount("/public/organizations", organization.PublicRoutes(c.publicHandler, timeout))

		v1.Group(func(api chi.Router) {
			api.Use(middleware.Timeout(timeout))

			api.Get("/health", Health(c.DB, c.RedisClient))

			api.Mount("/auth", user.Routes(c.userHandler, c.authMW))

			orgRoutes := organization.RegistrationRoutes(c.orgHandler)
			orgRoutes.Mount("/services", service.Routes(c.serviceHandler, c.authMW))
			orgRoutes.Mount("/incidents", incident.Routes(c.incidentHandler, c.authMW))
			orgRoutes.Mount("/incidents-stats", incident.StatsRoutes(c.incidentHandler, c.authMW))
			api.Mount("/organization", orgRoutes)

			api.Mount("/organizations/settings", organization.SettingsRoutes(c.orgHandler, c.authMW))
			api.Mount("/organizations/public", timeline.Routes(c.timelineHandler))
			api.Get("/public/organizations/{orgRef}/incidents/timeline", c.timelineHandler.Timeline)

			api.Mount("/team", team.Routes(c.teamHandler, c.authMW))
			api.Mount("/status", organization.StatusPageRoutes(c.publicHandler))
		})
	})

	return r
}
