package statusclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Services(ctx context.Context, sess *Session) ([]Service, error) {
	return do[[]Service](ctx, c, call{method: http.MethodGet, path: "/organization/services", session: sess})
}

func (c *Client) Service(ctx context.Context, sess *Session, id string) (Service, error) {
	return do[Service](ctx, c, call{method: http.MethodGet, path: pathf("/organization/services/%s", id), session: sess})
}

func (c *Client) CreateService(ctx context.Context, sess *Session, req CreateServiceRequest) (Service, error) {
	return do[Service](ctx, c, call{method: http.MethodPost, path: "/organization/services", body: req, session: sess})
}

func (c *Client) UpdateService(ctx context.Context, sess *Session, id string, req UpdateServiceRequest) (Service, error) {
	return do[Service](ctx, c, call{method: http.MethodPut, path: pathf("/organization/services/%s", id), body: req, session: sess})
}

func (c *Client) SetServiceStatus(ctx context.Context, sess *Session, id, st string) (Service, error) {
	return do[Service](ctx, c, call{
		method:  http.MethodPatch,
		path:    pathf("/organization/services/%s/status", id),
		body:    map[string]string{"status": st},
		session: sess,
	})
}

func (c *Client) DeleteService(ctx context.Context, sess *Session, id string) error {
	_, err := do[*empty](ctx, c, call{method: http.MethodDelete, path: pathf("/organization/services/%s", id), session: sess})
	return err
}

func (c *Client) RefreshServiceStatuses(ctx context.Context, sess *Session) (RefreshResult, error) {
	return do[RefreshResult](ctx, c, call{method: http.MethodPost, path: "/organization/services/refresh-status", session: sess})
}

func (c *Client) Incidents(ctx context.Context, sess *Session, filter IncidentFilter) ([]Incident, error) {
	q := url.Values{}
	if filter.ServiceID != "" {
		q.Set("service_id", filter.ServiceID)
	}
	if filter.ActiveOnly {
		q.Set("active_only", strconv.FormatBool(true))
	}
	return do[[]Incident](ctx, c, call{method: http.MethodGet, path: "/organization/incidents", query: q, session: sess})
}

func (c *Client) Incident(ctx context.Context, sess *Session, id string) (Incident, error) {
	return do[Incident](ctx, c, call{method: http.MethodGet, path: pathf("/organization/incidents/%s", id), session: sess})
}

func (c *Client) CreateIncident(ctx context.Context, sess *Session, req CreateIncidentRequest) (Incident, error) {
	return do[Incident](ctx, c, call{method: http.MethodPost, path: "/organization/incidents", body: req, session: sess})
}

func (c *Client) UpdateIncident(ctx context.Context, sess *Session, id string, req UpdateIncidentRequest) (Incident, error) {
	return do[Incident](ctx, c, call{method: http.MethodPut, path: pathf("/organization/incidents/%s", id), body: req, session: sess})
}

// SetIncidentStatus appends note to the description when it is not empty.
func (c *Client) SetIncidentStatus(ctx context.Context, sess *Session, id, st, note string) (Incident, error) {
	return do[Incident](ctx, c, call{
		method:  http.MethodPatch,
		path:    pathf("/organization/incidents/%s/status", id),
		body:    map[string]string{"status": st, "update_message": note},
		session: sess,
	})
}

func (c *Client) DeleteIncident(ctx context.Context, sess *Session, id string) error {
	_, err := do[*empty](ctx, c, call{method: http.MethodDelete, path: pathf("/organization/incidents/%s", id), session: sess})
	return err
}

func (c *Client) IncidentStats(ctx context.Context, sess *Session) (IncidentStats, error) {
	return do[IncidentStats](ctx, c, call{method: http.MethodGet, path: "/organization/incidents-stats", session: sess})
}
